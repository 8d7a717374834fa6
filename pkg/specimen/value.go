package specimen

import (
	"encoding/json"
	"strings"
)

// Unknown is the sentinel that stands for a missing value in the filled
// view of a dataset.
const Unknown = "unknown"

// nullTokens are the cell values treated as missing, following the
// defaults of pandas.read_csv.
var nullTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {},
	"-1.#QNAN": {}, "-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {},
	"<NA>": {}, "N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// Value is a categorical cell. It is either Absent (the upload had no
// value) or Known (an explicit string, possibly "unknown").
//
// The zero Value is Absent.
type Value struct {
	s     string
	known bool
}

// Known creates a Value holding an explicit string.
func Known(s string) Value {
	return Value{s: s, known: true}
}

// Absent creates a missing Value.
func Absent() Value {
	return Value{}
}

// Cell converts raw cell text into a Value. Null tokens become Absent.
func Cell(raw string) Value {
	s := strings.TrimSpace(raw)
	if IsNullToken(s) {
		return Absent()
	}
	return Known(s)
}

// IsNullToken reports whether a trimmed cell text means "no value".
func IsNullToken(s string) bool {
	_, ok := nullTokens[s]
	return ok
}

// IsAbsent is true when the upload did not provide the value.
func (v Value) IsAbsent() bool {
	return !v.known
}

// String returns the filled form of the value: Absent becomes Unknown.
func (v Value) String() string {
	if !v.known {
		return Unknown
	}
	return v.s
}

// IsUnknown is true for Absent values and for explicit "unknown" strings.
func (v Value) IsUnknown() bool {
	return v.String() == Unknown
}

// MarshalJSON encodes Absent as null and Known as a string.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.known {
		return []byte("null"), nil
	}
	return json.Marshal(v.s)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Absent()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Known(s)
	return nil
}
