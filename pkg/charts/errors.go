package charts

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
)

// FieldError is returned for a field that cannot be charted.
func FieldError(name string) error {
	msg := "Cannot make a chart of <em>'%s'</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ChartFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown chart field %q", fn.Name(), name),
	}
}

// SortError is returned for an unsupported histogram order.
func SortError(s string) error {
	msg := "Unknown sort order <em>'%s'</em>"
	vars := []any{s}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ChartFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown sort order %q", fn.Name(), s),
	}
}

// NoLocationError is returned when a map is requested for a dataset
// without coordinates.
func NoLocationError() error {
	msg := "The dataset has no latitude and longitude columns"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ChartNoLocationError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: no location data", fn.Name()),
	}
}
