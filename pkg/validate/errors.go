package validate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
)

// MissingColumnError is returned when a required column is not uploaded.
func MissingColumnError(col string) error {
	msg := "Source data does not have <em>'%s'</em> column"
	vars := []any{col}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ValidateMissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: required column %q is missing",
			fn.Name(), col),
	}
}

// MissingColumn extracts the column name from a missing-column error.
func MissingColumn(err error) (string, bool) {
	gnErr, ok := err.(*gn.Error)
	if !ok || gnErr.Code != errcode.ValidateMissingColumnError {
		return "", false
	}
	if len(gnErr.Vars) == 0 {
		return "", false
	}
	col, ok := gnErr.Vars[0].(string)
	return col, ok
}
