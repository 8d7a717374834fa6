package sampler

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
)

// NoMatchError is returned when no record satisfies a query.
func NoMatchError() error {
	msg := "No Such Images. Please make another selection."
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SampleNoMatchError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: no records match the query", fn.Name()),
	}
}

// NoImagesError is returned when matching records exist but none of them
// has a usable image reference.
func NoImagesError(matched int) error {
	msg := "No Such Images. %d matching record(s) have unknown " +
		"filename(s) or path(s). Please make another selection."
	vars := []any{matched}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SampleNoImagesError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %d matching records without images",
			fn.Name(), matched),
	}
}

// Matched returns the number of matching records of a no-images error.
func Matched(err error) (int, bool) {
	gnErr, ok := err.(*gn.Error)
	if !ok || gnErr.Code != errcode.SampleNoImagesError {
		return 0, false
	}
	if len(gnErr.Vars) == 0 {
		return 0, false
	}
	n, ok := gnErr.Vars[0].(int)
	return n, ok
}
