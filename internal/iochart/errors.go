package iochart

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
)

var errEmpty = errors.New("no values to draw")

func EmptyChartError(title string) error {
	msg := "Chart <em>%s</em> has no values"
	vars := []any{title}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ChartEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errEmpty),
	}
}

func RenderError(title string, err error) error {
	msg := "Cannot render chart <em>%s</em>"
	vars := []any{title}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ChartRenderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: render %q: %w", fn.Name(), title, err),
	}
}
