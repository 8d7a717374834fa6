package dataset

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
)

// NotFoundError is returned when a session has no dataset.
func NotFoundError(sessionID string) error {
	msg := "No dataset is loaded for session <em>%s</em>"
	vars := []any{sessionID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: session %q has no dataset",
			fn.Name(), sessionID),
	}
}

// IsNotFound reports whether err means a session has no dataset.
func IsNotFound(err error) bool {
	var gnErr *gn.Error
	return errors.As(err, &gnErr) && gnErr.Code == errcode.StoreNotFoundError
}
