package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
)

func OpenError(backend string, err error) error {
	msg := "Cannot open <em>%s</em> session store"
	vars := []any{backend}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: open %s store: %w", fn.Name(), backend, err),
	}
}

func ReadError(sessionID string, err error) error {
	msg := "Cannot read dataset of session <em>%s</em>"
	vars := []any{sessionID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: read session %s: %w",
			fn.Name(), sessionID, err),
	}
}

func WriteError(sessionID string, err error) error {
	msg := "Cannot save dataset of session <em>%s</em>"
	vars := []any{sessionID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: write session %s: %w",
			fn.Name(), sessionID, err),
	}
}

func EncodeError(datasetID string, err error) error {
	msg := "Cannot encode dataset <em>%s</em>"
	vars := []any{datasetID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreEncodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: encode dataset %s: %w",
			fn.Name(), datasetID, err),
	}
}
