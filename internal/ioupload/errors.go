package ioupload

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
)

// FileTypeError is returned for files that are neither CSV/TSV nor XLSX.
func FileTypeError(filename string) error {
	msg := "The source file <em>%s</em> is not a valid CSV format"
	vars := []any{filename}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadFileTypeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unsupported file type of %q",
			fn.Name(), filename),
	}
}

// DecodeError is returned when a text upload is not valid UTF-8.
func DecodeError(filename string, err error) error {
	msg := "There was a UnicodeDecode error processing <em>%s</em>"
	vars := []any{filename}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode %q: %w", fn.Name(), filename, err),
	}
}

// ParseError is returned for any other problem of reading a table.
func ParseError(filename string, err error) error {
	msg := "There was an error processing <em>%s</em>"
	vars := []any{filename}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %q: %w", fn.Name(), filename, err),
	}
}

// TooLargeError is returned when an upload exceeds the size limit.
func TooLargeError(filename, limit string) error {
	msg := "File <em>%s</em> is larger than %s"
	vars := []any{filename, limit}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadTooLargeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %q exceeds %s",
			fn.Name(), filename, limit),
	}
}
