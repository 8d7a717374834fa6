package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Upload errors
	UploadFileTypeError
	UploadDecodeError
	UploadParseError
	UploadTooLargeError

	// Validation errors
	ValidateMissingColumnError

	// Sampling errors
	SampleNoMatchError
	SampleNoImagesError

	// Chart errors
	ChartFieldError
	ChartNoLocationError
	ChartRenderError
	ChartEmptyError

	// Session store errors
	StoreConnectionError
	StoreSchemaError
	StoreNotFoundError
	StoreReadError
	StoreWriteError
	StoreEncodeError

	// Session token errors
	SessionTokenError

	// Notification errors
	NotifyConnectError
	NotifyPublishError
)
