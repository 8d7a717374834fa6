package ioweb

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
	"github.com/gnames/gndash/pkg/sampler"
	"github.com/gnames/gndash/pkg/validate"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	// Kind tells apart errors that share an HTTP status.
	Kind string `json:"kind,omitempty"`

	// Column is the missing column of a missing-column error.
	Column string `json:"column,omitempty"`

	// Matched is the number of matching records of a
	// no-displayable-images error.
	Matched int `json:"matched,omitempty"`

	Data any `json:"data,omitempty"`
}

const (
	kindWrongFileType  = "wrong-file-type"
	kindDecode         = "decode-error"
	kindParse          = "parse-error"
	kindTooLarge       = "too-large"
	kindMissingColumn  = "missing-column"
	kindNoDataset      = "no-dataset"
	kindNoSuchImages   = "no-such-images"
	kindNoDisplayable  = "no-displayable-images"
	kindBadField       = "bad-field"
	kindNoLocation     = "no-location"
	kindEmptyChart     = "empty-chart"
	kindNoSelection    = "no-selection"
	kindBadRequest     = "bad-request"
	kindUnknownSpecies = "unknown-species"
	kindRateLimit      = "rate-limit"
	kindInternal       = "internal"
)

var tags = strings.NewReplacer("<em>", "", "</em>", "")

func success(c *gin.Context, status int, data any) {
	c.JSON(status, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func fail(c *gin.Context, status int, kind, msg string) {
	c.AbortWithStatusJSON(status, Response{
		Code:    status,
		Message: msg,
		Kind:    kind,
	})
}

// failErr answers with the status and kind that match the error code.
func failErr(c *gin.Context, err error) {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, kindInternal,
			http.StatusText(http.StatusInternalServerError))
		return
	}

	status, kind := classify(gnErr.Code)
	res := Response{
		Code:    status,
		Message: message(gnErr),
		Kind:    kind,
	}
	if col, ok := validate.MissingColumn(err); ok {
		res.Column = col
	}
	if n, ok := sampler.Matched(gnErr); ok {
		res.Matched = n
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, res)
}

func classify(code gn.ErrorCode) (int, string) {
	switch code {
	case errcode.UploadFileTypeError:
		return http.StatusUnsupportedMediaType, kindWrongFileType
	case errcode.UploadDecodeError:
		return http.StatusUnprocessableEntity, kindDecode
	case errcode.UploadParseError:
		return http.StatusUnprocessableEntity, kindParse
	case errcode.UploadTooLargeError:
		return http.StatusRequestEntityTooLarge, kindTooLarge
	case errcode.ValidateMissingColumnError:
		return http.StatusUnprocessableEntity, kindMissingColumn
	case errcode.StoreNotFoundError:
		return http.StatusNotFound, kindNoDataset
	case errcode.SampleNoMatchError:
		return http.StatusNotFound, kindNoSuchImages
	case errcode.SampleNoImagesError:
		return http.StatusNotFound, kindNoDisplayable
	case errcode.ChartFieldError:
		return http.StatusBadRequest, kindBadField
	case errcode.ChartNoLocationError:
		return http.StatusConflict, kindNoLocation
	case errcode.ChartEmptyError:
		return http.StatusUnprocessableEntity, kindEmptyChart
	default:
		return http.StatusInternalServerError, kindInternal
	}
}

// message renders the user-facing text of an error without markup.
func message(e *gn.Error) string {
	msg := e.Msg
	if len(e.Vars) > 0 {
		msg = fmt.Sprintf(msg, e.Vars...)
	}
	return tags.Replace(msg)
}
