package ionotify

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
)

var errNotConnected = errors.New("client is not connected")

func NotConnectedError(topic string) error {
	msg := "MQTT broker is not available, event for <em>%s</em> is dropped"
	vars := []any{topic}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NotifyConnectError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errNotConnected),
	}
}

func PublishError(topic string, err error) error {
	msg := "Cannot publish upload event to <em>%s</em>"
	vars := []any{topic}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NotifyPublishError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: publish to %s: %w", fn.Name(), topic, err),
	}
}
