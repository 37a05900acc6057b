//go:build !linux

package hal

import (
	"errors"
)

var errResetUnsupported = errors.New("device reset is only supported on linux")

type ExecReset struct {
	BeforeExec func()
}

func (ExecReset) Reset() error {
	return errResetUnsupported
}

type RebootReset struct{}

func (RebootReset) Reset() error {
	return errResetUnsupported
}
