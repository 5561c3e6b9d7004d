// internal/gateway/modbus/errors.go
package modbus

import (
	"context"
	"errors"
	"net"
	"os"

	gomodbus "github.com/goburrow/modbus"
	svmodbus "github.com/simonvetter/modbus"
)

// exceptionSentinels are the simonvetter errors produced from a Modbus
// exception response.
var exceptionSentinels = []error{
	svmodbus.ErrIllegalFunction,
	svmodbus.ErrIllegalDataAddress,
	svmodbus.ErrIllegalDataValue,
	svmodbus.ErrServerDeviceFailure,
	svmodbus.ErrAcknowledge,
	svmodbus.ErrServerDeviceBusy,
	svmodbus.ErrMemoryParityError,
	svmodbus.ErrGWPathUnavailable,
	svmodbus.ErrGWTargetFailedToRespond,
}

// IsTimeout reports whether err means the device did not answer in time.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, svmodbus.ErrRequestTimedOut) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

// ExceptionCode extracts the raw Modbus exception code when err is a
// goburrow exception response.
func ExceptionCode(err error) (byte, bool) {
	var me *gomodbus.ModbusError
	if errors.As(err, &me) {
		return me.ExceptionCode, true
	}
	return 0, false
}

// IsException reports whether err is a Modbus exception response from
// either stack.
func IsException(err error) bool {
	if _, ok := ExceptionCode(err); ok {
		return true
	}
	for _, sentinel := range exceptionSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
