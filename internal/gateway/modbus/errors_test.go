// internal/gateway/modbus/errors_test.go
package modbus

import (
	"errors"
	"fmt"
	"os"
	"testing"

	gomodbus "github.com/goburrow/modbus"
	svmodbus "github.com/simonvetter/modbus"
)

type fakeNetError struct{ timeout bool }

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestIsTimeout(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{os.ErrDeadlineExceeded, true},
		{fmt.Errorf("read: %w", os.ErrDeadlineExceeded), true},
		{svmodbus.ErrRequestTimedOut, true},
		{&fakeNetError{timeout: true}, true},
		{&fakeNetError{timeout: false}, false},
		{errors.New("boom"), false},
		{&gomodbus.ModbusError{FunctionCode: 0x83, ExceptionCode: 2}, false},
	}

	for i, c := range cases {
		if got := IsTimeout(c.err); got != c.want {
			t.Fatalf("case %d (%v): got=%t want=%t", i, c.err, got, c.want)
		}
	}
}

func TestExceptionCode(t *testing.T) {
	err := fmt.Errorf("exchange: %w", &gomodbus.ModbusError{FunctionCode: 0x83, ExceptionCode: 2})

	code, ok := ExceptionCode(err)
	if !ok {
		t.Fatalf("expected exception code")
	}
	if code != 2 {
		t.Fatalf("code: got=%d want=2", code)
	}

	if _, ok := ExceptionCode(errors.New("boom")); ok {
		t.Fatalf("plain error must not yield an exception code")
	}
}

func TestIsException(t *testing.T) {
	if !IsException(&gomodbus.ModbusError{FunctionCode: 0x81, ExceptionCode: 1}) {
		t.Fatalf("goburrow exception not recognized")
	}
	if !IsException(svmodbus.ErrIllegalDataAddress) {
		t.Fatalf("simonvetter exception not recognized")
	}
	if IsException(errors.New("boom")) {
		t.Fatalf("plain error misclassified as exception")
	}
}
