// internal/gateway/types.go
package gateway

import (
	"net"
	"strconv"
	"time"

	"github.com/x746b/modbus-mcp/internal/config"
)

// OpKind names one callable device operation.
type OpKind string

const (
	ReadRegister         OpKind = "read_register"
	WriteRegister        OpKind = "write_register"
	ReadCoils            OpKind = "read_coils"
	WriteCoil            OpKind = "write_coil"
	ReadInputRegisters   OpKind = "read_input_registers"
	ReadHoldingRegisters OpKind = "read_multiple_holding_registers"
)

// Operation is one validated-shape device request.
// Fields beyond Address are consulted per kind:
// Count for the multi-read kinds, Value for write_register,
// Coil for write_coil.
type Operation struct {
	Kind    OpKind
	Address int
	Count   int
	Value   int
	Coil    bool
}

// Override carries the caller-supplied per-request connection fields.
// Zero Host/Port mean "use the default". SlaveID is a pointer because
// slave id 0 is a valid Modbus address.
type Override struct {
	Host    string
	Port    int
	SlaveID *int
}

// EffectiveConnection is the fully resolved connection descriptor for
// one operation. It lives for the duration of a single dispatch.
type EffectiveConnection struct {
	Transport config.Transport
	Host      string
	Port      int
	SlaveID   int
	Serial    config.Serial
	Timeout   time.Duration
}

// Endpoint renders the device endpoint for messages and dialing.
func (c EffectiveConnection) Endpoint() string {
	if c.Transport == config.TransportSerial {
		return c.Serial.Port
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ---- RESULT CONTRACT ----

// FailureKind classifies a failed operation.
type FailureKind string

const (
	ValidationError FailureKind = "validation_error"
	ConnectionError FailureKind = "connection_error"
	TimeoutError    FailureKind = "timeout_error"
	ProtocolError   FailureKind = "protocol_error"
)

// Failure is the error half of the result contract. Dispatch never
// returns a bare error; every fault is folded into one of these.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// WriteEcho confirms an accepted device write.
type WriteEcho struct {
	Address int
	// Register for write_register, Coil for write_coil.
	Register uint16
	Coil     bool
}

// Result is the outcome of one dispatched operation.
type Result struct {
	Kind OpKind
	Conn EffectiveConnection

	// Exactly one of these is set on success, depending on Kind.
	Register  *uint16    // read_register
	Registers []uint16   // read_input_registers, read_multiple_holding_registers
	Coils     []bool     // read_coils
	Echo      *WriteEcho // write_register, write_coil

	Err *Failure // non-nil means the operation failed
}
