// internal/gateway/validate.go
package gateway

import "fmt"

// Modbus protocol limits (quantities per the application protocol,
// addresses and register values are 16-bit).
const (
	maxAddress       = 65535
	maxRegisterValue = 65535
	maxCoilCount     = 2000
	maxRegisterCount = 125
)

// validate checks an operation structurally before any connection is
// attempted. A non-nil return becomes Failure{ValidationError}.
func validate(op Operation) error {
	if op.Address < 0 || op.Address > maxAddress {
		return fmt.Errorf("address %d out of range 0-%d", op.Address, maxAddress)
	}

	switch op.Kind {
	case ReadRegister:
		return nil

	case WriteRegister:
		if op.Value < 0 || op.Value > maxRegisterValue {
			return fmt.Errorf("value %d out of range 0-%d", op.Value, maxRegisterValue)
		}
		return nil

	case WriteCoil:
		return nil

	case ReadCoils:
		if op.Count < 1 {
			return fmt.Errorf("count must be positive, got %d", op.Count)
		}
		if op.Count > maxCoilCount {
			return fmt.Errorf("count %d exceeds %d coils", op.Count, maxCoilCount)
		}
		return nil

	case ReadInputRegisters, ReadHoldingRegisters:
		if op.Count < 1 {
			return fmt.Errorf("count must be positive, got %d", op.Count)
		}
		if op.Count > maxRegisterCount {
			return fmt.Errorf("count %d exceeds %d registers", op.Count, maxRegisterCount)
		}
		return nil

	default:
		return fmt.Errorf("unknown operation %q", op.Kind)
	}
}
