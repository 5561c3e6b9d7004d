// internal/gateway/dispatcher.go
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/x746b/modbus-mcp/internal/config"
)

// Session is one open transport session to a device.
// The gateway depends on this capability only; the concrete variants
// live in gateway/modbus.
type Session interface {
	ReadCoils(address, quantity uint16) ([]bool, error)    // FC 1
	ReadHoldingRegisters(address, quantity uint16) ([]uint16, error) // FC 3
	ReadInputRegisters(address, quantity uint16) ([]uint16, error)   // FC 4
	WriteCoil(address uint16, on bool) error               // FC 5
	WriteRegister(address, value uint16) error             // FC 6
	Close() error
}

// OpenFunc opens exactly one session for a resolved connection.
// One attempt per call, no retries.
type OpenFunc func(conn EffectiveConnection) (Session, error)

// Dispatcher is the orchestration core: it resolves connections,
// acquires a session per operation, executes it, and folds every
// outcome into the Result contract.
type Dispatcher struct {
	defaults config.Defaults
	open     OpenFunc
}

// New creates a dispatcher over immutable defaults.
func New(defaults config.Defaults, open OpenFunc) (*Dispatcher, error) {
	if open == nil {
		return nil, errors.New("gateway: open func required")
	}
	return &Dispatcher{defaults: defaults, open: open}, nil
}

// Dispatch runs one operation end to end: validate, resolve, open,
// execute, shape, close. It always returns a Result; faults never
// escape as errors or panics. The session opened for the operation
// is closed on every path, including cancellation.
func (d *Dispatcher) Dispatch(ctx context.Context, op Operation, ov Override) Result {
	res := Result{Kind: op.Kind}

	if err := validate(op); err != nil {
		res.Err = &Failure{Kind: ValidationError, Message: err.Error()}
		return res
	}

	conn := Resolve(d.defaults, ov)

	// A context deadline tightens the per-session timeout so neither
	// open nor the exchange outlives the caller.
	if dl, ok := ctx.Deadline(); ok {
		if rem := time.Until(dl); rem < conn.Timeout {
			conn.Timeout = rem
		}
	}
	res.Conn = conn

	if err := ctx.Err(); err != nil {
		res.Err = &Failure{
			Kind:    TimeoutError,
			Message: fmt.Sprintf("aborted before connecting to %s: %v", conn.Endpoint(), err),
		}
		return res
	}

	sess, err := d.open(conn)
	if err != nil {
		res.Err = connectFailure(conn, err)
		return res
	}

	done := make(chan Result, 1)
	go func() {
		done <- execute(sess, conn, op)
	}()

	select {
	case r := <-done:
		_ = sess.Close()
		r.Conn = conn
		return r

	case <-ctx.Done():
		// Closing the session unblocks the in-flight exchange.
		_ = sess.Close()
		<-done
		res.Err = &Failure{
			Kind: TimeoutError,
			Message: fmt.Sprintf(
				"operation on slave %d at %s aborted: %v",
				conn.SlaveID, conn.Endpoint(), ctx.Err(),
			),
		}
		return res
	}
}

// execute performs the single request/response exchange and shapes the
// payload per operation kind. Addresses and counts are range-checked
// before this point.
func execute(sess Session, conn EffectiveConnection, op Operation) Result {
	res := Result{Kind: op.Kind}
	addr := uint16(op.Address)

	switch op.Kind {
	case ReadRegister:
		regs, err := sess.ReadHoldingRegisters(addr, 1)
		if err != nil {
			res.Err = exchangeFailure(conn, op, err)
			return res
		}
		if len(regs) != 1 {
			res.Err = shortResponse(conn, op, len(regs), 1)
			return res
		}
		v := regs[0]
		res.Register = &v

	case ReadHoldingRegisters:
		regs, err := sess.ReadHoldingRegisters(addr, uint16(op.Count))
		if err != nil {
			res.Err = exchangeFailure(conn, op, err)
			return res
		}
		if len(regs) != op.Count {
			res.Err = shortResponse(conn, op, len(regs), op.Count)
			return res
		}
		res.Registers = regs

	case ReadInputRegisters:
		regs, err := sess.ReadInputRegisters(addr, uint16(op.Count))
		if err != nil {
			res.Err = exchangeFailure(conn, op, err)
			return res
		}
		if len(regs) != op.Count {
			res.Err = shortResponse(conn, op, len(regs), op.Count)
			return res
		}
		res.Registers = regs

	case ReadCoils:
		bits, err := sess.ReadCoils(addr, uint16(op.Count))
		if err != nil {
			res.Err = exchangeFailure(conn, op, err)
			return res
		}
		if len(bits) != op.Count {
			res.Err = shortResponse(conn, op, len(bits), op.Count)
			return res
		}
		res.Coils = bits

	case WriteRegister:
		if err := sess.WriteRegister(addr, uint16(op.Value)); err != nil {
			res.Err = exchangeFailure(conn, op, err)
			return res
		}
		res.Echo = &WriteEcho{Address: op.Address, Register: uint16(op.Value)}

	case WriteCoil:
		if err := sess.WriteCoil(addr, op.Coil); err != nil {
			res.Err = exchangeFailure(conn, op, err)
			return res
		}
		res.Echo = &WriteEcho{Address: op.Address, Coil: op.Coil}

	default:
		// validate rejects unknown kinds before a session is opened.
		res.Err = &Failure{
			Kind:    ValidationError,
			Message: fmt.Sprintf("unknown operation %q", op.Kind),
		}
	}

	return res
}
