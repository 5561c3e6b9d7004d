// internal/gateway/classify.go
package gateway

import (
	"fmt"

	gwmodbus "github.com/x746b/modbus-mcp/internal/gateway/modbus"
)

// connectFailure maps an open-stage error. Everything at this stage is
// a ConnectionError, including a dial that ran out the timeout.
func connectFailure(conn EffectiveConnection, err error) *Failure {
	return &Failure{
		Kind: ConnectionError,
		Message: fmt.Sprintf(
			"cannot connect to %s device at %s: %v",
			conn.Transport, conn.Endpoint(), err,
		),
	}
}

// exchangeFailure maps an error raised during the request/response
// exchange: timeouts become TimeoutError, everything else (exception
// responses, undecodable replies, a transport that died mid-exchange)
// becomes ProtocolError.
func exchangeFailure(conn EffectiveConnection, op Operation, err error) *Failure {
	if gwmodbus.IsTimeout(err) {
		return &Failure{
			Kind: TimeoutError,
			Message: fmt.Sprintf(
				"slave %d at %s did not respond to %s at address %d within %s",
				conn.SlaveID, conn.Endpoint(), op.Kind, op.Address, conn.Timeout,
			),
		}
	}

	if code, ok := gwmodbus.ExceptionCode(err); ok {
		return &Failure{
			Kind: ProtocolError,
			Message: fmt.Sprintf(
				"slave %d at %s rejected %s at address %d: %v (exception code %d)",
				conn.SlaveID, conn.Endpoint(), op.Kind, op.Address, err, code,
			),
		}
	}

	if gwmodbus.IsException(err) {
		return &Failure{
			Kind: ProtocolError,
			Message: fmt.Sprintf(
				"slave %d at %s rejected %s at address %d: %v",
				conn.SlaveID, conn.Endpoint(), op.Kind, op.Address, err,
			),
		}
	}

	return &Failure{
		Kind: ProtocolError,
		Message: fmt.Sprintf(
			"invalid response from slave %d at %s for %s at address %d: %v",
			conn.SlaveID, conn.Endpoint(), op.Kind, op.Address, err,
		),
	}
}

// shortResponse covers a decodable reply whose payload length does not
// match the requested quantity.
func shortResponse(conn EffectiveConnection, op Operation, got, want int) *Failure {
	return &Failure{
		Kind: ProtocolError,
		Message: fmt.Sprintf(
			"slave %d at %s returned %d values for %s at address %d, want %d",
			conn.SlaveID, conn.Endpoint(), got, op.Kind, op.Address, want,
		),
	}
}
