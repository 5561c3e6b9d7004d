// internal/gateway/modbus/client.go

// Package modbus opens transport sessions to Modbus devices. It wraps
// the wire-protocol stacks behind one small session capability; the
// gateway package selects a variant by transport tag and never touches
// the codec libraries directly.
package modbus

import (
	"fmt"
	"time"

	"github.com/x746b/modbus-mcp/internal/config"
)

// Config is the minimal transport config for one session.
type Config struct {
	Transport config.Transport
	Host      string
	Port      int
	SlaveID   uint8
	Serial    config.Serial
	Timeout   time.Duration
}

// Session is one open request/response channel to a device.
// Read results are unpacked to typed values; addresses and quantities
// are assumed range-checked by the caller.
type Session interface {
	ReadCoils(address, quantity uint16) ([]bool, error)
	ReadHoldingRegisters(address, quantity uint16) ([]uint16, error)
	ReadInputRegisters(address, quantity uint16) ([]uint16, error)
	WriteCoil(address uint16, on bool) error
	WriteRegister(address, value uint16) error
	Close() error
}

// Open establishes one session for the configured transport.
// ONE attempt per call; the caller owns Close.
func Open(cfg Config) (Session, error) {
	switch cfg.Transport {
	case config.TransportTCP:
		return dialTCP(cfg)
	case config.TransportUDP:
		return dialUDP(cfg)
	case config.TransportSerial:
		return openSerial(cfg)
	default:
		return nil, fmt.Errorf("modbus: unsupported transport %q", cfg.Transport)
	}
}

// ---- helpers (pure geometry) ----

func unpackBits(data []byte, count int) []bool {
	out := make([]bool, count)
	for i := 0; i < count; i++ {
		byteIdx := i / 8
		bitIdx := i % 8
		if byteIdx >= len(data) {
			out[i] = false
			continue
		}
		out[i] = (data[byteIdx]&(1<<bitIdx) != 0)
	}
	return out
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
