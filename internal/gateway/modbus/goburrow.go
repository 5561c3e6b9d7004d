// internal/gateway/modbus/goburrow.go
package modbus

import (
	"fmt"
	"io"
	"net"
	"strconv"

	gomodbus "github.com/goburrow/modbus"
)

// goburrowSession adapts a goburrow client handler (TCP or serial RTU)
// to the Session capability. The handler carries the slave id and
// timeout; the session only unpacks raw payloads.
type goburrowSession struct {
	handler io.Closer
	client  gomodbus.Client
}

func dialTCP(cfg Config) (*goburrowSession, error) {
	endpoint := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	h := gomodbus.NewTCPClientHandler(endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.SlaveID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("connect tcp %s: %w", endpoint, err)
	}

	return &goburrowSession{
		handler: h,
		client:  gomodbus.NewClient(h),
	}, nil
}

func openSerial(cfg Config) (*goburrowSession, error) {
	h := gomodbus.NewRTUClientHandler(cfg.Serial.Port)
	h.BaudRate = cfg.Serial.BaudRate
	h.DataBits = cfg.Serial.ByteSize
	h.Parity = cfg.Serial.Parity
	h.StopBits = cfg.Serial.StopBits
	h.SlaveId = cfg.SlaveID
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Serial.Port, err)
	}

	return &goburrowSession{
		handler: h,
		client:  gomodbus.NewClient(h),
	}, nil
}

func (s *goburrowSession) ReadCoils(address, quantity uint16) ([]bool, error) {
	data, err := s.client.ReadCoils(address, quantity)
	if err != nil {
		return nil, err
	}
	return unpackBits(data, int(quantity)), nil
}

func (s *goburrowSession) ReadHoldingRegisters(address, quantity uint16) ([]uint16, error) {
	data, err := s.client.ReadHoldingRegisters(address, quantity)
	if err != nil {
		return nil, err
	}
	if len(data) != int(quantity)*2 {
		return nil, fmt.Errorf("modbus: register payload length %d, want %d", len(data), int(quantity)*2)
	}
	return unpackRegisters(data), nil
}

func (s *goburrowSession) ReadInputRegisters(address, quantity uint16) ([]uint16, error) {
	data, err := s.client.ReadInputRegisters(address, quantity)
	if err != nil {
		return nil, err
	}
	if len(data) != int(quantity)*2 {
		return nil, fmt.Errorf("modbus: register payload length %d, want %d", len(data), int(quantity)*2)
	}
	return unpackRegisters(data), nil
}

func (s *goburrowSession) WriteCoil(address uint16, on bool) error {
	// FC 5 encodes the coil state as 0xFF00 / 0x0000.
	value := uint16(0x0000)
	if on {
		value = 0xFF00
	}
	_, err := s.client.WriteSingleCoil(address, value)
	return err
}

func (s *goburrowSession) WriteRegister(address, value uint16) error {
	_, err := s.client.WriteSingleRegister(address, value)
	return err
}

func (s *goburrowSession) Close() error {
	return s.handler.Close()
}
