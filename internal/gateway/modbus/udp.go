// internal/gateway/modbus/udp.go
package modbus

import (
	"fmt"
	"net"
	"strconv"

	svmodbus "github.com/simonvetter/modbus"
)

// udpSession carries Modbus TCP framing over a UDP socket.
// goburrow has no UDP transporter, so this variant rides on the
// simonvetter stack and its udp:// scheme.
type udpSession struct {
	client *svmodbus.ModbusClient
}

func dialUDP(cfg Config) (*udpSession, error) {
	endpoint := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	mc, err := svmodbus.NewClient(&svmodbus.ClientConfiguration{
		URL:     "udp://" + endpoint,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("udp client %s: %w", endpoint, err)
	}

	if err := mc.Open(); err != nil {
		return nil, fmt.Errorf("connect udp %s: %w", endpoint, err)
	}

	if err := mc.SetUnitId(cfg.SlaveID); err != nil {
		_ = mc.Close()
		return nil, fmt.Errorf("udp %s: set unit id %d: %w", endpoint, cfg.SlaveID, err)
	}

	return &udpSession{client: mc}, nil
}

func (s *udpSession) ReadCoils(address, quantity uint16) ([]bool, error) {
	return s.client.ReadCoils(address, quantity)
}

func (s *udpSession) ReadHoldingRegisters(address, quantity uint16) ([]uint16, error) {
	return s.client.ReadRegisters(address, quantity, svmodbus.HOLDING_REGISTER)
}

func (s *udpSession) ReadInputRegisters(address, quantity uint16) ([]uint16, error) {
	return s.client.ReadRegisters(address, quantity, svmodbus.INPUT_REGISTER)
}

func (s *udpSession) WriteCoil(address uint16, on bool) error {
	return s.client.WriteCoil(address, on)
}

func (s *udpSession) WriteRegister(address, value uint16) error {
	return s.client.WriteRegister(address, value)
}

func (s *udpSession) Close() error {
	return s.client.Close()
}
