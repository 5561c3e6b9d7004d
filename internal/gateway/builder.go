// internal/gateway/builder.go
package gateway

import (
	gwmodbus "github.com/x746b/modbus-mcp/internal/gateway/modbus"
)

// Open is the production OpenFunc: it establishes a real transport
// session for the resolved connection. Tests substitute their own.
func Open(conn EffectiveConnection) (Session, error) {
	sess, err := gwmodbus.Open(gwmodbus.Config{
		Transport: conn.Transport,
		Host:      conn.Host,
		Port:      conn.Port,
		SlaveID:   uint8(conn.SlaveID),
		Serial:    conn.Serial,
		Timeout:   conn.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}
