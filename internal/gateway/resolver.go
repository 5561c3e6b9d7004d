// internal/gateway/resolver.go
package gateway

import "github.com/x746b/modbus-mcp/internal/config"

// Resolve overlays per-request override fields onto the process-wide
// defaults and produces the connection descriptor for one operation.
// Pure: no IO, cannot fail. Serial parameters are never overridable
// and always come from defaults.
func Resolve(d config.Defaults, o Override) EffectiveConnection {
	conn := EffectiveConnection{
		Transport: d.Transport,
		Host:      d.Host,
		Port:      d.Port,
		SlaveID:   d.SlaveID,
		Serial:    d.Serial,
		Timeout:   d.Timeout(),
	}

	if o.Host != "" {
		conn.Host = o.Host
	}
	if o.Port != 0 {
		conn.Port = o.Port
	}
	if o.SlaveID != nil {
		conn.SlaveID = *o.SlaveID
	}

	return conn
}
