// internal/tools/args.go
package tools

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/x746b/modbus-mcp/internal/gateway"
)

// asInt coerces a decoded JSON value into an integer. Numbers arrive
// as float64 from the JSON decoder; fractional values are rejected.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

func requireInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("parameter %q must be an integer", key)
	}
	return n, nil
}

func optionalInt(args map[string]any, key string) (*int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	n, ok := asInt(v)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an integer", key)
	}
	return &n, nil
}

func requireBool(args map[string]any, key string) (bool, error) {
	v, ok := args[key]
	if !ok {
		return false, fmt.Errorf("missing required parameter %q", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q must be a boolean", key)
	}
	return b, nil
}

func optionalString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string", key)
	}
	return s, nil
}

// overrideFromArgs extracts the per-request connection override.
// Bounds are enforced here because the uint8 slave id and the port
// number narrow below what JSON numbers can carry.
func overrideFromArgs(args map[string]any) (gateway.Override, error) {
	var ov gateway.Override

	host, err := optionalString(args, "host")
	if err != nil {
		return gateway.Override{}, err
	}
	ov.Host = host

	port, err := optionalInt(args, "port")
	if err != nil {
		return gateway.Override{}, err
	}
	if port != nil {
		if *port < 1 || *port > 65535 {
			return gateway.Override{}, fmt.Errorf("port %d out of range 1-65535", *port)
		}
		ov.Port = *port
	}

	slave, err := optionalInt(args, "slave_id")
	if err != nil {
		return gateway.Override{}, err
	}
	if slave != nil {
		if *slave < 0 || *slave > 255 {
			return gateway.Override{}, fmt.Errorf("slave_id %d out of range 0-255", *slave)
		}
		ov.SlaveID = slave
	}

	return ov, nil
}
