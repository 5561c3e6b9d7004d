// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(d Defaults) error {
	switch d.Transport {
	case TransportTCP, TransportUDP, TransportSerial:
	default:
		return fmt.Errorf(
			"config: invalid transport %q: must be 'tcp', 'udp', or 'serial'",
			d.Transport,
		)
	}

	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("config: port %d out of range 1-65535", d.Port)
	}

	if d.SlaveID < 0 || d.SlaveID > 255 {
		return fmt.Errorf("config: default slave id %d out of range 0-255", d.SlaveID)
	}

	if d.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: timeout must be > 0, got %g", d.TimeoutSeconds)
	}

	// Serial parameters are consulted only for serial transport.
	if d.Transport != TransportSerial {
		return nil
	}

	if d.Serial.Port == "" {
		return fmt.Errorf("config: serial transport requires a serial port path")
	}

	switch d.Serial.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf(
			"config: invalid parity %q: must be 'N', 'E', or 'O'",
			d.Serial.Parity,
		)
	}

	if d.Serial.BaudRate <= 0 {
		return fmt.Errorf("config: baud rate must be > 0, got %d", d.Serial.BaudRate)
	}

	if d.Serial.StopBits != 1 && d.Serial.StopBits != 2 {
		return fmt.Errorf("config: stop bits must be 1 or 2, got %d", d.Serial.StopBits)
	}

	if d.Serial.ByteSize < 5 || d.Serial.ByteSize > 8 {
		return fmt.Errorf("config: byte size must be 5-8, got %d", d.Serial.ByteSize)
	}

	return nil
}
