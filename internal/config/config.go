// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Transport selects the Modbus transport variant.
type Transport string

const (
	TransportTCP    Transport = "tcp"
	TransportUDP    Transport = "udp"
	TransportSerial Transport = "serial"
)

// ---- DEFAULTS ----

// Fallback values applied when neither the environment nor a config
// file provides a setting.
const (
	DefaultTransport      = TransportTCP
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 502
	DefaultSlaveID        = 1
	DefaultSerialPort     = "/dev/ttyUSB0"
	DefaultBaudRate       = 9600
	DefaultParity         = "N"
	DefaultStopBits       = 1
	DefaultByteSize       = 8
	DefaultTimeoutSeconds = 1.0
)

// Serial holds the serial line parameters. They are process-wide:
// per-request overrides never touch them.
type Serial struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
	Parity   string `yaml:"parity"`
	StopBits int    `yaml:"stop_bits"`
	ByteSize int    `yaml:"byte_size"`
}

// Defaults is the process-wide connection configuration.
// It is built once at startup and passed by value afterwards.
type Defaults struct {
	Transport      Transport `yaml:"transport"`
	Host           string    `yaml:"host"`
	Port           int       `yaml:"port"`
	SlaveID        int       `yaml:"slave_id"`
	TimeoutSeconds float64   `yaml:"timeout_seconds"`
	Serial         Serial    `yaml:"serial"`
}

// Timeout returns the configured device timeout as a duration.
func (d Defaults) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds * float64(time.Second))
}

// FromEnv builds Defaults from MODBUS_* environment variables,
// falling back to the documented defaults for unset variables.
func FromEnv() (Defaults, error) {
	d := Defaults{
		Transport:      DefaultTransport,
		Host:           DefaultHost,
		Port:           DefaultPort,
		SlaveID:        DefaultSlaveID,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Serial: Serial{
			Port:     DefaultSerialPort,
			BaudRate: DefaultBaudRate,
			Parity:   DefaultParity,
			StopBits: DefaultStopBits,
			ByteSize: DefaultByteSize,
		},
	}

	var err error

	if v := os.Getenv("MODBUS_TYPE"); v != "" {
		d.Transport = Transport(v)
	}
	if v := os.Getenv("MODBUS_HOST"); v != "" {
		d.Host = v
	}
	if d.Port, err = intEnv("MODBUS_PORT", d.Port); err != nil {
		return Defaults{}, err
	}
	if d.SlaveID, err = intEnv("MODBUS_DEFAULT_SLAVE_ID", d.SlaveID); err != nil {
		return Defaults{}, err
	}
	if d.TimeoutSeconds, err = floatEnv("MODBUS_TIMEOUT", d.TimeoutSeconds); err != nil {
		return Defaults{}, err
	}

	if v := os.Getenv("MODBUS_SERIAL_PORT"); v != "" {
		d.Serial.Port = v
	}
	if v := os.Getenv("MODBUS_PARITY"); v != "" {
		d.Serial.Parity = v
	}
	if d.Serial.BaudRate, err = intEnv("MODBUS_BAUDRATE", d.Serial.BaudRate); err != nil {
		return Defaults{}, err
	}
	if d.Serial.StopBits, err = intEnv("MODBUS_STOPBITS", d.Serial.StopBits); err != nil {
		return Defaults{}, err
	}
	if d.Serial.ByteSize, err = intEnv("MODBUS_BYTESIZE", d.Serial.ByteSize); err != nil {
		return Defaults{}, err
	}

	Normalize(&d)
	return d, nil
}

// Load builds Defaults from the environment, then overlays settings
// from a YAML file. Fields absent from the file keep their env or
// fallback value.
func Load(path string) (Defaults, error) {
	d, err := FromEnv()
	if err != nil {
		return Defaults{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	Normalize(&d)
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}
