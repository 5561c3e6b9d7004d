// internal/gateway/resolver_test.go
package gateway

import (
	"testing"
	"time"

	"github.com/x746b/modbus-mcp/internal/config"
)

func testDefaults() config.Defaults {
	return config.Defaults{
		Transport:      config.TransportTCP,
		Host:           "192.168.1.10",
		Port:           502,
		SlaveID:        1,
		TimeoutSeconds: 1,
		Serial: config.Serial{
			Port:     "/dev/ttyUSB0",
			BaudRate: 9600,
			Parity:   "N",
			StopBits: 1,
			ByteSize: 8,
		},
	}
}

func TestResolve_EmptyOverrideKeepsDefaults(t *testing.T) {
	d := testDefaults()

	conn := Resolve(d, Override{})

	if conn.Host != d.Host || conn.Port != d.Port || conn.SlaveID != d.SlaveID {
		t.Fatalf("defaults not carried: %+v", conn)
	}
	if conn.Transport != d.Transport {
		t.Fatalf("transport: got=%q want=%q", conn.Transport, d.Transport)
	}
	if conn.Timeout != time.Second {
		t.Fatalf("timeout: got=%s want=1s", conn.Timeout)
	}
}

func TestResolve_FieldByFieldOverlay(t *testing.T) {
	d := testDefaults()
	slave := 42

	conn := Resolve(d, Override{
		Host:    "10.1.1.1",
		Port:    1502,
		SlaveID: &slave,
	})

	if conn.Host != "10.1.1.1" {
		t.Fatalf("host: got=%q", conn.Host)
	}
	if conn.Port != 1502 {
		t.Fatalf("port: got=%d", conn.Port)
	}
	if conn.SlaveID != 42 {
		t.Fatalf("slave id: got=%d", conn.SlaveID)
	}
}

func TestResolve_PartialOverlayFallsBack(t *testing.T) {
	d := testDefaults()

	conn := Resolve(d, Override{Host: "10.1.1.1"})

	if conn.Host != "10.1.1.1" {
		t.Fatalf("host not overridden: %q", conn.Host)
	}
	if conn.Port != d.Port {
		t.Fatalf("port should fall back: got=%d want=%d", conn.Port, d.Port)
	}
	if conn.SlaveID != d.SlaveID {
		t.Fatalf("slave id should fall back: got=%d want=%d", conn.SlaveID, d.SlaveID)
	}
}

func TestResolve_SlaveZeroIsAValidOverride(t *testing.T) {
	d := testDefaults()
	broadcast := 0

	conn := Resolve(d, Override{SlaveID: &broadcast})

	if conn.SlaveID != 0 {
		t.Fatalf("slave id 0 override lost: got=%d", conn.SlaveID)
	}
}

func TestResolve_SerialNeverOverridable(t *testing.T) {
	d := testDefaults()
	d.Transport = config.TransportSerial

	conn := Resolve(d, Override{Host: "10.1.1.1", Port: 9999})

	if conn.Serial != d.Serial {
		t.Fatalf("serial config must come from defaults: %+v", conn.Serial)
	}
	if conn.Endpoint() != "/dev/ttyUSB0" {
		t.Fatalf("serial endpoint: got=%q", conn.Endpoint())
	}
}
