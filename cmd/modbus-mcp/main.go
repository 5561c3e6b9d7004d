// cmd/modbus-mcp/main.go
package main

import (
	"log"
	"net"
	"os"
	"strconv"

	"github.com/mark3labs/mcp-go/server"

	"github.com/x746b/modbus-mcp/internal/config"
	"github.com/x746b/modbus-mcp/internal/gateway"
	"github.com/x746b/modbus-mcp/internal/tools"
)

func main() {
	// stdout carries the MCP stdio channel; everything else goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetPrefix("modbus-mcp: ")

	// --------------------
	// Load + validate defaults
	// --------------------

	var (
		cfg config.Defaults
		err error
	)

	if len(os.Args) > 1 {
		cfg, err = config.Load(os.Args[1])
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	log.Printf("defaults: transport=%s endpoint=%s slave=%d timeout=%s",
		cfg.Transport, endpoint(cfg), cfg.SlaveID, cfg.Timeout())

	// --------------------
	// Build dispatcher + serve
	// --------------------

	d, err := gateway.New(cfg, gateway.Open)
	if err != nil {
		log.Fatalf("dispatcher build failed: %v", err)
	}

	if err := server.ServeStdio(tools.NewServer(d)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func endpoint(cfg config.Defaults) string {
	if cfg.Transport == config.TransportSerial {
		return cfg.Serial.Port
	}
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}
