// internal/tools/server.go

// Package tools exposes the gateway operations as MCP tools over the
// schema-validated tool surface. It owns argument coercion and result
// wording; all device work goes through the dispatcher.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/x746b/modbus-mcp/internal/gateway"
)

const serverName = "Modbus MCP Server"
const serverVersion = "1.0.0"

// dispatcher is the exact contract the tool surface needs.
type dispatcher interface {
	Dispatch(ctx context.Context, op gateway.Operation, ov gateway.Override) gateway.Result
}

// NewServer builds the MCP server with all six Modbus tools and the
// analyze_register prompt registered.
func NewServer(d dispatcher) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
	)

	h := &handlers{dispatch: d}

	s.AddTool(mcp.NewTool("read_register",
		append([]mcp.ToolOption{
			mcp.WithDescription("Read a single Modbus holding register."),
			mcp.WithNumber("address",
				mcp.Required(),
				mcp.Description("The address of the holding register (0-65535)."),
			),
		}, connectionOpts()...)...,
	), h.readRegister)

	s.AddTool(mcp.NewTool("write_register",
		append([]mcp.ToolOption{
			mcp.WithDescription("Write a value to a Modbus holding register."),
			mcp.WithNumber("address",
				mcp.Required(),
				mcp.Description("The address of the holding register (0-65535)."),
			),
			mcp.WithNumber("value",
				mcp.Required(),
				mcp.Description("The value to write (0-65535)."),
			),
		}, connectionOpts()...)...,
	), h.writeRegister)

	s.AddTool(mcp.NewTool("read_coils",
		append([]mcp.ToolOption{
			mcp.WithDescription("Read the status of multiple Modbus coils."),
			mcp.WithNumber("address",
				mcp.Required(),
				mcp.Description("The starting address of the coils (0-65535)."),
			),
			mcp.WithNumber("count",
				mcp.Required(),
				mcp.Description("The number of coils to read (1-2000)."),
			),
		}, connectionOpts()...)...,
	), h.readCoils)

	s.AddTool(mcp.NewTool("write_coil",
		append([]mcp.ToolOption{
			mcp.WithDescription("Write a value to a single Modbus coil."),
			mcp.WithNumber("address",
				mcp.Required(),
				mcp.Description("The address of the coil (0-65535)."),
			),
			mcp.WithBoolean("value",
				mcp.Required(),
				mcp.Description("The value to write (true for ON, false for OFF)."),
			),
		}, connectionOpts()...)...,
	), h.writeCoil)

	s.AddTool(mcp.NewTool("read_input_registers",
		append([]mcp.ToolOption{
			mcp.WithDescription("Read multiple Modbus input registers."),
			mcp.WithNumber("address",
				mcp.Required(),
				mcp.Description("The starting address of the input registers (0-65535)."),
			),
			mcp.WithNumber("count",
				mcp.Required(),
				mcp.Description("The number of registers to read (1-125)."),
			),
		}, connectionOpts()...)...,
	), h.readInputRegisters)

	s.AddTool(mcp.NewTool("read_multiple_holding_registers",
		append([]mcp.ToolOption{
			mcp.WithDescription("Read multiple Modbus holding registers."),
			mcp.WithNumber("address",
				mcp.Required(),
				mcp.Description("The starting address of the holding registers (0-65535)."),
			),
			mcp.WithNumber("count",
				mcp.Required(),
				mcp.Description("The number of registers to read (1-125)."),
			),
		}, connectionOpts()...)...,
	), h.readHoldingRegisters)

	s.AddPrompt(mcp.NewPrompt("analyze_register",
		mcp.WithPromptDescription("Prompt to analyze a Modbus register value."),
		mcp.WithArgument("value",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("The register value to analyze."),
		),
	), analyzeRegister)

	return s
}

// connectionOpts are the per-request connection override parameters
// shared by every tool. Serial parameters are process-wide and have no
// per-request form.
func connectionOpts() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("slave_id",
			mcp.Description("The Modbus slave ID (device ID). Defaults to the configured slave id."),
		),
		mcp.WithString("host",
			mcp.Description("The target host IP or hostname. Defaults to the configured host."),
		),
		mcp.WithNumber("port",
			mcp.Description("The target port. Defaults to the configured port."),
		),
	}
}
