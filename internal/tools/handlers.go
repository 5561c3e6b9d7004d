// internal/tools/handlers.go
package tools

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/x746b/modbus-mcp/internal/gateway"
)

type handlers struct {
	dispatch dispatcher
}

func (h *handlers) readRegister(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := requireInt(args, "address")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ov, err := overrideFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := h.dispatch.Dispatch(ctx, gateway.Operation{
		Kind:    gateway.ReadRegister,
		Address: address,
	}, ov)
	if res.Err != nil {
		return failureResult(res.Err), nil
	}

	log.Printf("read register %d from slave %d at %s: %d",
		address, res.Conn.SlaveID, res.Conn.Endpoint(), *res.Register)

	return mcp.NewToolResultText(fmt.Sprintf(
		"Slave %d, Register %d Value: %d",
		res.Conn.SlaveID, address, *res.Register,
	)), nil
}

func (h *handlers) writeRegister(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := requireInt(args, "address")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := requireInt(args, "value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ov, err := overrideFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := h.dispatch.Dispatch(ctx, gateway.Operation{
		Kind:    gateway.WriteRegister,
		Address: address,
		Value:   value,
	}, ov)
	if res.Err != nil {
		return failureResult(res.Err), nil
	}

	log.Printf("wrote %d to register %d on slave %d at %s",
		value, address, res.Conn.SlaveID, res.Conn.Endpoint())

	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully wrote %d to register %d on slave %d",
		res.Echo.Register, res.Echo.Address, res.Conn.SlaveID,
	)), nil
}

func (h *handlers) readCoils(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := requireInt(args, "address")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count, err := requireInt(args, "count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ov, err := overrideFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := h.dispatch.Dispatch(ctx, gateway.Operation{
		Kind:    gateway.ReadCoils,
		Address: address,
		Count:   count,
	}, ov)
	if res.Err != nil {
		return failureResult(res.Err), nil
	}

	log.Printf("read %d coils starting at %d from slave %d at %s",
		count, address, res.Conn.SlaveID, res.Conn.Endpoint())

	return mcp.NewToolResultText(fmt.Sprintf(
		"Slave %d, Coils %d to %d: %v",
		res.Conn.SlaveID, address, address+count-1, res.Coils,
	)), nil
}

func (h *handlers) writeCoil(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := requireInt(args, "address")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := requireBool(args, "value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ov, err := overrideFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := h.dispatch.Dispatch(ctx, gateway.Operation{
		Kind:    gateway.WriteCoil,
		Address: address,
		Coil:    value,
	}, ov)
	if res.Err != nil {
		return failureResult(res.Err), nil
	}

	log.Printf("wrote %t to coil %d on slave %d at %s",
		value, address, res.Conn.SlaveID, res.Conn.Endpoint())

	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully wrote %t to coil %d on slave %d",
		res.Echo.Coil, res.Echo.Address, res.Conn.SlaveID,
	)), nil
}

func (h *handlers) readInputRegisters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := requireInt(args, "address")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count, err := requireInt(args, "count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ov, err := overrideFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := h.dispatch.Dispatch(ctx, gateway.Operation{
		Kind:    gateway.ReadInputRegisters,
		Address: address,
		Count:   count,
	}, ov)
	if res.Err != nil {
		return failureResult(res.Err), nil
	}

	log.Printf("read %d input registers starting at %d from slave %d at %s",
		count, address, res.Conn.SlaveID, res.Conn.Endpoint())

	return mcp.NewToolResultText(fmt.Sprintf(
		"Slave %d, Input Registers %d to %d: %v",
		res.Conn.SlaveID, address, address+count-1, res.Registers,
	)), nil
}

func (h *handlers) readHoldingRegisters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	address, err := requireInt(args, "address")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count, err := requireInt(args, "count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ov, err := overrideFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := h.dispatch.Dispatch(ctx, gateway.Operation{
		Kind:    gateway.ReadHoldingRegisters,
		Address: address,
		Count:   count,
	}, ov)
	if res.Err != nil {
		return failureResult(res.Err), nil
	}

	log.Printf("read %d holding registers starting at %d from slave %d at %s",
		count, address, res.Conn.SlaveID, res.Conn.Endpoint())

	return mcp.NewToolResultText(fmt.Sprintf(
		"Slave %d, Holding Registers %d to %d: %v",
		res.Conn.SlaveID, address, address+count-1, res.Registers,
	)), nil
}

// failureResult renders a gateway failure as an MCP tool error.
// The kind prefix lets the caller tell bad input from an unreachable
// or rejecting device.
func failureResult(f *gateway.Failure) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", f.Kind, f.Message))
}

func analyzeRegister(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	value := req.Params.Arguments["value"]

	return mcp.NewGetPromptResult(
		"Analyze a Modbus register value",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(
				fmt.Sprintf("I read this value from a Modbus register: %s", value),
			)),
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(
				"Can you help me understand what it means?",
			)),
			mcp.NewPromptMessage(mcp.RoleAssistant, mcp.NewTextContent(
				"I'll help analyze the register value. Please provide any context about the device or system.",
			)),
		},
	), nil
}
