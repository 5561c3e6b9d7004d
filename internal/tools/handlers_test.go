// internal/tools/handlers_test.go
package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/x746b/modbus-mcp/internal/config"
	"github.com/x746b/modbus-mcp/internal/gateway"
)

// ---- fake dispatcher ----

type fakeDispatcher struct {
	lastOp gateway.Operation
	lastOv gateway.Override
	res    gateway.Result
	calls  int
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, op gateway.Operation, ov gateway.Override) gateway.Result {
	f.calls++
	f.lastOp = op
	f.lastOv = ov
	r := f.res
	r.Kind = op.Kind
	return r
}

func testConn() gateway.EffectiveConnection {
	return gateway.EffectiveConnection{
		Transport: config.TransportTCP,
		Host:      "127.0.0.1",
		Port:      502,
		SlaveID:   1,
	}
}

func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatalf("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is not text: %T", res.Content[0])
	}
	return tc.Text
}

// ---- tests ----

func TestReadRegister_FormatsValue(t *testing.T) {
	value := uint16(777)
	fd := &fakeDispatcher{res: gateway.Result{Conn: testConn(), Register: &value}}
	h := &handlers{dispatch: fd}

	res, err := h.readRegister(context.Background(), request(map[string]any{
		"address": float64(100),
	}))
	if err != nil {
		t.Fatalf("handler err=%v", err)
	}

	if fd.lastOp.Kind != gateway.ReadRegister || fd.lastOp.Address != 100 {
		t.Fatalf("operation: got=%+v", fd.lastOp)
	}

	got := resultText(t, res)
	if got != "Slave 1, Register 100 Value: 777" {
		t.Fatalf("text: got=%q", got)
	}
}

func TestWriteCoil_Confirmation(t *testing.T) {
	fd := &fakeDispatcher{res: gateway.Result{
		Conn: testConn(),
		Echo: &gateway.WriteEcho{Address: 5, Coil: true},
	}}
	h := &handlers{dispatch: fd}

	res, err := h.writeCoil(context.Background(), request(map[string]any{
		"address": float64(5),
		"value":   true,
	}))
	if err != nil {
		t.Fatalf("handler err=%v", err)
	}

	if fd.lastOp.Kind != gateway.WriteCoil || fd.lastOp.Address != 5 || !fd.lastOp.Coil {
		t.Fatalf("operation: got=%+v", fd.lastOp)
	}

	got := resultText(t, res)
	if got != "Successfully wrote true to coil 5 on slave 1" {
		t.Fatalf("text: got=%q", got)
	}
}

func TestReadCoils_PassesCountAndOverride(t *testing.T) {
	fd := &fakeDispatcher{res: gateway.Result{
		Conn:  testConn(),
		Coils: []bool{true, false, true},
	}}
	h := &handlers{dispatch: fd}

	_, err := h.readCoils(context.Background(), request(map[string]any{
		"address":  float64(10),
		"count":    float64(3),
		"slave_id": float64(9),
		"host":     "10.0.0.7",
		"port":     float64(1502),
	}))
	if err != nil {
		t.Fatalf("handler err=%v", err)
	}

	if fd.lastOp.Count != 3 {
		t.Fatalf("count: got=%d want=3", fd.lastOp.Count)
	}
	if fd.lastOv.Host != "10.0.0.7" || fd.lastOv.Port != 1502 {
		t.Fatalf("override endpoint: got=%+v", fd.lastOv)
	}
	if fd.lastOv.SlaveID == nil || *fd.lastOv.SlaveID != 9 {
		t.Fatalf("override slave id: got=%v", fd.lastOv.SlaveID)
	}
}

func TestMissingRequiredParam(t *testing.T) {
	fd := &fakeDispatcher{}
	h := &handlers{dispatch: fd}

	res, err := h.readRegister(context.Background(), request(map[string]any{}))
	if err != nil {
		t.Fatalf("handler err=%v", err)
	}

	if !res.IsError {
		t.Fatalf("expected tool error for missing address")
	}
	if fd.calls != 0 {
		t.Fatalf("dispatcher must not run on bad arguments")
	}
}

func TestFailureBecomesToolError(t *testing.T) {
	fd := &fakeDispatcher{res: gateway.Result{
		Conn: testConn(),
		Err: &gateway.Failure{
			Kind:    gateway.ConnectionError,
			Message: "cannot connect to tcp device at 127.0.0.1:502: connection refused",
		},
	}}
	h := &handlers{dispatch: fd}

	res, err := h.readRegister(context.Background(), request(map[string]any{
		"address": float64(0),
	}))
	if err != nil {
		t.Fatalf("handler err=%v", err)
	}

	if !res.IsError {
		t.Fatalf("expected tool error result")
	}
	got := resultText(t, res)
	if !strings.Contains(got, string(gateway.ConnectionError)) {
		t.Fatalf("error text must carry the failure kind: %q", got)
	}
}

func TestAnalyzeRegisterPrompt(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"value": "1234"}

	res, err := analyzeRegister(context.Background(), req)
	if err != nil {
		t.Fatalf("prompt err=%v", err)
	}

	if len(res.Messages) != 3 {
		t.Fatalf("messages: got=%d want=3", len(res.Messages))
	}

	first, ok := res.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("first message is not text: %T", res.Messages[0].Content)
	}
	if !strings.Contains(first.Text, "1234") {
		t.Fatalf("first message must quote the value: %q", first.Text)
	}
}
