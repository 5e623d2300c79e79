package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("empty result %+v", res)
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func callTool(t *testing.T, tools []server.ServerTool, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	for _, tool := range tools {
		if tool.Tool.Name != name {
			continue
		}
		var req mcp.CallToolRequest
		req.Params.Name = name
		req.Params.Arguments = args
		res, err := tool.Handler(context.Background(), req)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		return res
	}
	t.Fatalf("no tool named %s", name)
	return nil
}

func TestHandle(t *testing.T) {
	ctx := context.Background()

	res, _ := handle(func(context.Context, mcp.CallToolRequest) (any, error) {
		return nil, errors.New("boom")
	})(ctx, mcp.CallToolRequest{})
	if !res.IsError || resultText(t, res) != "boom" {
		t.Fatalf("expected tool error, got %+v", res)
	}

	res, _ = handle(func(context.Context, mcp.CallToolRequest) (any, error) {
		return "plain", nil
	})(ctx, mcp.CallToolRequest{})
	if res.IsError || resultText(t, res) != "plain" {
		t.Fatalf("expected text, got %+v", res)
	}

	res, _ = handle(func(context.Context, mcp.CallToolRequest) (any, error) {
		return map[string]int{"n": 1}, nil
	})(ctx, mcp.CallToolRequest{})
	if res.IsError || !strings.Contains(resultText(t, res), `"n":1`) {
		t.Fatalf("expected json, got %+v", res)
	}
}

func TestNoteToolsRoundTrip(t *testing.T) {
	svc := newTestService(t)
	tools := noteTools(svc)

	res := callTool(t, tools, "add_note", map[string]any{"text": "Water plants", "date": "2024-06-10"})
	if res.IsError {
		t.Fatalf("add_note failed: %s", resultText(t, res))
	}

	res = callTool(t, tools, "list_overdue", map[string]any{})
	if text := resultText(t, res); !strings.Contains(text, "Water plants") || !strings.Contains(text, `"count":1`) {
		t.Fatalf("unexpected overdue listing %s", text)
	}

	res = callTool(t, tools, "update_note", map[string]any{"id": "missing", "completed": true})
	if !res.IsError {
		t.Fatal("expected error for unknown id")
	}
	res = callTool(t, tools, "move_note", map[string]any{"id": "x"})
	if !res.IsError {
		t.Fatal("expected error when target is missing")
	}
}

func TestDayResourceTemplate(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AddNote(context.Background(), "2024-06-14", "Yesterday's job"); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	read := asJSON(func(ctx context.Context, req mcp.ReadResourceRequest) (any, error) {
		return svc.Day(ctx, templateArg(req.Params.Arguments["date"]))
	})

	var req mcp.ReadResourceRequest
	req.Params.URI = "noter://days/2024-06-14"
	req.Params.Arguments = map[string]any{"date": []string{"2024-06-14"}}
	contents, err := read(context.Background(), req)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok || text.URI != req.Params.URI || !strings.Contains(text.Text, "Yesterday's job") {
		t.Fatalf("unexpected contents %+v", contents)
	}
}
