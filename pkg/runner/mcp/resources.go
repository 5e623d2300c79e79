package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const jsonMIME = "application/json"

// readFunc produces the payload of a resource read; it is served as JSON.
type readFunc func(ctx context.Context, req mcp.ReadResourceRequest) (any, error)

func asJSON(fn readFunc) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		v, err := fn(ctx, req)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: jsonMIME,
			Text:     string(data),
		}}, nil
	}
}

func registerResources(srv *server.MCPServer, svc *Service) {
	srv.AddResource(
		mcp.NewResource("noter://today", "Today",
			mcp.WithResourceDescription("Today's notes with a short summary."),
			mcp.WithMIMEType(jsonMIME)),
		asJSON(func(ctx context.Context, _ mcp.ReadResourceRequest) (any, error) {
			return svc.Day(ctx, "")
		}),
	)
	srv.AddResource(
		mcp.NewResource("noter://future", "Future",
			mcp.WithResourceDescription("Notes that are not planned for a day yet."),
			mcp.WithMIMEType(jsonMIME)),
		asJSON(func(ctx context.Context, _ mcp.ReadResourceRequest) (any, error) {
			list, summary, err := svc.Future(ctx)
			if err != nil {
				return nil, err
			}
			return listing(summary, list), nil
		}),
	)
	srv.AddResourceTemplate(
		mcp.NewResourceTemplate("noter://days/{date}", "Day Notes",
			mcp.WithTemplateDescription("Notes stored for a single day (YYYY-MM-DD)."),
			mcp.WithTemplateMIMEType(jsonMIME)),
		server.ResourceTemplateHandlerFunc(asJSON(func(ctx context.Context, req mcp.ReadResourceRequest) (any, error) {
			date := templateArg(req.Params.Arguments["date"])
			if date == "" {
				return nil, errors.New("date is required")
			}
			return svc.Day(ctx, date)
		})),
	)
}

// templateArg unwraps a URI template variable, which arrives as a string or
// a one-element list.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}
