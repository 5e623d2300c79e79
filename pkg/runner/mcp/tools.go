package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolFunc returns the payload of a tool call. Strings are sent as text,
// anything else as JSON. Errors become tool errors so the client sees them.
type toolFunc func(ctx context.Context, req mcp.CallToolRequest) (any, error)

func handle(fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		v, err := fn(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if s, ok := v.(string); ok {
			return mcp.NewToolResultText(s), nil
		}
		res, err := mcp.NewToolResultJSON(v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
		}
		return res, nil
	}
}

func listing[T any](summary string, notes []T) map[string]any {
	return map[string]any{"summary": summary, "count": len(notes), "notes": notes}
}

func registerTools(srv *server.MCPServer, svc *Service) {
	for _, t := range noteTools(svc) {
		srv.AddTool(t.Tool, t.Handler)
	}
	for _, t := range journalTools(svc) {
		srv.AddTool(t.Tool, t.Handler)
	}
	for _, t := range backupTools(svc) {
		srv.AddTool(t.Tool, t.Handler)
	}
}

const (
	idDesc  = "Note identifier."
	dayDesc = "Day as YYYY-MM-DD, today, yesterday or tomorrow."
)

func noteTools(svc *Service) []server.ServerTool {
	return []server.ServerTool{{
		Tool: mcp.NewTool("list_notes",
			mcp.WithDescription("List the notes stored for a day."),
			mcp.WithString("date", mcp.Description(dayDesc+" Defaults to today.")),
		),
		Handler: handle(func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
			return svc.Day(ctx, req.GetString("date", ""))
		}),
	}, {
		Tool: mcp.NewTool("add_note",
			mcp.WithDescription("Append a note to a day or to the future list."),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text of the new note.")),
			mcp.WithString("date", mcp.Description(dayDesc+" Use future for the undated list. Defaults to today.")),
		),
		Handler: handle(func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
			var args struct {
				Text string `json:"text"`
				Date string `json:"date"`
			}
			if err := req.BindArguments(&args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			return svc.AddNote(ctx, args.Date, args.Text)
		}),
	}, {
		Tool: mcp.NewTool("update_note",
			mcp.WithDescription("Change the text or completion of a note."),
			mcp.WithString("id", mcp.Required(), mcp.Description(idDesc)),
			mcp.WithString("text", mcp.Description("Replacement text.")),
			mcp.WithBoolean("completed", mcp.Description("Mark the note done (true) or open (false).")),
		),
		Handler: handle(func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
			id, err := req.RequireString("id")
			if err != nil {
				return nil, err
			}
			opts := UpdateNoteOptions{ID: id}
			args := req.GetArguments()
			if _, ok := args["text"]; ok {
				text := req.GetString("text", "")
				opts.Text = &text
			}
			if _, ok := args["completed"]; ok {
				done := req.GetBool("completed", false)
				opts.Completed = &done
			}
			return svc.UpdateNote(ctx, opts)
		}),
	}, {
		Tool: mcp.NewTool("delete_note",
			mcp.WithDescription("Remove a note from whichever list holds it."),
			mcp.WithString("id", mcp.Required(), mcp.Description(idDesc)),
		),
		Handler: handle(func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
			id, err := req.RequireString("id")
			if err != nil {
				return nil, err
			}
			dto, err := svc.DeleteNote(ctx, id)
			if err != nil {
				return nil, err
			}
			return map[string]any{"deleted": dto}, nil
		}),
	}, {
		Tool: mcp.NewTool("move_note",
			mcp.WithDescription("Migrate a note to another day or to the future list."),
			mcp.WithString("id", mcp.Required(), mcp.Description(idDesc)),
			mcp.WithString("to", mcp.Required(), mcp.Description(dayDesc+" Use future for the undated list.")),
		),
		Handler: handle(func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
			id, err := req.RequireString("id")
			if err != nil {
				return nil, err
			}
			to, err := req.RequireString("to")
			if err != nil {
				return nil, err
			}
			return svc.MoveNote(ctx, id, to)
		}),
	}, {
		Tool: mcp.NewTool("list_overdue",
			mcp.WithDescription("List unfinished notes from earlier days, oldest first."),
			mcp.WithNumber("lookback", mcp.Description("How many days back to search. Defaults to the configured lookback.")),
		),
		Handler: handle(func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
			list, summary, err := svc.Overdue(ctx, req.GetInt("lookback", 0))
			if err != nil {
				return nil, err
			}
			return listing(summary, list), nil
		}),
	}, {
		Tool: mcp.NewTool("list_future",
			mcp.WithDescription("List notes that are not planned for a day yet."),
		),
		Handler: handle(func(ctx context.Context, _ mcp.CallToolRequest) (any, error) {
			list, summary, err := svc.Future(ctx)
			if err != nil {
				return nil, err
			}
			return listing(summary, list), nil
		}),
	}}
}

func journalTools(svc *Service) []server.ServerTool {
	return []server.ServerTool{{
		Tool: mcp.NewTool("list_journal",
			mcp.WithDescription("List journal entries, newest first."),
		),
		Handler: handle(func(ctx context.Context, _ mcp.CallToolRequest) (any, error) {
			entries, err := svc.Journal(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"count": len(entries), "entries": entries}, nil
		}),
	}, {
		Tool: mcp.NewTool("write_journal",
			mcp.WithDescription("Create or update a journal entry. Blank content deletes the entry."),
			mcp.WithString("content", mcp.Required(), mcp.Description("Entry text; the first line is the title.")),
			mcp.WithString("id", mcp.Description("Existing entry identifier. Omit to create a new entry.")),
		),
		Handler: handle(func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
			content, err := req.RequireString("content")
			if err != nil {
				return nil, err
			}
			dto, err := svc.WriteJournal(ctx, req.GetString("id", ""), content)
			if err != nil {
				return nil, err
			}
			if dto == nil {
				return map[string]any{"deleted": true}, nil
			}
			return dto, nil
		}),
	}}
}

func backupTools(svc *Service) []server.ServerTool {
	return []server.ServerTool{{
		Tool: mcp.NewTool("export_data",
			mcp.WithDescription("Export a JSON backup of notes and the journal."),
			mcp.WithBoolean("all", mcp.Description("Include every stored day instead of the window around today.")),
		),
		Handler: handle(func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
			return svc.Export(ctx, req.GetBool("all", false))
		}),
	}, {
		Tool: mcp.NewTool("import_data",
			mcp.WithDescription("Restore a JSON backup. Buckets in the backup replace stored ones."),
			mcp.WithString("data", mcp.Required(), mcp.Description("Backup document as produced by export_data.")),
		),
		Handler: handle(func(ctx context.Context, req mcp.CallToolRequest) (any, error) {
			data, err := req.RequireString("data")
			if err != nil {
				return nil, err
			}
			if err := svc.Import(ctx, data); err != nil {
				return nil, err
			}
			return map[string]any{"imported": true}, nil
		}),
	}}
}
