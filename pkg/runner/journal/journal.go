// Package journal provides runners for the free-form journal.
package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/printers"
)

// List prints every entry, newest first.
type List struct {
	Service *app.Service
	ShowID  bool
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list journal, no session")
	}
	n.Service.Repo.InvalidateJournalCache()
	entries := n.Service.Journal.Entries()

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.TitleWithCount("Journal", len(entries))
	pp.Journal(entries)
	return nil
}

// Show prints a single entry in full. With Markdown set the body is rendered
// through glamour using Style, "dark" when empty.
type Show struct {
	Service  *app.Service
	ID       string
	Markdown bool
	Style    string
	Width    int
	Out      io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show journal entry, no session")
	}
	n.Service.Repo.InvalidateJournalCache()
	e, ok := n.Service.Journal.Get(n.ID)
	if !ok {
		return fmt.Errorf("journal entry %q not found", n.ID)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Title(e.Title())
	pp.Message(fmt.Sprintf("created %s, updated %s", e.CreatedAt, e.UpdatedAt))
	pp.NewLine()
	body := bodyOf(e.Content)
	if n.Markdown && body != "" {
		rendered, err := n.render(body)
		if err != nil {
			return err
		}
		body = strings.TrimRight(rendered, "\n")
	}
	pp.Body(body)
	return nil
}

func (n *Show) render(body string) (string, error) {
	style := n.Style
	if style == "" {
		style = "dark"
	}
	width := n.Width
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("journal: markdown renderer: %w", err)
	}
	return renderer.Render(body)
}

// Write creates an entry, or replaces the content of ID. Blank content
// deletes the entry.
type Write struct {
	Service *app.Service
	ID      string
	Content string
	ShowID  bool
	Out     io.Writer
}

func (n *Write) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not write journal, no session")
	}
	e, kept, err := n.Service.Journal.Save(n.ID, n.Content)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if kept {
		pp.Message(fmt.Sprintf("saved %q", e.Title()))
	} else {
		pp.Message("blank entry removed")
	}
	return nil
}

// Delete removes an entry.
type Delete struct {
	Service *app.Service
	ID      string
	Out     io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete journal entry, no session")
	}
	if _, ok := n.Service.Journal.Get(n.ID); !ok {
		return fmt.Errorf("journal entry %q not found", n.ID)
	}
	if err := n.Service.Journal.Delete(n.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Message("deleted " + n.ID)
	return nil
}

// bodyOf drops the title line.
func bodyOf(content string) string {
	_, rest, _ := strings.Cut(content, "\n")
	return strings.TrimRight(rest, "\n")
}
