// Package ui launches the interactive day strip.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/noter/pkg/app"
	teaui "tableflip.dev/noter/pkg/runner/tea"
)

// ErrNotTerminal is returned when stdout is not attached to a terminal.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

type UI struct {
	Service *app.Service
	// IsTerminal reports whether the UI can draw; defaults to checking stdout.
	IsTerminal func() bool
	run        func(context.Context, *app.Service) error
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not open ui, no session")
	}
	isTerm := d.IsTerminal
	if isTerm == nil {
		isTerm = func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		}
	}
	if !isTerm() {
		return ErrNotTerminal
	}
	run := d.run
	if run == nil {
		run = teaui.Run
	}
	return run(ctx, d.Service)
}
