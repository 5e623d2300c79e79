package options

import (
	"errors"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
	// Interactive reports whether a prompt can be shown; defaults to checking
	// that stdin is a terminal.
	Interactive func() bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}

// Confirm asks label as a yes/no question. It returns true without asking
// when --yes is set or there is no terminal to ask on.
func (o *ConfirmOptions) Confirm(cmd *cobra.Command, label string) (bool, error) {
	if o.Yes {
		return true, nil
	}
	interactive := o.Interactive
	if interactive == nil {
		interactive = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	}
	if !interactive() {
		return true, nil
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopCloser{cmd.OutOrStdout()},
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
