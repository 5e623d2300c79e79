package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/note"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note to a day or to the future list",
		Example: `
noter add buy milk
noter add --on=tomorrow call the bank
noter add --future learn to juggle
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note")
			}
			ao.Message = strings.Join(args, " ")
			return ao.Validate(oo)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			on, err := oo.GetOn(svc.Today())
			if err != nil {
				return output.HandleError(err)
			}
			s := note.Add{
				Service: svc,
				On:      on,
				Future:  ao.Future,
				Text:    ao.Message,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddAddArgs(cmd, ao)
	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace the text of a note",
		Example: `
noter edit <note id> buy oat milk
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a note id and the new text")
			}
			io.ID = args[0]
			text = strings.Join(args[1:], " ")
			return nil
		},
		ValidArgsFunction: noteIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := note.Edit{
				Service: svc,
				ID:      io.ID,
				Text:    text,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var undo bool

	cmd := &cobra.Command{
		Use:     "complete",
		Aliases: []string{"completed", "done"},
		Short:   "Mark a note as done",
		Example: `
noter complete <note id>
noter complete --undo <note id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a note id")
			}
			io.ID = args[0]
			return nil
		},
		ValidArgsFunction: noteIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := note.Complete{
				Service: svc,
				ID:      io.ID,
				Undo:    undo,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the note as open again.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Example: `
noter delete <note id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a note id")
			}
			io.ID = args[0]
			return nil
		},
		ValidArgsFunction: noteIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := note.Delete{
				Service: svc,
				ID:      io.ID,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addMigrate(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OnOptions{}
	var future bool

	cmd := &cobra.Command{
		Use:     "migrate",
		Aliases: []string{"move", "mv"},
		Short:   "Move a note to another day or to the future list",
		Example: `
noter migrate <note id> --on=tomorrow
noter migrate <note id> --future
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a note id")
			}
			io.ID = args[0]
			if future == (oo.OnString != "") {
				return errors.New("requires exactly one of --on or --future")
			}
			return nil
		},
		ValidArgsFunction: noteIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			to, err := oo.GetOn(svc.Today())
			if err != nil {
				return output.HandleError(err)
			}
			s := note.Migrate{
				Service: svc,
				ID:      io.ID,
				To:      to,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().BoolVar(&future, "future", false, "Move to the future list.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
