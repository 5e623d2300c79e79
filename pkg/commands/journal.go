package commands

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/journal"
)

func addJournal(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List journal entries",
		Example: `
noter journal
noter journal show <entry id>
noter journal write "Trip" "Packed the bags"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := journal.List{
				Service: svc,
				ShowID:  ido.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, output)

	addJournalShow(cmd)
	addJournalWrite(cmd)
	addJournalDelete(cmd)
	topLevel.AddCommand(cmd)
}

func addJournalShow(parent *cobra.Command) {
	var plain bool

	cmd := &cobra.Command{
		Use:   "show <entry id>",
		Short: "Print one journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := journal.Show{
				Service:  svc,
				ID:       args[0],
				Markdown: !plain && isatty.IsTerminal(os.Stdout.Fd()),
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the entry as written instead of rendering markdown.")
	parent.AddCommand(cmd)
}

func addJournalWrite(parent *cobra.Command) {
	ido := &options.IDOptions{}
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "write [lines...]",
		Short: "Create or replace a journal entry",
		Long: `Each argument becomes one line of the entry; the first line is its title.
With --id the entry is replaced. Blank content deletes the entry.`,
		Example: `
noter journal write "Trip" "Packed the bags"
noter journal write --id <entry id> --stdin < entry.txt
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			content := strings.Join(args, "\n")
			if fromStdin {
				b, err := readAll(cmd.InOrStdin())
				if err != nil {
					return output.HandleError(err)
				}
				content = b
			}
			if content == "" && ido.ID == "" {
				return errors.New("requires entry content")
			}
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			s := journal.Write{
				Service: svc,
				ID:      ido.ID,
				Content: content,
				ShowID:  ido.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddIDArgs(cmd, ido)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the entry from stdin.")
	parent.AddCommand(cmd)
}

func addJournalDelete(parent *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <entry id>",
		Aliases: []string{"rm"},
		Short:   "Delete a journal entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return output.HandleError(err)
			}
			ok, err := co.Confirm(cmd, "Delete journal entry "+args[0])
			if err != nil || !ok {
				return output.HandleError(err)
			}
			s := journal.Delete{
				Service: svc,
				ID:      args[0],
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddConfirmArgs(cmd, co)
	parent.AddCommand(cmd)
}

func readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	return string(b), err
}
