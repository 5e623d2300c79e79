package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
noter ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := openSession()
			if err != nil {
				return err
			}
			i := ui.UI{Service: svc}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
