package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/noter/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	global = &sessionOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "noter",
		Short: base.Wrap80("Daily notes, overdue tasks and a journal on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addSessionArgs(cmd, global)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addDay(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addComplete(topLevel)
	addDelete(topLevel)
	addMigrate(topLevel)
	addFuture(topLevel)
	addOverdue(topLevel)
	addJournal(topLevel)
	addWindow(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addReport(topLevel)
	addInfo(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
