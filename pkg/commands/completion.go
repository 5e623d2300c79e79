package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/note"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(noter completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(noter completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// noteIDCompletions offers the ids of today's notes and the future list,
// with the note text as the description.
func noteIDCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, err := openSession()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	var candidates []note.Note
	candidates = append(candidates, svc.Repo.LoadNotes(svc.Today())...)
	candidates = append(candidates, svc.Repo.LoadFutureNotes()...)
	for _, n := range candidates {
		if strings.HasPrefix(n.ID, toComplete) {
			ids = append(ids, n.ID+"\t"+n.Text)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func overdueIDCompletions(toComplete string) []string {
	svc, err := openSession()
	if err != nil {
		return nil
	}
	var ids []string
	for _, o := range svc.Overdue.Compute(svc.Overdue.Lookback()) {
		if strings.HasPrefix(o.ID(), toComplete) {
			ids = append(ids, o.ID()+"\t"+o.Text())
		}
	}
	return ids
}
