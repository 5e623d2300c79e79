package options

import (
	"errors"

	"github.com/spf13/cobra"
)

// AddOptions
type AddOptions struct {
	Message string
	Future  bool
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().BoolVar(&o.Future, "future", false,
		"Add to the future list instead of a day.")
}

// Validate rejects --future combined with --on.
func (o *AddOptions) Validate(on *OnOptions) error {
	if o.Future && on != nil && on.OnString != "" {
		return errors.New("--future and --on can not be combined")
	}
	return nil
}
