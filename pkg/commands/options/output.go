package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions switches a command between the coloured note listing and
// machine-readable JSON.
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Print notes and errors as JSON.")
}

// HandleError reports err as {"error": "..."} on stdout when --json is set
// and swallows it, so scripts read a single JSON document per run.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || !o.JSON {
		return err
	}
	b, merr := json.Marshal(struct {
		Error string `json:"error"`
	}{err.Error()})
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
