package commands

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/commands/options"
	"tableflip.dev/noter/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes daily notes, overdue tasks, the future
list and the journal through the Model Context Protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			transport, err := mo.TransportName()
			if err != nil {
				return err
			}
			svc, err := openSession()
			if err != nil {
				return err
			}

			r := mcp.Runner{
				App:              svc,
				Name:             "noter",
				Version:          version,
				Logger:           slog.Default(),
				Transport:        mcp.Transport(transport),
				HTTPEndpointPath: mo.EndpointPath(),
				HTTPServerCert:   mo.TLSCert,
				HTTPServerKey:    mo.TLSKey,
			}
			if r.Transport == mcp.TransportHTTP {
				if r.HTTPListenAddr, err = mo.ListenAddr(); err != nil {
					return err
				}
				r.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", mo.ListenURL(a))
				}
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddMCPArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
