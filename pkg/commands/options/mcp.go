package options

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// MCPOptions
type MCPOptions struct {
	Transport string
	Host      string
	Port      int
	Path      string
	TLSCert   string
	TLSKey    string
}

func AddMCPArgs(cmd *cobra.Command, o *MCPOptions) {
	cmd.Flags().StringVar(&o.Transport, "transport", "http", "transport to use: http or stdio")
	cmd.Flags().StringVar(&o.Host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&o.Port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&o.Path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&o.TLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&o.TLSKey, "http-tls-key", "", "TLS private key file for HTTPS")
}

// TransportName returns the lower-cased transport, defaulting to http.
func (o *MCPOptions) TransportName() (string, error) {
	switch t := strings.ToLower(strings.TrimSpace(o.Transport)); t {
	case "", "http":
		return "http", nil
	case "stdio":
		return t, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected http or stdio)", o.Transport)
	}
}

func (o *MCPOptions) host() string {
	if h := strings.TrimSpace(o.Host); h != "" {
		return h
	}
	return "127.0.0.1"
}

func (o *MCPOptions) ListenAddr() (string, error) {
	if o.Port < 0 || o.Port > 65535 {
		return "", fmt.Errorf("invalid http-port %d", o.Port)
	}
	return net.JoinHostPort(o.host(), strconv.Itoa(o.Port)), nil
}

// EndpointPath returns Path with a leading slash.
func (o *MCPOptions) EndpointPath() string {
	p := strings.TrimSpace(o.Path)
	if p == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// ListenURL is the address clients should connect to once the server is
// bound to a. Wildcard hosts are replaced by the bound or loopback address.
func (o *MCPOptions) ListenURL(a net.Addr) string {
	scheme := "http"
	if strings.TrimSpace(o.TLSCert) != "" {
		scheme = "https"
	}
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return scheme + "://" + a.String() + o.EndpointPath()
	}
	host := o.host()
	if host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(tcp.Port)) + o.EndpointPath()
}
