package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/noter/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

const (
	defaultListenAddr = "127.0.0.1:8080"
	defaultEndpoint   = "/mcp"
	healthPath        = "/healthz"
	shutdownTimeout   = 5 * time.Second
)

// Runner serves one session over MCP until ctx is done.
type Runner struct {
	App     *app.Service
	Name    string
	Version string
	Logger  *slog.Logger

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

func (r Runner) Do(ctx context.Context) error {
	if r.App == nil {
		return errors.New("mcp runner requires an open session")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	srv := r.newServer()

	switch t := r.Transport; t {
	case "", TransportHTTP:
		cfg, err := r.httpConfig()
		if err != nil {
			return err
		}
		return r.serveHTTP(ctx, srv, cfg)
	case TransportStdio:
		r.logger().Info("serving mcp on stdio")
		return server.NewStdioServer(srv).Listen(ctx, os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

func (r Runner) newServer() *server.MCPServer {
	name := r.Name
	if name == "" {
		name = "noter"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and edit daily notes, overdue tasks, future notes and the journal."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	svc := NewService(r.App)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

type httpConfig struct {
	addr     string
	endpoint string
	cert     string
	key      string
}

func (c httpConfig) tls() bool { return c.cert != "" }

// httpConfig fills in defaults and checks that TLS files come in pairs.
func (r Runner) httpConfig() (httpConfig, error) {
	cfg := httpConfig{
		addr:     strings.TrimSpace(r.HTTPListenAddr),
		endpoint: strings.TrimSpace(r.HTTPEndpointPath),
		cert:     strings.TrimSpace(r.HTTPServerCert),
		key:      strings.TrimSpace(r.HTTPServerKey),
	}
	if (cfg.cert == "") != (cfg.key == "") {
		return httpConfig{}, errors.New("both http tls cert and key must be provided")
	}
	if cfg.addr == "" {
		cfg.addr = defaultListenAddr
	}
	if cfg.endpoint == "" {
		cfg.endpoint = defaultEndpoint
	}
	if !strings.HasPrefix(cfg.endpoint, "/") {
		cfg.endpoint = "/" + cfg.endpoint
	}
	if cfg.endpoint == healthPath {
		return httpConfig{}, fmt.Errorf("endpoint %s is reserved", healthPath)
	}
	return cfg, nil
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, cfg httpConfig) error {
	mux := http.NewServeMux()
	mux.Handle(cfg.endpoint, server.NewStreamableHTTPServer(srv))
	mux.HandleFunc(healthPath, r.health)
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", cfg.addr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", cfg.addr, err)
	}
	r.logger().Info("serving mcp over http", "addr", ln.Addr().String(), "endpoint", cfg.endpoint, "tls", cfg.tls())
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if cfg.tls() {
		err = httpSrv.ServeTLS(ln, cfg.cert, cfg.key)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// health reports the server is up along with today's summary.
func (r Runner) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"today":  r.App.Today().String(),
		"notes":  r.App.TodaySummary(),
	})
}
