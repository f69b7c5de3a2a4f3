// Package compiledaemon manages the connection to the long-lived external
// compilation daemon. The daemon is addressed over its own JSON-RPC
// transport, independent of the editor-facing connection.
package compiledaemon

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"sync"
	"time"

	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/cranebuild/bspbridge/src/bridge/internal/executor"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyDaemon = "daemon"

// Config holds the daemon connection settings.
type Config struct {
	Address           string   `yaml:"address"`
	Autostart         bool     `yaml:"autostart"`
	Command           []string `yaml:"command"`
	StartupWaitMillis int      `yaml:"startupWaitMillis"`
}

// Gateway is the bridge's handle on the compile daemon connection.
type Gateway interface {
	// Connect establishes the daemon connection, spawning the daemon first
	// when autostart is configured and the initial dial fails.
	Connect(ctx context.Context) error
	// Call performs a request round-trip against the daemon.
	Call(ctx context.Context, method string, params, result interface{}) error
	// Close terminates the daemon connection. Safe to call when no
	// connection was ever established, and safe to call more than once.
	Close() error
	// Shutdown asks the daemon to stop, then closes the connection. Used when
	// the bridge itself is exiting rather than a single session ending.
	Shutdown(ctx context.Context) error
}

// Params define values to be used by the daemon gateway.
type Params struct {
	fx.In

	Config   config.Provider
	Logger   *zap.SugaredLogger
	Executor executor.Executor
}

type gateway struct {
	cfg      Config
	logger   *zap.SugaredLogger
	executor executor.Executor

	mu   sync.Mutex
	conn jsonrpc2.Conn

	dial func(address string) (net.Conn, error)
}

// New creates a new Gateway to the compile daemon.
func New(p Params) (Gateway, error) {
	cfg := Config{}
	if err := p.Config.Get(_configKeyDaemon).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyDaemon, err)
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("missing field %q in config", _configKeyDaemon+".address")
	}

	return &gateway{
		cfg:      cfg,
		logger:   p.Logger.With("gateway", "compiledaemon"),
		executor: p.Executor,
		dial: func(address string) (net.Conn, error) {
			return net.Dial("tcp", address)
		},
	}, nil
}

func (g *gateway) Connect(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.conn != nil {
		return nil
	}

	netConn, err := g.dial(g.cfg.Address)
	if err != nil {
		if !g.cfg.Autostart || len(g.cfg.Command) == 0 {
			return fmt.Errorf("dialing compile daemon at %q: %w", g.cfg.Address, err)
		}

		g.logger.Infow("compile daemon not reachable, spawning", "command", g.cfg.Command)
		cmd := exec.Command(g.cfg.Command[0], g.cfg.Command[1:]...)
		if err := g.executor.StartCommand(cmd, nil); err != nil {
			return fmt.Errorf("spawning compile daemon: %w", err)
		}
		time.Sleep(time.Duration(g.cfg.StartupWaitMillis) * time.Millisecond)

		netConn, err = g.dial(g.cfg.Address)
		if err != nil {
			return fmt.Errorf("dialing compile daemon after spawn: %w", err)
		}
	}

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(netConn))
	conn.Go(ctx, jsonrpc2.MethodNotFoundHandler)
	g.conn = conn
	g.logger.Infow("connected to compile daemon", "address", g.cfg.Address)
	return nil
}

func (g *gateway) Call(ctx context.Context, method string, params, result interface{}) error {
	g.mu.Lock()
	conn := g.conn
	g.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("compile daemon connection not established")
	}

	if _, err := conn.Call(ctx, method, params, result); err != nil {
		return fmt.Errorf("calling compile daemon method %q: %w", method, err)
	}
	return nil
}

func (g *gateway) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	conn := g.conn
	g.mu.Unlock()

	if conn == nil {
		return nil
	}

	if _, err := conn.Call(ctx, bsp.MethodDaemonShutdown, nil, nil); err != nil {
		// The daemon may already be gone; the connection still gets closed.
		g.logger.Warnw("compile daemon shutdown request failed", "error", err)
	}
	return g.Close()
}

func (g *gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.conn == nil {
		return nil
	}

	err := g.conn.Close()
	g.conn = nil
	return err
}
