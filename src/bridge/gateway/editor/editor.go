// Package editor is used to send outbound notifications to the connected
// editor. All calls should include a context carrying a session UUID, which
// routes the notification to the correct connection.
package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/cranebuild/bspbridge/src/bridge/mapper"
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

const _errSendToEditor = "sending notification to editor: %w"

// Gateway is used to send outbound notifications to the editor.
type Gateway interface {
	// RegisterClient registers a new client with the gateway. Should be called each time a new editor connection is initialized.
	RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error
	// DeregisterClient removes a client from the gateway. Should be called each time an editor connection is closed.
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	// DidChangeBuildTarget notifies the editor that build definitions changed.
	DidChangeBuildTarget(ctx context.Context, params *bsp.DidChangeBuildTargetParams) error
	// LogMessage sends a log line to the editor's output panel.
	LogMessage(ctx context.Context, params *bsp.LogMessageParams) error
	// ShowMessage surfaces a message directly to the user.
	ShowMessage(ctx context.Context, params *bsp.ShowMessageParams) error
}

type gateway struct {
	connections map[uuid.UUID]jsonrpc2.Conn
	clientsMu   sync.Mutex
	logger      *zap.Logger
}

// New returns a Gateway for sending editor notifications.
func New(logger *zap.Logger) Gateway {
	return &gateway{
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      logger,
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.connections[id] = *conn
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.connections, id)
	return nil
}

func (g *gateway) DidChangeBuildTarget(ctx context.Context, params *bsp.DidChangeBuildTargetParams) error {
	conn, err := g.getConn(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToEditor, err)
	}
	return conn.Notify(ctx, bsp.MethodBuildTargetDidChange, params)
}

func (g *gateway) LogMessage(ctx context.Context, params *bsp.LogMessageParams) error {
	conn, err := g.getConn(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToEditor, err)
	}
	return conn.Notify(ctx, bsp.MethodBuildLogMessage, params)
}

func (g *gateway) ShowMessage(ctx context.Context, params *bsp.ShowMessageParams) error {
	conn, err := g.getConn(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToEditor, err)
	}
	return conn.Notify(ctx, bsp.MethodBuildShowMessage, params)
}

// getConn resolves the connection for the session on the current context.
func (g *gateway) getConn(ctx context.Context) (jsonrpc2.Conn, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	conn, ok := g.connections[id]
	if !ok {
		return nil, fmt.Errorf("no editor connection registered for session %q", id)
	}
	return conn, nil
}
