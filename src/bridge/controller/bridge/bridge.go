// Package bridge implements the protocol-facing business logic: the session
// lifecycle, the compile interceptor, and the workspace queries.
package bridge

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cranebuild/bspbridge/src/bridge/controller/prepare"
	"github.com/cranebuild/bspbridge/src/bridge/controller/watch"
	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/factory"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/buildengine"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/compiledaemon"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/editor"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/cranebuild/bspbridge/src/bridge/repository/session"
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_serverName    = "bsp-bridged"
	_serverVersion = "1.0.0"
	_bspVersion    = "2.1.0"

	// Configuration keys
	_idleTimeoutMinutesKey = "idleTimeoutMinutes"
)

var _languageIDs = []string{"kotlin", "java"}

// Controller orchestrates the business logic for each request.
type Controller interface {
	// Protocol methods.
	Initialize(ctx context.Context, params *bsp.InitializeBuildParams) (*bsp.InitializeBuildResult, error)
	Initialized(ctx context.Context) error
	Shutdown(ctx context.Context) error
	Exit(ctx context.Context) error

	// Workspace related methods.
	WorkspaceBuildTargets(ctx context.Context) (*bsp.WorkspaceBuildTargetsResult, error)
	Sources(ctx context.Context, params *bsp.SourcesParams) (*bsp.SourcesResult, error)

	// Build related methods.
	Compile(ctx context.Context, params *bsp.CompileParams) (*bsp.CompileResult, error)

	// Custom methods for use within this service.
	RequestFullShutdown(ctx context.Context) error
	InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, uuid uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner fx.Shutdowner
	Sessions   session.Repository
	Editor     editor.Gateway
	Daemon     compiledaemon.Gateway
	Engine     buildengine.Engine
	Prepare    prepare.Controller
	Watch      watch.Controller
	Logger     *zap.SugaredLogger
	Config     config.Provider
}

type controller struct {
	sessions           session.Repository
	shutdowner         fx.Shutdowner
	fullShutdown       bool
	idleTimer          *time.Timer
	idleTimerMu        sync.Mutex
	idleTimeoutMinutes time.Duration
	logger             *zap.SugaredLogger
	editor             editor.Gateway
	daemon             compiledaemon.Gateway
	engine             buildengine.Engine
	prepare            prepare.Controller
	watch              watch.Controller
	cfg                entity.BuildConfig
	wg                 sync.WaitGroup

	watchedMu sync.Mutex
	watched   map[uuid.UUID]map[entity.ScopeName]struct{}
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	ctx := context.Background()

	var timeoutMinutesRaw int64
	if err := p.Config.Get(_idleTimeoutMinutesKey).Populate(&timeoutMinutesRaw); err != nil || timeoutMinutesRaw == 0 {
		return nil, fmt.Errorf("unable to get idle timeout from config: %w", err)
	}

	cfg := entity.BuildConfig{}
	if err := p.Config.Get(entity.BuildConfigKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("unable to get build configuration: %w", err)
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []entity.ScopeName{entity.ScopeMain}
	}

	c := &controller{
		sessions:   p.Sessions,
		shutdowner: p.Shutdowner,
		logger:     p.Logger,
		editor:     p.Editor,
		daemon:     p.Daemon,
		engine:     p.Engine,
		prepare:    p.Prepare,
		watch:      p.Watch,
		cfg:        cfg,
		watched:    make(map[uuid.UUID]map[entity.ScopeName]struct{}),

		idleTimeoutMinutes: time.Duration(timeoutMinutesRaw) * time.Minute,
	}
	c.refreshIdleTimer(ctx)

	return c, nil
}

// primaryScope is the scope an unqualified compile request addresses.
func (c *controller) primaryScope() entity.ScopeName {
	return c.cfg.Scopes[0]
}

// ensureWatched registers the scope's source roots the first time a
// preparation for that scope succeeds. Initialization may reach Listening
// without watchers when the daemon is briefly unavailable; the next
// successful preparation recovers them.
func (c *controller) ensureWatched(ctx context.Context, id uuid.UUID, scope entity.ScopeName, roots []string) {
	c.watchedMu.Lock()
	defer c.watchedMu.Unlock()

	scopes, ok := c.watched[id]
	if !ok {
		scopes = make(map[entity.ScopeName]struct{})
		c.watched[id] = scopes
	}
	if _, done := scopes[scope]; done {
		return
	}

	if err := c.watch.Watch(ctx, scope, roots); err != nil {
		c.logger.Warnf("Failed to watch sources of scope %q: %v", scope, err)
		return
	}
	scopes[scope] = struct{}{}
}

// forgetWatched drops the session's watch registration record so a later
// session reusing the id starts clean.
func (c *controller) forgetWatched(id uuid.UUID) {
	c.watchedMu.Lock()
	defer c.watchedMu.Unlock()
	delete(c.watched, id)
}

// InitSession creates a new empty session and returns its UUID.
func (c *controller) InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error) {
	defer c.refreshIdleTimer(ctx)

	id := factory.UUID()

	if err := c.editor.RegisterClient(ctx, id, conn); err != nil {
		return uuid.Nil, err
	}

	if err := c.sessions.Set(ctx, &entity.Session{
		UUID:  id,
		Conn:  conn,
		State: entity.StateCreated,
	}); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// EndSession includes any cleanup at the end of the session, during or after
// the last JSON-RPC request.
func (c *controller) EndSession(ctx context.Context, uuid uuid.UUID) error {
	defer c.refreshIdleTimer(ctx)

	sessionCtx := context.WithValue(ctx, entity.SessionContextKey, uuid)
	if err := c.watch.Dispose(sessionCtx); err != nil {
		c.logger.Warnf("Disposing watchers for session %q: %v", uuid, err)
	}
	c.forgetWatched(uuid)

	if err := c.editor.DeregisterClient(ctx, uuid); err != nil {
		c.logger.Error(err)
	}

	return c.sessions.Delete(ctx, uuid)
}

// refreshIdleTimer ensures that the service shuts down after a defined inactivity period with no connections.
func (c *controller) refreshIdleTimer(ctx context.Context) error {
	c.idleTimerMu.Lock()
	defer c.idleTimerMu.Unlock()

	// First call initializes new timer and leaves it running prior to first connection.
	if c.idleTimer == nil {
		c.idleTimer = time.NewTimer(c.idleTimeoutMinutes)
		go func() {
			<-c.idleTimer.C
			c.logger.Info("Shutdown signal received.")
			if err := c.shutdowner.Shutdown(); err != nil {
				os.Exit(1)
			}
		}()
		return nil
	}

	// Subsequent calls stop the timer and reset it only if no connections are active.
	currentSessions, err := c.sessions.SessionCount(ctx)
	if err != nil {
		return fmt.Errorf("error resetting timeout: %w", err)
	}

	c.idleTimer.Stop()
	if currentSessions == 0 {
		c.idleTimer.Reset(c.idleTimeoutMinutes)
	}
	return nil
}
