package bridge

import (
	"context"
	"fmt"

	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"go.uber.org/multierr"
)

// Initialize records the editor's identity, connects the compile daemon, and
// assigns the session's build target.
func (c *controller) Initialize(ctx context.Context, params *bsp.InitializeBuildParams) (*bsp.InitializeBuildResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting session from context: %w", err)
	}

	if err := s.Transition(entity.StateConnected); err != nil {
		return nil, err
	}

	s.InitializeParams = params
	s.WorkspaceRoot = params.RootURI.Filename()
	// The target identity is fixed here; change notifications address it for
	// the remainder of the session.
	s.Target = &bsp.BuildTargetIdentifier{URI: params.RootURI}

	if err := c.daemon.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting compile daemon: %w", err)
	}

	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("setting updated session state: %w", err)
	}

	return &bsp.InitializeBuildResult{
		DisplayName: _serverName,
		Version:     _serverVersion,
		BspVersion:  _bspVersion,
		Capabilities: bsp.BuildServerCapabilities{
			CompileProvider: &bsp.CompileProvider{LanguageIDs: _languageIDs},
			CanReload:       true,
		},
	}, nil
}

// Initialized runs the initial preparation for each configured scope, starts
// watching the resolved source roots, and kicks off the first build in the
// background.
func (c *controller) Initialized(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	if err := s.Transition(entity.StateListening); err != nil {
		return err
	}
	if err := c.sessions.Set(ctx, s); err != nil {
		return fmt.Errorf("setting updated session state: %w", err)
	}

	for _, scope := range c.cfg.Scopes {
		desc, err := c.prepare.Prepare(ctx, scope)
		if err != nil {
			// The workspace may not be buildable yet. The next change or
			// compile request retries, and the first one to succeed also
			// registers the scope's watchers.
			c.logger.Warnf("Initial preparation of scope %q failed: %v", scope, err)
			continue
		}
		c.ensureWatched(ctx, s.UUID, scope, desc.Sources.Roots)

		c.runInitialBuild(ctx, desc)
	}

	c.editor.ShowMessage(ctx, &bsp.ShowMessageParams{
		Message: "Build bridge is ready.",
		Type:    bsp.MessageInfo,
	})

	return nil
}

// runInitialBuild launches the first build of a scope without holding up the
// initialized handshake. Whatever goes wrong is logged and dropped.
func (c *controller) runInitialBuild(ctx context.Context, desc *entity.BuildDescriptor) {
	asyncCtx := context.WithValue(context.Background(), entity.SessionContextKey, ctx.Value(entity.SessionContextKey))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				c.logger.Errorf("Initial build of scope %q panicked: %v", desc.Scope, r)
			}
		}()

		if err := c.prepare.BuildOnce(asyncCtx, desc); err != nil {
			c.logger.Warnf("Initial build of scope %q failed: %v", desc.Scope, err)
		}
	}()
}

// Shutdown tears down the session's watchers and daemon connection. Safe to
// call at any lifecycle point and safe to call twice.
func (c *controller) Shutdown(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	if s.State == entity.StateShuttingDown || s.State == entity.StateTerminated {
		return nil
	}
	if err := s.Transition(entity.StateShuttingDown); err != nil {
		return err
	}

	var errs error
	errs = multierr.Append(errs, c.watch.Dispose(ctx))
	c.forgetWatched(s.UUID)
	if c.fullShutdown {
		errs = multierr.Append(errs, c.daemon.Shutdown(ctx))
	} else {
		errs = multierr.Append(errs, c.daemon.Close())
	}

	if err := c.sessions.Set(ctx, s); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("setting updated session state: %w", err))
	}
	return errs
}

// Exit is used to either clean up from an individual connection, or shut down
// the whole server.
func (c *controller) Exit(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("error during session exit: %w", err)
	}

	// An exit without a preceding shutdown still releases resources.
	if s.State.CanTransition(entity.StateShuttingDown) {
		if err := c.Shutdown(ctx); err != nil {
			c.logger.Warnf("Shutdown during exit: %v", err)
		}
		if s, err = c.sessions.GetFromContext(ctx); err != nil {
			return fmt.Errorf("error during session exit: %w", err)
		}
	}

	if err := s.Transition(entity.StateTerminated); err != nil {
		return err
	}
	if err := c.sessions.Set(ctx, s); err != nil {
		return fmt.Errorf("setting updated session state: %w", err)
	}

	if c.fullShutdown {
		// Zero out the timer to trigger immediate shutdown.
		c.idleTimerMu.Lock()
		c.idleTimer.Reset(0)
		c.idleTimerMu.Unlock()
		return nil
	}

	return c.EndSession(ctx, s.UUID)
}

// RequestFullShutdown will set the controller to treat subsequent Shutdown and Exit requests as requests to exit the entire process.
func (c *controller) RequestFullShutdown(ctx context.Context) error {
	c.fullShutdown = true

	return nil
}
