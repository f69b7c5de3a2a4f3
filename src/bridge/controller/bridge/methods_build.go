package bridge

import (
	"context"
	"fmt"

	"github.com/cranebuild/bspbridge/src/bridge/gateway/buildengine"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
)

// Compile intercepts a compile request: the build is prepared on the request
// goroutine before the daemon round-trip, and a successful compile completes
// post-processing before the result goes back to the editor.
func (c *controller) Compile(ctx context.Context, params *bsp.CompileParams) (*bsp.CompileResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting session from context: %w", err)
	}

	scope := c.primaryScope()
	desc, err := c.prepare.Prepare(ctx, scope)
	if err != nil {
		return nil, err
	}
	c.ensureWatched(ctx, s.UUID, scope, desc.Sources.Roots)

	if desc.Changed && s.Target != nil {
		if err := c.editor.DidChangeBuildTarget(ctx, &bsp.DidChangeBuildTargetParams{
			Changes: []bsp.BuildTargetEvent{{Target: *s.Target, Kind: bsp.BuildTargetEventChanged}},
		}); err != nil {
			c.logger.Warnf("Failed to notify target change: %v", err)
		}
	}

	result, err := c.engine.Compile(ctx, &buildengine.CompileRequest{
		WorkspaceRoot: s.WorkspaceRoot,
		Scope:         scope,
		OriginID:      params.OriginID,
		Arguments:     params.Arguments,
	})
	if err != nil {
		return nil, err
	}

	// Metadata propagation completes before the result reaches the editor so
	// that follow-up queries observe the refreshed generated sources. A
	// propagation failure does not alter the compile outcome.
	if result.StatusCode == bsp.StatusOK {
		if err := c.prepare.PostProcess(ctx, desc); err != nil {
			c.logger.Warnf("Post-processing of scope %q failed: %v", desc.Scope, err)
		}
	}

	return result, nil
}
