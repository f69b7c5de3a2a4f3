package bridge

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"go.lsp.dev/uri"
)

// WorkspaceBuildTargets lists the workspace's single build target. The target
// identity is assigned during initialize; before that the list is empty.
func (c *controller) WorkspaceBuildTargets(ctx context.Context) (*bsp.WorkspaceBuildTargetsResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting session from context: %w", err)
	}

	result := &bsp.WorkspaceBuildTargetsResult{Targets: []bsp.BuildTarget{}}
	if s.Target == nil {
		return result, nil
	}

	result.Targets = append(result.Targets, bsp.BuildTarget{
		ID:            *s.Target,
		DisplayName:   filepath.Base(s.WorkspaceRoot),
		BaseDirectory: uri.File(s.WorkspaceRoot),
		LanguageIDs:   _languageIDs,
		Capabilities: bsp.BuildTargetCapabilities{
			CanCompile: true,
		},
	})
	return result, nil
}

// Sources answers with the items recorded during the latest preparation of
// each configured scope.
func (c *controller) Sources(ctx context.Context, params *bsp.SourcesParams) (*bsp.SourcesResult, error) {
	if _, err := c.sessions.GetFromContext(ctx); err != nil {
		return nil, fmt.Errorf("getting session from context: %w", err)
	}

	result := &bsp.SourcesResult{Items: []bsp.SourcesItem{}}
	for _, target := range params.Targets {
		sources := []bsp.SourceItem{}
		for _, scope := range c.cfg.Scopes {
			sources = append(sources, c.prepare.RegisteredSources(ctx, scope)...)
		}
		result.Items = append(result.Items, bsp.SourcesItem{
			Target:  target,
			Sources: sources,
		})
	}
	return result, nil
}
