// Package resolver delegates cross-scope source resolution to the compile
// daemon. The bridge treats resolution as an external collaborator; only the
// calls the preparation pipeline makes into it are modeled here.
package resolver

import (
	"context"

	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/compiledaemon"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
)

// Resolver resolves raw workspace inputs into scoped source sets.
type Resolver interface {
	// ResolveSources turns the raw inputs of the workspace into source sets
	// across all scopes.
	ResolveSources(ctx context.Context, workspaceRoot string, scopes []entity.ScopeName) ([]entity.SourceSet, error)
	// ScopedSources narrows the resolved sets to the sources applicable to
	// the requested scope, applying the build options.
	ScopedSources(ctx context.Context, workspaceRoot string, resolved []entity.SourceSet, scope entity.ScopeName, options entity.BuildOptions) (*entity.SourceSet, error)
}

// ResolveSourcesRequest is the daemon/resolveSources request payload.
type ResolveSourcesRequest struct {
	WorkspaceRoot string             `json:"workspaceRoot"`
	Scopes        []entity.ScopeName `json:"scopes"`
}

// ResolveSourcesResponse is the daemon/resolveSources response payload.
type ResolveSourcesResponse struct {
	SourceSets []entity.SourceSet `json:"sourceSets"`
}

// ScopedSourcesRequest is the daemon/scopedSources request payload.
type ScopedSourcesRequest struct {
	WorkspaceRoot string              `json:"workspaceRoot"`
	Resolved      []entity.SourceSet  `json:"resolved"`
	Scope         entity.ScopeName    `json:"scope"`
	Options       entity.BuildOptions `json:"options"`
}

// ScopedSourcesResponse is the daemon/scopedSources response payload.
type ScopedSourcesResponse struct {
	SourceSet entity.SourceSet `json:"sourceSet"`
}

type resolver struct {
	daemon compiledaemon.Gateway
}

// New creates a Resolver backed by the compile daemon.
func New(daemon compiledaemon.Gateway) Resolver {
	return &resolver{daemon: daemon}
}

func (r *resolver) ResolveSources(ctx context.Context, workspaceRoot string, scopes []entity.ScopeName) ([]entity.SourceSet, error) {
	req := ResolveSourcesRequest{WorkspaceRoot: workspaceRoot, Scopes: scopes}
	resp := ResolveSourcesResponse{}
	if err := r.daemon.Call(ctx, bsp.MethodDaemonResolveSources, &req, &resp); err != nil {
		return nil, err
	}
	return resp.SourceSets, nil
}

func (r *resolver) ScopedSources(ctx context.Context, workspaceRoot string, resolved []entity.SourceSet, scope entity.ScopeName, options entity.BuildOptions) (*entity.SourceSet, error) {
	req := ScopedSourcesRequest{WorkspaceRoot: workspaceRoot, Resolved: resolved, Scope: scope, Options: options}
	resp := ScopedSourcesResponse{}
	if err := r.daemon.Call(ctx, bsp.MethodDaemonScopedSources, &req, &resp); err != nil {
		return nil, err
	}
	return &resp.SourceSet, nil
}
