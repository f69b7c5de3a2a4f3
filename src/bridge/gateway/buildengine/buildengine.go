// Package buildengine wraps the external build-engine operations the bridge
// drives: the build-definition step, full one-shot builds, compile
// round-trips, and post-build metadata propagation. All of them execute in
// the compile daemon.
package buildengine

import (
	"context"

	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/compiledaemon"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
)

// PrepareRequest carries the resolved inputs into the build-definition step.
type PrepareRequest struct {
	WorkspaceRoot string              `json:"workspaceRoot"`
	Scope         entity.ScopeName    `json:"scope"`
	Sources       entity.SourceSet    `json:"sources"`
	GeneratedDir  string              `json:"generatedDir"`
	Options       entity.BuildOptions `json:"options"`
}

// PrepareResult is the build engine's answer: where output goes, how to
// invoke the compiler, and whether the build definition changed since the
// previous preparation of this scope.
type PrepareResult struct {
	ClassesDir   string                   `json:"classesDir"`
	CompilerArgs []string                 `json:"compilerArgs"`
	Artifacts    []string                 `json:"artifacts"`
	Project      entity.ProjectDescriptor `json:"project"`
	Changed      bool                     `json:"changed"`
}

// CompileRequest asks the daemon for a single compile round-trip.
type CompileRequest struct {
	WorkspaceRoot string           `json:"workspaceRoot"`
	Scope         entity.ScopeName `json:"scope"`
	OriginID      string           `json:"originId,omitempty"`
	Arguments     []string         `json:"arguments,omitempty"`
}

// Engine is the external build-engine collaborator.
type Engine interface {
	// PrepareBuild invokes the external build-definition step.
	PrepareBuild(ctx context.Context, req *PrepareRequest) (*PrepareResult, error)
	// BuildOnce runs a full one-shot build of the prepared scope.
	BuildOnce(ctx context.Context, desc *entity.BuildDescriptor) error
	// Compile performs a single compile round-trip.
	Compile(ctx context.Context, req *CompileRequest) (*bsp.CompileResult, error)
	// PostProcess propagates semantic metadata and type-information
	// artifacts into the generated-source tree after a successful compile.
	PostProcess(ctx context.Context, desc *entity.BuildDescriptor) error
}

type engine struct {
	daemon compiledaemon.Gateway
}

// New creates an Engine backed by the compile daemon.
func New(daemon compiledaemon.Gateway) Engine {
	return &engine{daemon: daemon}
}

func (e *engine) PrepareBuild(ctx context.Context, req *PrepareRequest) (*PrepareResult, error) {
	resp := PrepareResult{}
	if err := e.daemon.Call(ctx, bsp.MethodDaemonPrepareBuild, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (e *engine) BuildOnce(ctx context.Context, desc *entity.BuildDescriptor) error {
	return e.daemon.Call(ctx, bsp.MethodDaemonBuildOnce, desc, nil)
}

func (e *engine) Compile(ctx context.Context, req *CompileRequest) (*bsp.CompileResult, error) {
	resp := bsp.CompileResult{}
	if err := e.daemon.Call(ctx, bsp.MethodDaemonCompile, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (e *engine) PostProcess(ctx context.Context, desc *entity.BuildDescriptor) error {
	return e.daemon.Call(ctx, bsp.MethodDaemonPostProcess, desc, nil)
}
