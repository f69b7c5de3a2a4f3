package bridge

import (
	"context"

	controller "github.com/cranebuild/bspbridge/src/bridge/controller/bridge"
	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
)

// MethodRequestFullShutdown directs the server to shut down on the next JSON-RPC 'build/exit' method call.
const MethodRequestFullShutdown = "bridge/requestFullShutdown"

type jsonRPCRouter struct {
	bridge controller.Controller
	uuid   uuid.UUID
	stats  tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)
	r.stats.Tagged(map[string]string{"method": req.Method()}).Counter("requests").Inc(1)

	switch req.Method() {
	// Lifecycle related methods.
	case bsp.MethodBuildInitialize:
		return r.Initialize(ctx, reply, req)

	case bsp.MethodBuildInitialized:
		return r.Initialized(ctx, reply, req)

	case bsp.MethodBuildShutdown:
		return r.Shutdown(ctx, reply, req)

	case bsp.MethodBuildExit:
		return r.Exit(ctx, reply, req)

	case MethodRequestFullShutdown:
		return r.RequestFullShutdown(ctx, reply, req)

	// Workspace related methods.
	case bsp.MethodWorkspaceBuildTargets:
		return r.WorkspaceBuildTargets(ctx, reply, req)

	case bsp.MethodBuildTargetSources:
		return r.Sources(ctx, reply, req)

	// Build related methods.
	case bsp.MethodBuildTargetCompile:
		return r.Compile(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
