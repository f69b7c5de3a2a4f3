package bridge

import (
	"context"

	"github.com/cranebuild/bspbridge/src/bridge/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) WorkspaceBuildTargets(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := r.bridge.WorkspaceBuildTargets(ctx)
	return reply(ctx, result, err)
}

func (r *jsonRPCRouter) Sources(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSourcesParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.bridge.Sources(ctx, params)
	return reply(ctx, result, err)
}
