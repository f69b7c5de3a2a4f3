package bridge

import (
	"context"

	"github.com/cranebuild/bspbridge/src/bridge/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) Compile(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToCompileParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.bridge.Compile(ctx, params)
	return reply(ctx, result, err)
}
