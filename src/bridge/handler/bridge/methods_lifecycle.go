package bridge

import (
	"context"

	"github.com/cranebuild/bspbridge/src/bridge/mapper"
	"go.lsp.dev/jsonrpc2"
)

// Initialize extracts bsp.InitializeBuildParams from the request and calls initialization logic for a new editor connection.
func (r *jsonRPCRouter) Initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToInitializeBuildParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.bridge.Initialize(ctx, params)
	if err != nil {
		return reply(ctx, nil, err)
	}

	return reply(ctx, result, nil)
}

// Initialized is sent after the client received the result of the initialize request but before any other request.
func (r *jsonRPCRouter) Initialized(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.bridge.Initialized(ctx)
	return reply(ctx, nil, err)
}

// Shutdown asks the server to release the session's resources, but to not exit.
func (r *jsonRPCRouter) Shutdown(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.bridge.Shutdown(ctx)
	return reply(ctx, nil, err)
}

// Exit asks the server to end the session. The process only exits when RequestFullShutdown was sent first.
func (r *jsonRPCRouter) Exit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	// Reply first to ensure that a reply is sent before the controller initiates the shutdown.
	reply(ctx, nil, nil)
	err := r.bridge.Exit(ctx)
	return err
}

// RequestFullShutdown will indicate that the next Shutdown and Exit requests should perform a full shutdown and exit of the server.
func (r *jsonRPCRouter) RequestFullShutdown(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.bridge.RequestFullShutdown(ctx)
	return reply(ctx, nil, err)
}
