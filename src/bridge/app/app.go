package app

import (
	"context"
	"time"

	"github.com/cranebuild/bspbridge/src/bridge/gateway"
	"github.com/cranebuild/bspbridge/src/bridge/handler"
	"github.com/cranebuild/bspbridge/src/bridge/internal/core"
	"github.com/cranebuild/bspbridge/src/bridge/internal/discoveryfile"
	"github.com/cranebuild/bspbridge/src/bridge/internal/executor"
	"github.com/cranebuild/bspbridge/src/bridge/internal/fs"
	"github.com/cranebuild/bspbridge/src/bridge/internal/jsonrpcfx"
	"github.com/cranebuild/bspbridge/src/bridge/internal/resourcesync"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Module defines the bsp-bridged application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	executor.Module,
	discoveryfile.Module,
	resourcesync.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "bsp-bridged",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        "local",
			RuntimeEnvironment: "local",
		}
	}),
)
