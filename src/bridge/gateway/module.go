// Package gateway provides the outbound dependencies of the bridge.
package gateway

import (
	"github.com/cranebuild/bspbridge/src/bridge/gateway/buildengine"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/compiledaemon"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/editor"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/resolver"
	"go.uber.org/fx"
)

// Module provides the outbound gateways into an Fx application.
var Module = fx.Options(
	fx.Provide(editor.New),
	fx.Provide(compiledaemon.New),
	fx.Provide(resolver.New),
	fx.Provide(buildengine.New),
)
