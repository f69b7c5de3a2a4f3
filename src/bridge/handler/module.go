package handler

import (
	controller "github.com/cranebuild/bspbridge/src/bridge/controller"
	bridgectl "github.com/cranebuild/bspbridge/src/bridge/controller/bridge"
	handler "github.com/cranebuild/bspbridge/src/bridge/handler/bridge"
	"github.com/cranebuild/bspbridge/src/bridge/repository/session"
	"go.uber.org/fx"
)

// Module provides the bsp-bridged server into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(func(m handler.Handler) {}),
	fx.Invoke(func(m bridgectl.Controller) {}),
)
