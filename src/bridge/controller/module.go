package controller

import (
	"github.com/cranebuild/bspbridge/src/bridge/controller/bridge"
	"github.com/cranebuild/bspbridge/src/bridge/controller/prepare"
	"github.com/cranebuild/bspbridge/src/bridge/controller/watch"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(prepare.New),
	fx.Provide(func(c prepare.Controller) watch.Rebuilder { return c }),
	fx.Provide(watch.New),
	fx.Provide(bridge.New),
)
