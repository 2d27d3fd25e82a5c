package catalog

import (
	"context"

	"go.uber.org/fx"
)

func registerHooks(lc fx.Lifecycle, h *Holder) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			return h.Watch()
		},
		OnStop: func(ctx context.Context) error {
			_ = ctx
			return h.Close()
		},
	})
}

var Module = fx.Module("catalog",
	fx.Provide(NewHolder),
	fx.Invoke(registerHooks),
)
