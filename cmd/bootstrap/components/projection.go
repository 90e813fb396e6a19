package components

import (
	"context"

	"conference-seats/internal/pkg/config"
	"conference-seats/internal/usecase/projections"
	"conference-seats/internal/usecase/shared"

	"go.uber.org/fx"
)

var ProjectionModule = fx.Module("projection",
	fx.Provide(
		projections.NewConferenceGenerator,
		projections.NewRebuilder,
	),
	// Subscriptions happen at wiring time, before the server accepts
	// commands, so no published event can miss the generator.
	fx.Invoke(subscribeProjections),
)

func subscribeProjections(
	lc fx.Lifecycle,
	cfg config.Config,
	bus shared.EventBus,
	generator *projections.ConferenceGenerator,
	rebuilder *projections.Rebuilder,
) {
	bus.Subscribe(generator.Apply)

	if cfg.Projection.RebuildOnStart {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return rebuilder.Rebuild(ctx)
			},
		})
	}
}
