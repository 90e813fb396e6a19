package components

import (
	"conference-seats/internal/infra/eventbus"
	"conference-seats/internal/infra/eventstore"
	"conference-seats/internal/infra/projection"
	"conference-seats/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// Event store: the only durable write path
		fx.Annotate(
			eventstore.NewPostgresStore,
			fx.As(new(shared.EventStore)),
		),
		// Event bus: synchronous in-process distribution
		fx.Annotate(
			eventbus.NewInProcessBus,
			fx.As(new(shared.EventBus)),
		),
		// Projection repository: read-model rows
		fx.Annotate(
			projection.NewPostgresRepository,
			fx.As(new(shared.ProjectionRepository)),
		),
	),
)
