package components

import (
	"conference-seats/internal/pkg/clock"
	"conference-seats/internal/usecase/commands"
	"conference-seats/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		commands.NewConferenceCommands,
		queries.NewConferenceQueries,
	),
)
