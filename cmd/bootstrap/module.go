package bootstrap

import (
	"conference-seats/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.ProjectionModule,
	components.HandlerModule,
)
