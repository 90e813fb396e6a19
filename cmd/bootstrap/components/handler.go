package components

import (
	"conference-seats/internal/handler"
	"conference-seats/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewConferenceHandler,
	),
	fx.Invoke(handler.NewRouter),
)
