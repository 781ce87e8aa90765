package components

import (
	"cabinet-keeper/internal/handler"
	"cabinet-keeper/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCabinetHandler,
		api.NewBookmarkHandler,
		api.NewAdminHandler,
	),
	fx.Invoke(handler.NewRouter),
)
