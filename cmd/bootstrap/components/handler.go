package components

import (
	"kilo-share/internal/handler"
	"kilo-share/internal/handler/api"
	"kilo-share/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOfferHandler,
		api.NewReservationHandler,
		api.NewTrackingHandler,
		api.NewRoleHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
