package components

import (
	"kilo-share/internal/domain/reservation"
	"kilo-share/internal/pkg/clock"
	"kilo-share/internal/pkg/config"
	"kilo-share/internal/usecase"
	"kilo-share/internal/usecase/commands"
	"kilo-share/internal/usecase/queries"
	"kilo-share/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) *reservation.Issuer {
		return reservation.NewIssuer(reservation.NewRandomCodeGenerator(), cfg.Reservation.TrackingCodeMaxAttempts)
	},
	func(cfg config.Config) (reservation.TransitionPolicy, error) {
		return reservation.ParseTransitionPolicy(cfg.Reservation.TransitionPolicy)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOfferUseCase,
		commands.NewReservationUseCase,
		commands.NewStatusUseCase,
		commands.NewRoleUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOfferQueries,
		queries.NewReservationQueries,
		queries.NewRoleQueries,
		func(store queries.ReservationReadStore, cache shared.TrackingCache, cfg config.Config) queries.TrackingQueries {
			return queries.NewTrackingQueries(store, cache, cfg.Redis.TrackingCacheTTL)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
