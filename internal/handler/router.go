package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kilo-share/internal/handler/api"
	"kilo-share/internal/handler/middleware"
	"kilo-share/internal/pkg/config"
	"kilo-share/internal/pkg/errs"
)

// route is one row of the routing table; Mw runs before Handler.
type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Offer       *api.OfferHandler
	Reservation *api.ReservationHandler
	Tracking    *api.TrackingHandler
	Role        *api.RoleHandler
}

// NewEngine builds the gin engine. Forwarding headers are only honored from
// the configured proxies, so rate limiting keys on an address the client
// cannot choose.
func NewEngine(cfg config.ServerConfig) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, errs.Wrap(err, "invalid TRUSTED_PROXIES")
	}
	return engine, nil
}

func NewHandlers(offer *api.OfferHandler, reservation *api.ReservationHandler, tracking *api.TrackingHandler, role *api.RoleHandler) Handlers {
	return Handlers{Offer: offer, Reservation: reservation, Tracking: tracking, Role: role}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, h, authMiddleware, limiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/offers", Handler: h.Offer.ListActive},
			{Method: http.MethodGet, Path: "/offers/:id", Handler: h.Offer.Get, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			{Method: http.MethodGet, Path: "/tracking/:code", Handler: h.Tracking.Get, Mw: []gin.HandlerFunc{middleware.RateLimit(limiter, cfg.Redis)}},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Reserve},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Reservation.UpdateDescription},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.Cancel},
				{Method: http.MethodGet, Path: "/:id/history", Handler: h.Reservation.History},
			})
		}

		me := apiGroup.Group("/me")
		me.Use(authMiddleware.RequireAuth())
		addRoutes(me, []route{
			{Method: http.MethodGet, Path: "/roles", Handler: h.Role.Mine},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/offers", Handler: h.Offer.ListAll},
				{Method: http.MethodPost, Path: "/offers", Handler: h.Offer.Create},
				{Method: http.MethodPatch, Path: "/offers/:id", Handler: h.Offer.Update},
				{Method: http.MethodDelete, Path: "/offers/:id", Handler: h.Offer.Delete},
				{Method: http.MethodGet, Path: "/reservations", Handler: h.Reservation.ListAll},
				{Method: http.MethodPost, Path: "/reservations/:id/status", Handler: h.Reservation.Transition},
				{Method: http.MethodGet, Path: "/users/:id/roles", Handler: h.Role.List},
				{Method: http.MethodPut, Path: "/users/:id/roles/:role", Handler: h.Role.Grant},
				{Method: http.MethodDelete, Path: "/users/:id/roles/:role", Handler: h.Role.Revoke},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// addRoutes registers each route with its own middleware ahead of the handler
// in the gin chain.
func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		chain := append(slices.Clip(r.Mw), r.Handler)
		g.Handle(r.Method, r.Path, chain...)
	}
}
