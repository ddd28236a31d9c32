//go:build e2e

package e2etest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kilo-share/cmd/bootstrap"
	"kilo-share/cmd/bootstrap/components"
	"kilo-share/internal/handler"
	"kilo-share/internal/pkg/config"
	"kilo-share/internal/testutil/authtest"
	"kilo-share/internal/testutil/dbtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// SharedSuite boots the full API against a containerised postgres and an
// in-process redis. Subtests start from empty tables.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Redis  *miniredis.Miniredis
	Config config.Config
	Auth   *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	pool, dbConfig := dbtest.NewDatabase(t)
	mr := miniredis.RunT(t)

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	cfg.Redis.Addr = mr.Addr()

	router, app := buildApp(pool, cfg)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err)
		}
	})

	s.DB = pool
	s.Router = router
	s.Redis = mr
	s.Config = cfg
	s.Auth = authtest.NewJWTHelper(cfg.JWT)
	require.NotNil(t, s.Router, "router was not built")
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
	s.Redis.FlushAll()
}

// buildApp wires the same modules as the API binary, minus the config, DB and
// HTTP server which the suite owns.
func buildApp(pool *pgxpool.Pool, cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() (*gin.Engine, error) { return handler.NewEngine(cfg.Server) },
			fx.Annotate(
				func() *redis.Client { return redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr}) },
				fx.As(new(redis.UniversalClient)),
			),
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.CacheModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}
	return router, app
}
