package app

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.opentelemetry.io/otel"

	calcuttaservice "github.com/fairway-club/scorekeeper/app/modules/calcutta/application"
	calcuttahandlers "github.com/fairway-club/scorekeeper/app/modules/calcutta/infrastructure/handlers"
	calcuttadb "github.com/fairway-club/scorekeeper/app/modules/calcutta/infrastructure/repositories"
	leaderboardservice "github.com/fairway-club/scorekeeper/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/fairway-club/scorekeeper/app/modules/leaderboard/infrastructure/handlers"
	leaderboarddb "github.com/fairway-club/scorekeeper/app/modules/leaderboard/infrastructure/repositories"
	multidayservice "github.com/fairway-club/scorekeeper/app/modules/multiday/application"
	multidayhandlers "github.com/fairway-club/scorekeeper/app/modules/multiday/infrastructure/handlers"
	multidaydb "github.com/fairway-club/scorekeeper/app/modules/multiday/infrastructure/repositories"
	sidebetservice "github.com/fairway-club/scorekeeper/app/modules/sidebet/application"
	sidebethandlers "github.com/fairway-club/scorekeeper/app/modules/sidebet/infrastructure/handlers"
	sidebetdb "github.com/fairway-club/scorekeeper/app/modules/sidebet/infrastructure/repositories"
	"github.com/fairway-club/scorekeeper/app/shared/observability/metrics"
	"github.com/fairway-club/scorekeeper/config"
)

// App wires the module services together and owns the shared resources.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *bun.DB
	Server *http.Server
}

// Initialize connects to the database and builds every module's service and
// handler stack onto one router.
func (a *App) Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	a.Config = cfg
	a.Logger = logger

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	a.DB = bun.NewDB(pgdb, pgdialect.New())
	if err := a.DB.PingContext(ctx); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	operationMetrics := metrics.NewPrometheusMetrics(registry, "scorekeeper")
	tracer := otel.Tracer("scorekeeper")

	tournamentDB := &leaderboarddb.TournamentDBImpl{DB: a.DB}
	sideBetDB := &sidebetdb.SideBetDBImpl{DB: a.DB}
	eventDB := &multidaydb.EventDBImpl{DB: a.DB}
	calcuttaDB := &calcuttadb.CalcuttaDBImpl{DB: a.DB}

	leaderboardSvc := leaderboardservice.NewLeaderboardService(tournamentDB, logger, operationMetrics, tracer)
	sideBetSvc := sidebetservice.NewSideBetService(sideBetDB, tournamentDB, logger, operationMetrics, tracer)
	multiDaySvc := multidayservice.NewMultiDayService(eventDB, logger, operationMetrics, tracer)
	calcuttaSvc := calcuttaservice.NewCalcuttaService(calcuttaDB, tournamentDB, logger, operationMetrics, tracer)

	router := NewRouter(
		leaderboardhandlers.NewHandlers(leaderboardSvc, tournamentDB, logger),
		sidebethandlers.NewHandlers(sideBetSvc, logger),
		multidayhandlers.NewHandlers(multiDaySvc, eventDB, logger),
		calcuttahandlers.NewHandlers(calcuttaSvc, logger),
		registry,
		cfg.HTTP.RequestTimeout,
	)

	a.Server = &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}
	return nil
}

// Run serves HTTP until the server is shut down.
func (a *App) Run() error {
	a.Logger.Info("API server listening", "address", a.Config.HTTP.Address)
	if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close drains in-flight requests and releases the database.
func (a *App) Close(ctx context.Context) error {
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			return err
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
