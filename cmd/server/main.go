package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/speedrun-coding/backend/conf"
	"github.com/speedrun-coding/backend/execsrvc"
	srvhttp "github.com/speedrun-coding/backend/http"
	"github.com/speedrun-coding/backend/logger"
	problemhttp "github.com/speedrun-coding/backend/problem/http"
	problempg "github.com/speedrun-coding/backend/problem/pgrepo"
	problemsrvc "github.com/speedrun-coding/backend/problem/srvc"
	submhttp "github.com/speedrun-coding/backend/subm/http"
	submpg "github.com/speedrun-coding/backend/subm/pgrepo"
	"github.com/speedrun-coding/backend/subm/submsrvc"
	"github.com/speedrun-coding/backend/user"
	userhttp "github.com/speedrun-coding/backend/user/http"
	userpg "github.com/speedrun-coding/backend/user/pgrepo"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := conf.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connStr, err := cfg.Postgres.GetPgConnStr(ctx)
	if err != nil {
		return err
	}
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("failed to create pg pool: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach postgres: %w", err)
	}

	execSrvc := execsrvc.NewExecSrvc(log, execsrvc.Params{
		EngineUrl:       cfg.Exec.PistonApiUrl,
		RunTimeout:      cfg.Exec.RunTimeout(),
		CompileTimeout:  cfg.Exec.CompileTimeout(),
		SimulationDelay: cfg.Exec.SimulationDelay(),
	})
	problemSrvc := problemsrvc.NewProblemSrvc(log, problempg.NewProblemPgRepo(pool), 30*time.Second)
	userSrvc := user.NewUserSrvc(userpg.NewUserPgRepo(pool))
	submSrvc := submsrvc.NewSubmSrvc(submpg.NewPgSubmRepo(pool), problemSrvc, execSrvc)

	// already validated by logger.New
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(cfg.Log.Level))

	server := srvhttp.NewHttpServer(log, srvhttp.Options{
		JwtKey:      []byte(cfg.JwtKey),
		CorsOrigins: cfg.CorsOrigins,
		LogLevel:    lvl,
		JsonLogs:    cfg.Log.Format == "json",
		Version:     version,
		Env:         os.Getenv("ENV"),
	},
		submhttp.NewSubmHttpHandler(submSrvc, problemSrvc, userSrvc, cfg.Subm.MinInterval()),
		problemhttp.NewProblemHttpHandler(problemSrvc),
		userhttp.NewUserHttpHandler(userSrvc),
	)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", cfg.HttpAddress, "version", version)
		errCh <- server.Start(cfg.HttpAddress)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	// in-flight submissions may still be waiting on the execution engine
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
