package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/pegawe/backend/internal/auth"
	"github.com/anonto42/pegawe/backend/internal/metrics"
	"github.com/anonto42/pegawe/backend/internal/router"
	"github.com/anonto42/pegawe/backend/pkg/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API and metrics listeners",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	cfg, logger, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	db, err := config.InitDB(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if err := config.Migrate(db.Gorm); err != nil {
		return err
	}

	admin, err := auth.NewAdmin(cfg.Auth)
	if err != nil {
		return err
	}
	m := metrics.New()

	e := router.New(router.Deps{
		DB:      db.Gorm,
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Tokens:  auth.NewTokenIssuer(cfg.Auth.JWTSecret),
		Admin:   admin,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	servers := []namedServer{
		{name: "api", srv: &http.Server{Addr: ":" + cfg.Port, Handler: e, ReadHeaderTimeout: 10 * time.Second}},
	}
	if cfg.MetricsPort != "" {
		servers = append(servers, namedServer{
			name: "metrics",
			srv:  &http.Server{Addr: ":" + cfg.MetricsPort, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		})
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runServers(ctx, logger, shutdownTimeout, servers...)
}

type server interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type namedServer struct {
	name string
	srv  server
}

// runServers starts every server and shuts all of them down once ctx is done
// or any of them fails.
func runServers(ctx context.Context, logger *slog.Logger, timeout time.Duration, servers ...namedServer) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		s := s
		g.Go(func() error {
			if hs, ok := s.srv.(*http.Server); ok {
				logger.Info("Listening", slog.String("server", s.name), slog.String("addr", listenAddr(hs.Addr)))
			}
			if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", s.name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var errs []error
		for _, s := range servers {
			if err := s.srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", s.name, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func listenAddr(addr string) string {
	if host, port, err := net.SplitHostPort(addr); err == nil && host == "" {
		return "0.0.0.0:" + port
	}
	return addr
}
