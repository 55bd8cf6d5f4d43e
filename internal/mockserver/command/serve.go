package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/logging"
	"github.com/dmitrijs2005/arcanedex/internal/mockserver"
	"github.com/spf13/cobra"
)

const (
	envAddr   = "MOCK_ADDR"
	envSecret = "MOCK_JWT_SECRET"
)

type serveConfig struct {
	Addr          string
	Options       mockserver.Options
	AdminUser     string
	AdminPassword string
	Seed          bool
	LogLevel      string
}

// applyEnv fills settings whose flags were not given explicitly.
func (c *serveConfig) applyEnv(changed func(name string) bool) {
	if v := os.Getenv(envAddr); v != "" && !changed("addr") {
		c.Addr = v
	}
	if v := os.Getenv(envSecret); v != "" && !changed("secret") {
		c.Options.JWTSecret = v
	}
}

// buildServer seeds a fresh in-memory API and wraps it in an http.Server.
func buildServer(c serveConfig, log logging.Logger) (*http.Server, error) {
	srv := mockserver.New(c.Options, log)

	if c.Seed {
		if err := srv.Store().SeedCreatures(mockserver.DefaultCreatures); err != nil {
			return nil, err
		}
	}
	if c.AdminUser != "" {
		if err := srv.Store().SeedAdmin(c.AdminUser, c.AdminPassword); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}

	return &http.Server{
		Addr:              c.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}

func newServeCmd() *cobra.Command {
	cfg := serveConfig{Options: mockserver.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the mock API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.applyEnv(func(name string) bool { return cmd.Flags().Changed(name) })

			log := logging.NewJSON(os.Stderr, cfg.LogLevel)
			server, err := buildServer(cfg, log)
			if err != nil {
				return err
			}

			serverErr := make(chan error, 1)
			go func() {
				log.Info(cmd.Context(), "mock ArcaneDex API available", "addr", cfg.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				log.Info(context.Background(), "shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					log.Error(shutdownCtx, "server shutdown failed", "error", err)
					return err
				}
				log.Info(shutdownCtx, "server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Addr, "addr", ":3000", "listen address (env "+envAddr+")")
	f.StringVar(&cfg.Options.JWTSecret, "secret", cfg.Options.JWTSecret, "HS256 signing secret (env "+envSecret+")")
	f.DurationVar(&cfg.Options.TokenTTL, "token-ttl", cfg.Options.TokenTTL, "lifetime of issued tokens")
	f.Float64Var(&cfg.Options.RequestsPerSecond, "rps", cfg.Options.RequestsPerSecond, "requests per second per client IP, 0 disables limiting")
	f.IntVar(&cfg.Options.Burst, "burst", cfg.Options.Burst, "rate limiter burst")
	f.StringVar(&cfg.AdminUser, "admin-user", "admin", "seeded admin username, empty to skip")
	f.StringVar(&cfg.AdminPassword, "admin-password", "Admin@123", "seeded admin password")
	f.BoolVar(&cfg.Seed, "seed", true, "seed the default creature catalog")
	f.StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error")

	return cmd
}
