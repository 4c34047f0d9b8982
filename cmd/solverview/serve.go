package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/solverview/cmd/solverview/shared"
	"github.com/lox/solverview/internal/server"
	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/tree"
)

const shutdownTimeout = 5 * time.Second

// ServeCmd runs the HTTP service
type ServeCmd struct {
	Addr           string `kong:"help='Listen address (host:port), overrides the config file'"`
	Config         string `kong:"default='solverview.hcl',type='path',help='HCL config file (optional)'"`
	Debug          bool   `kong:"help='Enable debug logging'"`
	StructuredLogs bool   `kong:"help='Emit JSON logs'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := shared.SetupLogger(level, c.StructuredLogs)

	store := session.NewStore(logger, session.WithParseOptions(tree.WithSchemaValidation(cfg.SchemaValidation())))
	srv := server.NewServer(store, cfg, logger)

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}

	logger.Info().
		Str("address", ln.Addr().String()).
		Int("max_upload_mb", cfg.Server.MaxUploadMB).
		Bool("validate_schema", cfg.SchemaValidation()).
		Strs("allowed_origins", cfg.Server.AllowedOrigins).
		Msg("Starting solverview server")

	ctx := shared.SetupSignalHandler(logger)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// loadConfig reads the config file and applies flag overrides.
func (c *ServeCmd) loadConfig() (*server.Config, error) {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Addr != "" {
		host, port, err := net.SplitHostPort(c.Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid --addr %q: %w", c.Addr, err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid --addr port %q: %w", port, err)
		}
		if host != "" {
			cfg.Server.Address = host
		}
		cfg.Server.Port = p
	}
	if c.Debug {
		cfg.Server.LogLevel = zerolog.LevelDebugValue
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
