package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"offerdesk/internal/app"
	"offerdesk/internal/handlers"
	"offerdesk/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	log := logger.New("main").Function("serve")

	application, err := app.NewWithConfig(c.config)
	if err != nil {
		return log.Err("failed to initialize app", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close app", err)
		}
	}()

	server := fiber.New(fiber.Config{
		AppName:               "offerdesk",
		DisableStartupMessage: true,
	})
	if err := handlers.Router(server, application); err != nil {
		return log.Err("failed to register routes", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		address := c.config.ListenAddress()
		log.Info("Listening", "address", address)
		return server.Listen(address)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")
		return server.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return log.Err("server stopped", err)
	}
	return nil
}
