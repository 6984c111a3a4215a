package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/telemetry"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// NewRootCommand creates the orderflow CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orderflow",
		Short:         "Order status automation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewSeedCommand())

	return cmd
}

// NewServeCommand creates the serve command running the HTTP API and the change relay.
func NewServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and relay order changes to the status automation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := LoadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				config.HTTPPort = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, config)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "HTTP port, overrides HTTP_PORT")
	return cmd
}

func serve(ctx context.Context, config Config) error {
	logger := config.NewLogger(os.Stderr)

	shutdownTracing, err := telemetry.Setup(ctx, "orderflow", config.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if traceErr := shutdownTracing(context.Background()); traceErr != nil {
			logger.Error("failed to flush traces", "error", traceErr)
		}
	}()

	app, err := NewCompositionRoot(config, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to close connections", "error", closeErr)
		}
	}()

	if err = app.ConnectNotifications(ctx); err != nil {
		return err
	}

	router, err := httpadapter.NewRouter(app.CreateHTTPServer(), app.Registry(), logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		address := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		logger.Info("http server listening", "address", address)
		if startErr := router.Start(address); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// NewSeedCommand creates the seed command writing directory fixtures into the document store.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [fixture.yaml]",
		Short: "Seed departments and users from a YAML fixture",
		Long: `Seed departments, users and department memberships from a YAML fixture.

The fixture path defaults to SEED_FILE. All records are written in one unit of
work; existing records with the same ids are replaced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig()
			if err != nil {
				return err
			}

			path := config.SeedFile
			if len(args) == 1 {
				path = args[0]
			}

			return seed(cmd, config, path)
		},
	}
}

func seed(cmd *cobra.Command, config Config, path string) error {
	logger := config.NewLogger(cmd.ErrOrStderr())

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed fixture: %w", err)
	}
	defer file.Close()

	fixture, err := LoadSeedFixture(file)
	if err != nil {
		return err
	}

	command, err := fixture.Command()
	if err != nil {
		return fmt.Errorf("invalid seed fixture %s: %w", path, err)
	}

	app, err := NewCompositionRoot(config, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.CreateSeedDirectoryCommandHandler().Handle(cmd.Context(), command)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d departments, %d users, %d memberships\n",
		result.Departments, result.Users, result.Memberships)
	return nil
}
