package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/medibook/internal/fixtures"
	"github.com/rshade/medibook/internal/logging"
)

const (
	defaultFixtureAddr = ":5000"
	shutdownTimeout    = 5 * time.Second
)

func newFixturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Local appointment backend for development",
	}
	cmd.AddCommand(newFixturesServeCmd(), newFixturesListCmd())
	return cmd
}

// loadFixtureStore reads file, or the built-in samples when file is empty.
func loadFixtureStore(file string) (*fixtures.Store, error) {
	if file == "" {
		return fixtures.Sample(), nil
	}
	return fixtures.LoadFile(file)
}

func newFixturesServeCmd() *cobra.Command {
	var (
		addr    string
		file    string
		latency time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve appointments from a YAML fixture file",
		Long: `Serves GET /api/appointments/:id from a YAML fixture file, using the same response
shapes as the booking backend. Unknown ids return 404 {"message":"appointment not found"}.

A record may carry a "_delay" duration to slow its response, which is useful for checking
that a slow response for a previous appointment never replaces the current one.`,
		Example: `  # Serve the built-in sample appointments
  medibook fixtures serve

  # Serve a custom file with 300ms added to every response
  medibook fixtures serve --file appointments.yaml --latency 300ms --addr 127.0.0.1:8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadFixtureStore(file)
			if err != nil {
				return err
			}
			return serveFixtures(cmd, store, addr, latency)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultFixtureAddr, "listen address")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture file (default: built-in samples)")
	cmd.Flags().DurationVar(&latency, "latency", 0, "delay added to every appointment response")

	return cmd
}

func serveFixtures(cmd *cobra.Command, store *fixtures.Store, addr string, latency time.Duration) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := fixtures.NewServer(store,
		fixtures.WithLatency(latency),
		fixtures.WithLogger(*logging.FromContext(ctx)),
	)

	cmd.Printf("Serving %d appointments on %s (Ctrl+C to stop)\n", store.Len(), addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down fixture server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	cmd.Println("Fixture server stopped")
	return nil
}

func newFixturesListCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the appointment ids in a fixture file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadFixtureStore(file)
			if err != nil {
				return err
			}
			for _, id := range store.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture file (default: built-in samples)")
	return cmd
}
