package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	csvadapter "github.com/olenheim/payrun/internal/adapter/csv"
	adapterhttp "github.com/olenheim/payrun/internal/adapter/http"
	"github.com/olenheim/payrun/internal/adapter/http/handler"
	"github.com/olenheim/payrun/internal/infrastructure/config"
	"github.com/olenheim/payrun/internal/infrastructure/logger"
	"github.com/olenheim/payrun/internal/infrastructure/metrics"
	"github.com/olenheim/payrun/internal/usecase"
)

var (
	logLevel  string
	logFormat string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "payrun",
		Short: "Payments transaction replay engine",
		Long: `payrun replays a stream of deposit, withdrawal, dispute, resolve and
chargeback transactions into per-client account balances.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (json, console)")

	rootCmd.AddCommand(newProcessCmd(), newServeCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger on stderr, keeping stdout free for the
// account summary.
func newLogger() zerolog.Logger {
	return logger.New(logger.Config{Level: logLevel, Format: logFormat}, os.Stderr)
}

func newProcessCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "process <input.csv>",
		Short: "Replay a transaction CSV file and print the account summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			input, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer input.Close()

			replayUC := usecase.NewReplayUseCase(log, metrics.New())

			ledger, err := replayUC.Run(cmd.Context(), csvadapter.NewReader(input))
			if err != nil {
				return fmt.Errorf("replay %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outputPath, err)
				}
				defer f.Close()
				out = f
			}

			return csvadapter.WriteSummary(out, ledger.Accounts())
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the summary to a file instead of stdout")

	return cmd
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the replay engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			m := metrics.New()
			replayUC := usecase.NewReplayUseCase(log, m)
			ledgerUC := usecase.NewLedgerUseCase(replayUC, log, m)

			router := adapterhttp.NewRouter(adapterhttp.RouterConfig{
				TransactionHandler: handler.NewTransactionHandler(ledgerUC),
				AccountHandler:     handler.NewAccountHandler(ledgerUC),
				HealthHandler:      handler.NewHealthHandler(),
				Logger:             log,
			})

			server := &http.Server{
				Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
				Handler:      router,
				ReadTimeout:  cfg.HTTPReadTimeout,
				WriteTimeout: cfg.HTTPWriteTimeout,
				IdleTimeout:  cfg.HTTPIdleTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			log.Info().Msg("shutting down server...")

			ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			log.Info().Msg("server stopped")
			return nil
		},
	}
}
