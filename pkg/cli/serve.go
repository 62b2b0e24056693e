package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelexine/winwatch/pkg/cli/config"
	controller "github.com/kelexine/winwatch/pkg/controller/http"
	"github.com/kelexine/winwatch/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		indexCfg  config.Index
		ledgerCfg config.Ledger
		matrixCfg config.Matrix
		notifyCfg config.Notify
	)

	flags := serverCfg.Flags()
	flags = append(flags, indexCfg.Flags()...)
	flags = append(flags, ledgerCfg.Flags()...)
	flags = append(flags, matrixCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the status/trigger HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			matrixTables, err := matrixCfg.Load()
			if err != nil {
				return err
			}

			store, err := ledgerCfg.Store(ctx)
			if err != nil {
				return err
			}

			notifiers, err := notifyCfg.Notifiers()
			if err != nil {
				return err
			}

			detectionUC, err := usecase.NewDetection(indexCfg.Fetcher(), store, matrixTables,
				usecase.WithNotifiers(notifiers...),
			)
			if err != nil {
				return err
			}

			server, err := controller.NewServer(ctx, detectionUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
