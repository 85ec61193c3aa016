package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/solobank-dev/solobank/internal/api"
	"github.com/solobank-dev/solobank/internal/assess"
)

func newServeCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, svc, err := openLedger(*cfgPath)
			if err != nil {
				return err
			}
			defer st.Close()

			assessor := assess.NewClient(cfg.Assessor.URL, cfg.Assessor.Timeout())
			server := api.NewServer(svc, assessor)
			if cfg.Server.Metrics {
				server.EnableMetrics()
			}

			httpServer := &http.Server{
				Addr:    cfg.Server.ListenAddr,
				Handler: server.Handler(),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("listening on %s", cfg.Server.ListenAddr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Printf("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
