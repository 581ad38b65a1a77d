package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/wikitext/internal/api"
	"github.com/dgallion1/wikitext/internal/corpus"
	"github.com/dgallion1/wikitext/internal/dataset"
	"github.com/dgallion1/wikitext/internal/download"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve installed datasets over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))

		// The notice goes out once at startup rather than on every request.
		fmt.Fprint(cmd.ErrOrStderr(), dataset.License+"\n")
		dl := download.NewClient(cfg.UserAgent, cfg.DownloadTimeout, log)
		srvStore := corpus.NewStore(cfg.Root, dl, log,
			corpus.WithMirror(cfg.MirrorURL),
			corpus.WithNotice(io.Discard),
		)

		srv := api.NewServer(srvStore, log, cfg)
		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 10 * time.Minute, // fetch requests download whole archives
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting wikitext server", "port", cfg.Port, "root", cfg.Root)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
