package main

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seqsense/starfield/internal/apod"
)

var (
	serveAddr string
	serveDir  string
	envFile   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the WebAssembly build and the picture of the day proxy",
	Long: `Serves the static files of the browser build without caching, and proxies
the NASA Astronomy Picture of the Day at /api/nasa/apod.
The API key is read from NASA_API_KEY, which may also be set in --env-file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDir, "dir", ".", "Directory to serve")
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "Dotenv file with NASA_API_KEY")
}

func newServeMux(dir string, client *apod.Client) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/nasa/apod", apod.Handler(client, logger))
	mux.Handle("/", &noCache{Handler: &welcome{files: http.FileServer(http.Dir(dir))}})
	return mux
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := apod.LoadEnv(envFile); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           newServeMux(serveDir, apod.NewClient()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving", zap.String("addr", serveAddr), zap.String("dir", serveDir))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type noCache struct {
	http.Handler
}

func (h *noCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	h.Handler.ServeHTTP(w, r)
}

// welcome answers JSON clients at the root and serves files otherwise.
type welcome struct {
	files http.Handler
}

func (h *welcome) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" && acceptsJSON(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Welcome to the starfield server",
		})
		return
	}
	h.files.ServeHTTP(w, r)
}

func acceptsJSON(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mt == "application/json" {
			return true
		}
	}
	return false
}
