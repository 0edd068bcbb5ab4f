package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phyten/minigrep/internal/engine/opts"
	"github.com/phyten/minigrep/internal/web"
)

const (
	httpTimeout      = 30 * time.Second
	httpReadTimeout  = 30 * time.Second
	httpWriteTimeout = 35 * time.Second
	shutdownTimeout  = 5 * time.Second
)

var openBrowser = browser.OpenURL

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search UI and JSON API over HTTP",
		Long: `Serve a small web UI and POST /api/search.

The request body is the text to search; query, ignore_case, highlight,
line_numbers and marker are read from the URL query string.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}
	f := cmd.Flags()
	f.String("addr", "127.0.0.1:8080", "listen address")
	f.Bool("open", false, "open the UI in the default browser")
	f.String("log-file", "", "also write logs to this file, rotated by size")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	fs := cmd.Flags()
	verbose, _ := fs.GetBool("verbose")
	addr, _ := fs.GetString("addr")
	open, _ := fs.GetBool("open")
	logFile, _ := fs.GetString("log-file")

	logger := newLogger(a.stderr, verbose)
	if logFile != "" {
		closer, err := attachLogFile(logger, a.stderr, defaultLogConfig(logFile))
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer closer.Close()
	}

	settings, source, err := a.resolveSettings(fs)
	if err != nil {
		return err
	}
	if source != "" {
		logger.WithField("config", source).Info("loaded config file")
	}
	defaults := opts.Defaults()
	settings.ApplyToOptions(&defaults)

	accessLog := logger.WriterLevel(logrus.InfoLevel)
	defer accessLog.Close()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           newServeHandler(defaults, logger, accessLog),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       httpReadTimeout,
		WriteTimeout:      httpWriteTimeout,
	}

	url := "http://" + ln.Addr().String() + "/"
	logger.Infof("minigrep serve listening on %s", url)
	if open {
		if err := openBrowser(url); err != nil {
			logger.WithError(err).Warn("could not open browser")
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("shutdown")
		}
	}()

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newServeHandler wires the web app behind timeout, access-log and panic
// recovery middleware.
func newServeHandler(defaults opts.Options, logger *logrus.Logger, accessLog io.Writer) http.Handler {
	r := mux.NewRouter()
	web.New(defaults, logger).Register(r)

	var h http.Handler = r
	h = http.TimeoutHandler(h, httpTimeout, "Timeout")
	h = handlers.CombinedLoggingHandler(accessLog, h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(logger), handlers.PrintRecoveryStack(verboseLevel(logger)))(h)
	return h
}

func verboseLevel(logger *logrus.Logger) bool {
	return logger.IsLevelEnabled(logrus.DebugLevel)
}
