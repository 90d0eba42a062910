// Command devserver serves the create-web-call function over plain http for
// local testing. PORT overrides the default listen port.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prognoshealth/retellproxy/lambdautils"
	"github.com/prognoshealth/retellproxy/webcall"
)

func main() {
	logger := lambdautils.Logger(context.Background())

	router, err := webcall.NewRouter(webcall.NewService())
	if err != nil {
		logger.Error("failed building router", "error", err.Error())
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("dev server listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("dev server stopped", "error", err.Error())
		os.Exit(1)
	}
}
