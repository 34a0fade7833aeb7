// Standalone стаб бэкенда посещаемости: нужен, когда консоль разрабатывают
// против долго живущего процесса, а не встроенного -dev.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendash/internal/config"
	"github.com/attendash/internal/devbackend"
	"github.com/attendash/internal/logger"
)

func main() {
	logger.SetPrefix("devbackend")
	cfg := config.Load()

	srv := &http.Server{
		Addr:         cfg.DevBackendAddr,
		Handler:      devbackend.New().Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s (логин admin/admin123)", cfg.DevBackendAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("listen: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
