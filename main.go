package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "toursbackend/internal/config"
	router "toursbackend/internal/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	env, err := intconfig.LoadEnv()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	if lvl, err := logrus.ParseLevel(env.App.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
	if env.App.GinMode != "" {
		gin.SetMode(env.App.GinMode)
	}

	if _, err := intconfig.ConnectDB(env.Database); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer intconfig.CloseDB()

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.App.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", env.App.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
		return
	}

	logrus.Info("server stopped")
}
