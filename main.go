package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kahgeh/frontend/config"
	"github.com/kahgeh/frontend/cors"
	"github.com/kahgeh/frontend/routes"
	"github.com/kahgeh/frontend/server"
	log "github.com/sirupsen/logrus"
	"gocloud.dev/server/requestlog"
)

const shutdownTimeout = 10 * time.Second

func newHandler(settings *config.Config) http.Handler {
	var handler http.Handler = cors.New(settings.CorsMaxAge).Handler(routes.New())
	if settings.AccessLog {
		logger := requestlog.NewNCSALogger(os.Stdout, func(err error) {
			log.WithError(err).Warn("access log write failed")
		})
		handler = requestlog.NewHandler(logger, handler)
	}
	return handler
}

func main() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	settings, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(settings.LogLevel)

	frontend, err := server.Start(settings.Port, newHandler(settings))
	if err != nil {
		log.WithError(err).WithField("port", settings.Port).Fatal("cannot start frontend server")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-frontend.Done():
		if err != nil {
			log.WithError(err).Fatal("frontend server failed")
		}
	case sig := <-sigs:
		log.WithField("signal", sig.String()).Debug("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := frontend.Shutdown(ctx); err != nil {
			log.WithError(err).Fatal("unclean shutdown")
		}
	}
}
