package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"ratehub/internal/routers"
)

func main() {
	configRouter := routers.AppConfigRouter()
	configServer := &http.Server{
		Addr:    ":8004",
		Handler: configRouter,
	}

	rateRouter := routers.RateRouter()
	rateServer := &http.Server{
		Addr:    ":8002",
		Handler: rateRouter,
	}
	quotationRouter := routers.QuotationRouter()
	quotationServer := &http.Server{
		Addr:    ":8001",
		Handler: quotationRouter,
	}
	healthRouter := routers.HealthCheckRouter()
	healthServer := &http.Server{
		Addr:    ":8005",
		Handler: healthRouter,
	}

	go func() {
		log.Info("Starting HTTP Server on port 8004 for app config")
		if err := configServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("Server Error: ", err)
		}
	}()
	go func() {
		rateServer.SetKeepAlivesEnabled(true)
		log.Info("Starting HTTP Server on port 8002 for rate search")
		if err := rateServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("Server Error: ", err)
		}
	}()
	go func() {
		quotationServer.SetKeepAlivesEnabled(true)
		log.Info("Starting HTTP Server on port 8001 for quotations and combinations")
		if err := quotationServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("Server Error: ", err)
		}
	}()
	go func() {
		log.Info("Starting HTTP Server on port 8005 for health check")
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("Server Error: ", err)
		}
	}()

	//Listen for SIGINT/ SIGTERM signal to trigger shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Wait for all active requests to complete
	_ = configServer.Shutdown(ctx)
	_ = rateServer.Shutdown(ctx)
	_ = quotationServer.Shutdown(ctx)
	_ = healthServer.Shutdown(ctx)

	log.Info("Server gracefully stopped")
}
