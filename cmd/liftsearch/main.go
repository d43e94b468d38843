package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/TadasTam/LiftSearch-Backend/internal/config"
	"github.com/TadasTam/LiftSearch-Backend/internal/events"
	"github.com/TadasTam/LiftSearch-Backend/internal/httpserver"
	"github.com/TadasTam/LiftSearch-Backend/internal/repo"
	"github.com/TadasTam/LiftSearch-Backend/internal/search"
	"github.com/TadasTam/LiftSearch-Backend/internal/service"
	"github.com/TadasTam/LiftSearch-Backend/pkg/logging"
	loggingmw "github.com/TadasTam/LiftSearch-Backend/pkg/middleware/logging"
	"github.com/TadasTam/LiftSearch-Backend/pkg/tokens"
)

func main() {
	cfg := config.Load()
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel).With("service", "liftsearch")
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	r := repo.New(db)

	seedCtx := logging.IntoContext(context.Background(), logger)
	if err := service.SeedAdmin(seedCtx, r, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		log.Fatalf("admin seed: %v", err)
	}

	tokenSvc := tokens.NewService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer != nil {
		defer producer.Close()
	}

	var tripIndex *search.TripIndex
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		tripIndex = &search.TripIndex{ES: es, Index: search.DefaultTripIndex}
	}

	authSvc := &service.AuthService{Repo: r, Tokens: tokenSvc, Producer: producer}
	driverSvc := &service.DriverService{Repo: r}
	travelerSvc := &service.TravelerService{Repo: r}
	tripSvc := &service.TripService{Repo: r, Producer: producer, Index: tripIndex}
	passengerSvc := &service.PassengerService{Repo: r}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Tokens:           tokenSvc,
		AuthHandler:      &httpserver.AuthHTTP{Svc: authSvc},
		DriverHandler:    &httpserver.DriverHTTP{Svc: driverSvc},
		TravelerHandler:  &httpserver.TravelerHTTP{Svc: travelerSvc},
		TripHandler:      &httpserver.TripHTTP{Svc: tripSvc},
		PassengerHandler: &httpserver.PassengerHTTP{Svc: passengerSvc},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("stopped")
}
