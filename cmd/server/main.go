package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/catalogo-poli/shop/internal/cache"
	"github.com/catalogo-poli/shop/internal/config"
	"github.com/catalogo-poli/shop/internal/events"
	"github.com/catalogo-poli/shop/internal/httpserver"
	"github.com/catalogo-poli/shop/internal/logging"
	authmw "github.com/catalogo-poli/shop/internal/middleware/auth"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/catalogo-poli/shop/internal/search"
	"github.com/catalogo-poli/shop/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.OpenDB(initCtx, cfg.DatabaseDSN())
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	redisCache := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	err = redisCache.Ping(pingCtx)
	cancel()
	if err != nil {
		log.Fatalf("redis init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret}
	cartSvc := &service.CartService{Repo: gormRepo}
	checkoutSvc := &service.CheckoutService{Repo: gormRepo, Cache: redisCache}
	catalogSvc := &service.CatalogService{Repo: gormRepo, Search: esClient, Cache: redisCache}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(logging.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc, Checkout: checkoutSvc, Producer: producer},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc, Producer: producer},
		AuthMW:         authmw.New(authSvc),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if err := redisCache.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	logger.Info("shutdown complete")
}
