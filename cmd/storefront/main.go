package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/tubarao/storefront/internal/cartstore"
	"github.com/tubarao/storefront/internal/config"
	"github.com/tubarao/storefront/internal/db"
	"github.com/tubarao/storefront/internal/events"
	"github.com/tubarao/storefront/internal/httpserver"
	"github.com/tubarao/storefront/internal/logging"
	"github.com/tubarao/storefront/internal/repo"
	"github.com/tubarao/storefront/internal/search"
	"github.com/tubarao/storefront/internal/seed"
	"github.com/tubarao/storefront/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", "storefront")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	if err := seed.Run(gdb); err != nil {
		log.Fatalf("db seed: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaAddress)
	defer producer.Close()

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search falls back to catalog filter", "error", err)
			esClient = nil
		}
	}

	gormRepo := &repo.GormRepo{DB: gdb}

	authSvc := &service.AuthService{
		Repo:          gormRepo,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	favoritesSvc := &service.FavoritesService{Repo: gormRepo}
	cartSvc := &service.CartService{Store: cartstore.NewRedisStore(cfg.RedisAddress)}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(httpserver.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc:       authSvc,
			Favorites: favoritesSvc,
			Producer:  producer,
		},
		Catalog: &httpserver.CatalogHTTP{
			Svc:     catalogSvc,
			ES:      esClient,
			ESIndex: cfg.ESIndex,
		},
		Cart: &httpserver.CartHTTP{
			Svc:      cartSvc,
			Catalog:  catalogSvc,
			Producer: producer,
		},
		Favorites: &httpserver.FavoritesHTTP{
			Svc:      favoritesSvc,
			Producer: producer,
		},
		AuthMW: &httpserver.AuthMiddleware{Svc: authSvc},
	})

	// warm the catalog cache so first requests serve from memory
	if err := catalogSvc.Load(context.Background()); err != nil {
		logger.Warn("catalog preload failed", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", "addr", srv.Addr)
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

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("storefront stopped")
}
