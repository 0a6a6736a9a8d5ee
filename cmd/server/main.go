package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/food-waste-saver/internal/config"
	"github.com/iliyamo/food-waste-saver/internal/database"
	"github.com/iliyamo/food-waste-saver/internal/handler"
	"github.com/iliyamo/food-waste-saver/internal/middleware"
	"github.com/iliyamo/food-waste-saver/internal/queue"
	"github.com/iliyamo/food-waste-saver/internal/repository"
	"github.com/iliyamo/food-waste-saver/internal/router"
	"github.com/iliyamo/food-waste-saver/internal/service"
)

func main() {
	// Load .env if present; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// A missing or unreachable database leaves the store unavailable
	// but keeps the process alive: health and diagnostics still work
	// and data endpoints answer 500 per request.
	db, err := database.Open(cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.Printf("database unavailable: %v", err)
		db = nil
	}
	if db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.EnsureSchema(ctx, db); err != nil {
			log.Printf("schema setup failed: %v", err)
		}
		cancel()
	}

	offerRepo := repository.NewOfferRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	reservationSvc := service.NewReservationService(offerRepo, reservationRepo, service.PublishReservationCreated)

	offerHandler := handler.NewOfferHandler(offerRepo)
	reservationHandler := handler.NewReservationHandler(reservationSvc)
	diagHandler := handler.NewDiagnosticsHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.CORS()) // allow-all, mirroring the original service

	// Redis is optional: a nil client turns the limiter and the
	// listing cache into pass-through middleware.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, offerHandler, reservationHandler, diagHandler, cached)

	// Background consumer mirrors reservation events into a log file.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
