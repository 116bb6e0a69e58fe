package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-reservation/internal/config"
	"github.com/iliyamo/event-hotel-reservation/internal/database"
	"github.com/iliyamo/event-hotel-reservation/internal/handler"
	"github.com/iliyamo/event-hotel-reservation/internal/middleware"
	"github.com/iliyamo/event-hotel-reservation/internal/queue"
	"github.com/iliyamo/event-hotel-reservation/internal/repository"
	"github.com/iliyamo/event-hotel-reservation/internal/router"
	queue_publisher "github.com/iliyamo/event-hotel-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	e := echo.New()
	e.HideBanner = true

	// Redis backs rate limiting and the response cache. A nil client
	// degrades both to no-ops instead of blocking startup.
	rdb := config.NewRedisClient()
	if rdb != nil {
		rlCfg := config.LoadRateLimitConfig()
		if rlCfg.Enabled {
			e.Use(middleware.NewTokenBucket(rlCfg, rdb))
		}
	} else {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}
	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheCfg := config.LoadCacheConfig()
		if cacheCfg.Enabled {
			cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
		}
	}

	// Event consumer reconnects on its own; a missing broker only costs
	// the event log, never API availability.
	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	enrollments := repository.NewEnrollmentRepo(db)
	tickets := repository.NewTicketRepo(db)
	hotels := repository.NewHotelRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)

	events := queue_publisher.Publisher{}

	authHandler := handler.NewAuthHandler(cfg, users, tokens, enrollments)
	api := router.APIHandlers{
		Enrollments: handler.NewEnrollmentHandler(enrollments),
		Tickets:     handler.NewTicketHandler(enrollments, tickets),
		Hotels:      handler.NewHotelHandler(enrollments, tickets, hotels, cfg.HotelsEmptyAsNotFound),
		Bookings:    handler.NewBookingHandler(enrollments, tickets, bookings, events),
		Payments:    handler.NewPaymentHandler(tickets, payments, events),
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAPI(e, api, cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
