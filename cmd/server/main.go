package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/filmhaus/cinema-api/internal/config"
	"github.com/filmhaus/cinema-api/internal/database"
	"github.com/filmhaus/cinema-api/internal/handler"
	"github.com/filmhaus/cinema-api/internal/media"
	"github.com/filmhaus/cinema-api/internal/middleware"
	"github.com/filmhaus/cinema-api/internal/queue"
	"github.com/filmhaus/cinema-api/internal/repository"
	"github.com/filmhaus/cinema-api/internal/router"
	"github.com/filmhaus/cinema-api/internal/service/queue_publisher"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	images, err := media.NewDiskStore(cfg.MediaRoot, cfg.MediaBaseURL)
	if err != nil {
		log.Fatalf("media store: %v", err)
	}

	// Redis backs the response cache and rate limiter.  A nil client
	// disables both and the API keeps serving.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	actorRepo := repository.NewActorRepo(db)
	hallRepo := repository.NewHallRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	events := &queue_publisher.Publisher{}

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	movieHandler := handler.NewMovieHandler(movieRepo, images, events)
	sessionHandler := handler.NewSessionHandler(sessionRepo, movieRepo, hallRepo, images)
	catalogHandler := handler.NewCatalogHandler(genreRepo, actorRepo, hallRepo)

	// Background consumer that mirrors catalog changes into logs/catalog.log.
	go func() {
		if err := queue.StartCatalogConsumer(); err != nil {
			log.Printf("catalog consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, cfg.MediaBaseURL, cfg.MediaRoot)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterCatalog(e, movieHandler, sessionHandler, catalogHandler, cfg.JWTSecret, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
