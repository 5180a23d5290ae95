package di

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"holidaze-server/api"
	"holidaze-server/api/holidaze"
	"holidaze-server/config"
	"holidaze-server/dao/redis"
	"holidaze-server/db"
	"holidaze-server/notify"
	"holidaze-server/server"
	"holidaze-server/server/handlers"
	services "holidaze-server/service"
	"holidaze-server/session"
)

// Container holds all application dependencies.
type Container struct {
	Config                 *config.Config
	RedisClient            db.RedisClient
	RedisVenueDao          *redis.RedisVenueDAO
	RedisCursorDao         *redis.RedisCursorDAO
	TokenStore             session.TokenStore
	HolidazeAPI            holidaze.HolidazeAPI
	Bus                    *notify.Bus
	VenueEnricher          *services.VenueEnricher
	VenueCollector         *services.VenueCollector
	VenueService           *services.VenueService
	AuthService            *services.AuthService
	BookingService         *services.BookingService
	VenuesRefresherService *services.VenuesRefresherService
	VenueHandler           *handlers.VenueHandler
	AccountHandler         *handlers.AccountHandler
	MuxRouter              *mux.Router
	Router                 *server.Router
	HolidazeHttpServer     *server.HolidazeHttpServer
}

// NewContainer initializes and wires up all dependencies. Outside prod the
// in-memory redis client and the mock Holidaze API are used.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Printf("initializing container - env: %s", cfg.Env)

	// Redis client
	var redisClient db.RedisClient
	if cfg.IsProd() {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		client, err := db.NewGoRedisClient(ctx, redisInternalClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		redisClient = client
	} else {
		log.Printf("Using in-memory redis client")
		redisClient = db.NewMockRedisClient()
	}

	// DAOs
	redisVenueDao := redis.NewRedisVenueDAO(redisClient, cfg.Listing.VenueCacheTTL)
	redisCursorDao := redis.NewRedisCursorDAO(redisClient, cfg.Listing.CursorTTL)
	tokenStore := redis.NewRedisTokenStore(redisClient, cfg.Holidaze.Account)

	// Holidaze API
	var holidazeApiClient holidaze.HolidazeAPI
	if cfg.IsProd() {
		log.Printf("Using prod holidaze api at %s", cfg.Holidaze.BaseURL)
		httpClient := api.NewHTTPClient(cfg.Holidaze.BaseURL)
		httpClient.HTTPClient.Timeout = cfg.Holidaze.RequestTimeout
		httpClient.APIKey = cfg.Holidaze.APIKey
		httpClient.Tokens = tokenStore
		holidazeApiClient = holidaze.NewHolidazeApiClient(httpClient)
	} else {
		log.Printf("Using mock holidaze api")
		mock, err := holidaze.NewHolidazeApiClientMockFromJSON(config.GetResourcePath(config.VENUES_RESOURCE))
		if err != nil {
			log.Printf("No venues fixture loaded (%v), starting empty", err)
			mock = holidaze.NewHolidazeApiClientMock()
		}
		holidazeApiClient = mock
	}

	bus := notify.NewBus()
	bus.OnAuthChanged(func(ev notify.AuthChanged) {
		log.Printf("[Bus] auth changed: signedIn=%v name=%q", ev.SignedIn, ev.Name)
	})
	bus.OnNotice(func(n notify.Notice) {
		log.Printf("[Bus] %s: %s", n.Level, n.Text)
	})

	// Service layer
	pager := services.NewHolidazePager(holidazeApiClient)
	venueEnricher := services.NewVenueEnricher(holidazeApiClient, redisVenueDao, cfg.Listing.EnrichConcurrency)
	venueCollector := services.NewVenueCollector(pager, venueEnricher, redisCursorDao, cfg.Listing.PageSize)
	venueService := services.NewVenueService(holidazeApiClient, redisVenueDao, venueCollector, services.NewQueryGuard(), bus)
	authService := services.NewAuthService(holidazeApiClient, tokenStore, bus)
	bookingService := services.NewBookingService(holidazeApiClient, venueService, authService, bus)
	venuesRefresherService := services.NewVenuesRefresherService(
		pager, venueEnricher, redisVenueDao, cfg.Refresh.Pages, cfg.Listing.PageSize)

	// Handlers
	venueHandler := handlers.NewVenueHandler(venueService)
	accountHandler := handlers.NewAccountHandler(authService, bookingService, venueService)

	// Router and server
	muxRouter := mux.NewRouter()
	router := server.NewRouter(venueHandler, accountHandler, muxRouter)
	holidazeHttpServer := server.NewHolidazeHttpServer(router, muxRouter, cfg.HTTP.Addr, cfg.HTTP.ShutdownTimeout)

	return &Container{
		Config:                 cfg,
		RedisClient:            redisClient,
		RedisVenueDao:          redisVenueDao,
		RedisCursorDao:         redisCursorDao,
		TokenStore:             tokenStore,
		HolidazeAPI:            holidazeApiClient,
		Bus:                    bus,
		VenueEnricher:          venueEnricher,
		VenueCollector:         venueCollector,
		VenueService:           venueService,
		AuthService:            authService,
		BookingService:         bookingService,
		VenuesRefresherService: venuesRefresherService,
		VenueHandler:           venueHandler,
		AccountHandler:         accountHandler,
		MuxRouter:              muxRouter,
		Router:                 router,
		HolidazeHttpServer:     holidazeHttpServer,
	}, nil
}
