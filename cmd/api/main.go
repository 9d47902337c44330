package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestordoc/docportal/internal/api"
	"github.com/gestordoc/docportal/internal/core/ports"
	"github.com/gestordoc/docportal/internal/core/service"
	"github.com/gestordoc/docportal/internal/infrastructure/analyzer"
	"github.com/gestordoc/docportal/internal/infrastructure/db/memory"
	mongodb "github.com/gestordoc/docportal/internal/infrastructure/db/mongo"
	redisdb "github.com/gestordoc/docportal/internal/infrastructure/db/redis"
	"github.com/gestordoc/docportal/internal/pkg/config"
	"github.com/gestordoc/docportal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// --- Stores ---
	var (
		clientRepo  ports.ClientRepository
		docRepo     ports.DocumentRepository
		mongoDB     *mongo.Database
		mongoClient *mongo.Client
	)
	switch cfg.Store.Backend {
	case "mongo":
		var err error
		mongoClient, mongoDB, err = mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		clientRepo = mongodb.NewClientRepository(mongoDB)
		docRepo = mongodb.NewDocumentRepository(mongoDB)
	default:
		clientRepo = memory.NewClientRepository()
		docRepo = memory.NewDocumentRepository()
	}

	// --- Upload dedup (optional) ---
	var (
		redisClient *redis.Client
		dedup       service.DedupChecker
	)
	if cfg.Redis.Addr != "" {
		var err error
		redisClient, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		dedup = redisdb.NewDedupChecker(redisClient)
	}

	// --- Services ---
	gemini := analyzer.NewGemini(analyzer.Config{
		APIKey:   cfg.Gemini.APIKey,
		Model:    cfg.Gemini.Model,
		Endpoint: cfg.Gemini.Endpoint,
	}, &http.Client{Timeout: 90 * time.Second}, log)

	clientService := service.NewClientService(clientRepo, log)
	authService := service.NewAuthService(
		clientRepo,
		service.PlaintextVerifier{},
		service.AdminCredential{Username: cfg.Admin.Username, Password: cfg.Admin.Password},
		cfg.JWTSecret,
		24*time.Hour,
		log,
	)
	matcher := service.NewMatcher(clientRepo, clientService, log)
	documentService := service.NewDocumentService(docRepo, clientService, matcher, gemini, dedup, log)

	if cfg.Env == "development" {
		seedDemoClients(ctx, clientService)
	}

	e := api.NewRouter(api.Deps{
		AuthService:     authService,
		ClientService:   clientService,
		DocumentService: documentService,
		JWTSecret:       cfg.JWTSecret,
		Mongo:           mongoDB,
		Redis:           redisClient,
		Logger:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Backend).Msg("docportal started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}
	log.Info().Msg("stopped")
}

// seedDemoClients creates the demo client records used in development.
// CreateClient is idempotent, so restarting against a persistent store is
// harmless.
func seedDemoClients(ctx context.Context, clients ports.ClientService) {
	for _, name := range []string{"Construcciones S.A.", "Talleres Mecánicos Paco"} {
		_, _ = clients.CreateClient(ctx, name)
	}
}
