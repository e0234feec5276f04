package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/cache"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()
	cfg := config.New()

	// Optionally overlay parameters from SSM (deployed environments)
	cfg, err := config.LoadSSM(ctx, cfg, config.GetString(cfg, "SSM_PREFIX", ""))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load SSM parameters, continuing with environment only")
	}

	dsn, err := config.RequireString(cfg, "DATABASE_URL")
	if err != nil {
		log.Fatal().Err(err).Msg("Missing database configuration")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database schema")
	}

	currentDB := database.New(db)

	ownerEmail := config.GetString(cfg, "OWNER_EMAIL", "")
	if ownerEmail == "" {
		log.Warn().Msg("OWNER_EMAIL not set, owner notifications will fail to send")
	}

	mailer := services.NewMailer(cfg)
	smsNotifier := services.NewSMSNotifier(cfg)
	discussionService := services.NewDiscussionService(currentDB.DiscussionRepo(), mailer, smsNotifier, ownerEmail)

	llm, err := services.NewChatModel(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Chat model not configured, chatbot will answer with fallback replies only")
	}
	chatService := services.NewChatService(llm, currentDB.ProjectRepo())

	var assetService *services.AssetService
	if config.GetString(cfg, "ASSETS_BUCKET", "") != "" {
		assetService, err = services.NewAssetService(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize asset downloads, continuing without them")
		}
	}

	var relatedCache *cache.RelatedCache
	if redisAddr := config.GetString(cfg, "REDIS_ADDR", ""); redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: config.GetString(cfg, "REDIS_PASSWORD", ""),
		})
		ttl := time.Duration(config.GetInt(cfg, "RELATED_CACHE_TTL_MINUTES", 60)) * time.Minute
		relatedCache = cache.NewRelatedCache(client, ttl)
	}

	// Daily digest of recent submissions for the owner
	digestService := services.NewDigestService(currentDB.DiscussionRepo(), mailer, ownerEmail)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(config.GetString(cfg, "DIGEST_SCHEDULE", "0 8 * * *"), func() {
		if err := digestService.SendDaily(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to send daily digest")
		}
	}); err != nil {
		log.Error().Err(err).Msg("Failed to schedule daily digest")
	}
	scheduler.Start()
	defer scheduler.Stop()

	deps := api.Dependencies{
		Discussion:   discussionService,
		Chat:         chatService,
		RelatedCache: relatedCache,
	}
	if assetService != nil {
		deps.Assets = assetService
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, deps)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
