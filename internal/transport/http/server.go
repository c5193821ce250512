package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/handler"
	"microblog/internal/queue"
	"microblog/internal/redis"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// Run wires the whole application together and blocks until shutdown.
func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis (notification stream)
	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// 5. Queue publisher and consumer
	publisher := queue.NewPublisher(redisClient.Client)
	consumer := queue.NewConsumer(redisClient.Client)

	// 6. Services
	userService := service.NewUserService(userRepo, followRepo, postRepo, db)
	authService := service.NewAuthService(refreshTokenRepo, cfg)
	followService := service.NewFollowService(followRepo, userRepo, db, publisher)
	feedService := service.NewFeedService(postRepo)
	postService := service.NewPostService(postRepo, userRepo)
	translateClient := service.NewTranslateClient(cfg.TranslatorURL, cfg.TranslatorAPIKey)

	// 7. Mail workers
	mailer, err := service.NewMailer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}

	var followerMailer worker.FollowerMailer
	if mailer != nil {
		followerMailer = mailer
	}
	workerHandler := worker.NewHandler(userRepo, followerMailer)
	manager := worker.NewManager(consumer, workerHandler, worker.ManagerConfig{
		WorkerCount: cfg.MailWorkerCount,
	})
	if err := manager.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start mail workers: %w", err)
	}
	defer manager.Stop()

	// 8. Handlers and router
	router := NewRouter(RouterConfig{
		AuthHandler:      handler.NewAuthHandler(userService, authService),
		UserHandler:      handler.NewUserHandler(userService),
		FollowHandler:    handler.NewFollowHandler(followService, cfg.PostsPerPage),
		FeedHandler:      handler.NewFeedHandler(feedService, cfg.PostsPerPage),
		PostHandler:      handler.NewPostHandler(postService, cfg.PostsPerPage),
		TranslateHandler: handler.NewTranslateHandler(translateClient),
		LastSeen:         userService,
		JWTSecret:        cfg.JWTSecret,
	})

	// 9. HTTP server with graceful shutdown
	addr := ":" + cfg.ServerPort
	server := &stdhttp.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
