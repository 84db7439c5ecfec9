package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"twin-dojo/internal/config"
	apihttp "twin-dojo/internal/http"
	"twin-dojo/internal/llm"
	"twin-dojo/internal/repository"
	"twin-dojo/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var chatClient llm.ChatClient
	if cfg.RemoteConfigured() {
		chatClient, err = llm.NewChatClient(cfg.LLMProvider, cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			logger.Fatal("llm client init", zap.Error(err))
		}
		logger.Info("remote generation enabled",
			zap.String("provider", cfg.LLMProvider),
			zap.String("model", cfg.LLMModel),
		)
	} else {
		logger.Info("remote generation disabled, using heuristic replies")
	}

	var (
		limiter service.RemoteCallLimiter
		guard   service.GenerationGuard
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisRemoteCallLimiter(redisClient, cfg.RemoteCallWindow, cfg.RemoteCallsPerWindow)
			guard = service.NewRedisGenerationGuard(redisClient, cfg.GenerationLockTTL)
		}
		cancel()
	}
	if guard == nil {
		guard = service.NewLocalGenerationGuard(cfg.GenerationLockTTL)
		limiter = service.NewMemoryRemoteCallLimiter(cfg.RemoteCallWindow, cfg.RemoteCallsPerWindow)
	}

	employeeRepo := repository.NewMemoryEmployeeRepository()
	conversationRepo := repository.NewMemoryConversationRepository()

	engine := service.NewPersonaEngine(chatClient, limiter, cfg.LLMTemperature, logger)
	employeeSvc := service.NewEmployeeService(employeeRepo, logger)
	conversationSvc := service.NewConversationService(conversationRepo, employeeSvc, engine, guard, logger)

	router := apihttp.NewRouter(
		logger,
		apihttp.NewAssessmentHandler(logger),
		apihttp.NewEmployeeHandler(logger, employeeSvc),
		apihttp.NewConversationHandler(logger, conversationSvc),
		apihttp.NewReplyHandler(logger, engine),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
