package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/sharifianco/XToofan/internal/api"
	"github.com/sharifianco/XToofan/internal/api/generate"
	"github.com/sharifianco/XToofan/internal/clicks"
	"github.com/sharifianco/XToofan/internal/config"
	"github.com/sharifianco/XToofan/internal/genai"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/shortlink"
	"github.com/sharifianco/XToofan/internal/trends"
	"github.com/sharifianco/XToofan/internal/utils"
	"github.com/sharifianco/XToofan/internal/verify"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer utils.Zlog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := loaders.NewPostgresClient(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		utils.Zlog.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = db.EnsureSchema(ctx)
	cancel()
	if err != nil {
		utils.Zlog.Fatal("Failed to ensure schema", zap.Error(err))
	}

	clickPool := clicks.NewWorkerPool(cfg.ClickWorkerCount, cfg.ClickQueueSize, db)
	clickPool.Start()

	linkService := shortlink.NewService(db, clickPool, cfg.LinkDedupe, cfg.PublicBaseURL)

	var geminiClient *genai.GeminiClient
	if len(cfg.GeminiAPIKeys) > 0 {
		geminiClient, err = genai.NewGeminiClient(cfg.GeminiAPIKeys)
		if err != nil {
			utils.Zlog.Fatal("Failed to create Gemini client", zap.Error(err))
		}
	} else {
		utils.Zlog.Warn("GEMINI_API_KEYS not set, post generation disabled")
	}
	generateService := generate.NewService(db, linkService, geminiClient)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	api.RegisterRoutes(router, api.Deps{
		Cfg:      cfg,
		DB:       db,
		Links:    linkService,
		Clicks:   clickPool,
		Generate: generateService,
		Verifier: verify.NewTurnstile(cfg.TurnstileSecret),
		Trends:   trends.NewFetcher(),
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	var scheduler *cron.Cron
	if cfg.GenerateCron != "" && geminiClient != nil {
		scheduler = cron.New()
		if err := scheduler.AddFunc(cfg.GenerateCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			generateService.RunScheduled(ctx, cfg.GenerateCount)
		}); err != nil {
			utils.Zlog.Fatal("Invalid GENERATE_CRON expression", zap.Error(err))
		}
		scheduler.Start()
		utils.Zlog.Info("Scheduled generation enabled", zap.String("cron", cfg.GenerateCron))
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler.Handler(router),
	}

	go func() {
		utils.Zlog.Info("Server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Zlog.Info("Shutting down")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.Zlog.Error("Forced shutdown", zap.Error(err))
	}
	clickPool.Stop(shutdownCtx)
}
