package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL       string
	LogLevel          string
	Environment       string
	Port              string
	AllowedOrigins    []string
	JwtSecret         string
	AdminPassword     string
	GeminiAPIKeys     []string
	TurnstileSecret   string
	PublicBaseURL     string
	GenerateCron      string
	GenerateCount     int
	LinkDedupe        bool
	ClickWorkerCount  int
	ClickQueueSize    int
}

func LoadConfig() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		return nil, errors.New("ADMIN_PASSWORD is required")
	}

	allowedOrigins := []string{"*"}
	if ao := os.Getenv("ALLOWED_ORIGINS"); ao != "" {
		allowedOrigins = []string{}
		for _, origin := range strings.Split(ao, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	var geminiKeys []string
	if gk := os.Getenv("GEMINI_API_KEYS"); gk != "" {
		for _, key := range strings.Split(gk, ",") {
			if key = strings.TrimSpace(key); key != "" {
				geminiKeys = append(geminiKeys, key)
			}
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	publicBaseURL := os.Getenv("PUBLIC_BASE_URL")
	if publicBaseURL == "" {
		publicBaseURL = "https://xtoofan.site"
	}
	publicBaseURL = strings.TrimRight(publicBaseURL, "/")

	generateCount := 10 // default value
	if gc := os.Getenv("GENERATE_COUNT"); gc != "" {
		if parsed, err := strconv.Atoi(gc); err == nil {
			generateCount = parsed
		}
	}

	linkDedupe := true
	if ld := os.Getenv("LINK_DEDUPE"); ld != "" {
		linkDedupe = ld == "true"
	}

	clickWorkers := 2 // default value
	if cw := os.Getenv("CLICK_WORKERS"); cw != "" {
		if parsed, err := strconv.Atoi(cw); err == nil {
			clickWorkers = parsed
		}
	}

	clickQueue := 256 // default value
	if cq := os.Getenv("CLICK_QUEUE"); cq != "" {
		if parsed, err := strconv.Atoi(cq); err == nil {
			clickQueue = parsed
		}
	}

	return &Config{
		DatabaseURL:      databaseURL,
		LogLevel:         logLevel,
		Environment:      environment,
		Port:             port,
		AllowedOrigins:   allowedOrigins,
		JwtSecret:        jwtSecret,
		AdminPassword:    adminPassword,
		GeminiAPIKeys:    geminiKeys,
		TurnstileSecret:  os.Getenv("TURNSTILE_SECRET_KEY"),
		PublicBaseURL:    publicBaseURL,
		GenerateCron:     os.Getenv("GENERATE_CRON"),
		GenerateCount:    generateCount,
		LinkDedupe:       linkDedupe,
		ClickWorkerCount: clickWorkers,
		ClickQueueSize:   clickQueue,
	}, nil
}
