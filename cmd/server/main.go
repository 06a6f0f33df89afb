// Package main is the entry point for the notebot server.
//
// main's job is deliberately small:
//  1. Read configuration from the environment
//  2. Create the shared dependencies (logger, assistant client)
//  3. Hand everything to internal/server and start it
//
// All actual logic lives in the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sakif/notebot/internal/assistant"
	"github.com/sakif/notebot/internal/server"
)

func main() {
	// A .env file in the working directory is loaded if present; real
	// environment variables win over it. Missing file is not an error.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// === CONFIGURATION ===
	// Everything comes from the environment. The two required values are
	// the session signing secret and the generation API key.
	secretKey := os.Getenv("APP_SECRET_KEY")
	if secretKey == "" {
		logger.Error("APP_SECRET_KEY not set — it signs the session cookie and is required")
		os.Exit(1)
	}

	apiKey := os.Getenv("OPEN_AI_KEY")
	if apiKey == "" {
		logger.Error("OPEN_AI_KEY not set — note creation needs the generation API")
		os.Exit(1)
	}
	// Optional override for OpenAI-compatible gateways.
	baseURL := os.Getenv("OPENAI_BASE_URL")

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/notebot.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	// The data directory must exist before sqlite can create the file.
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	templateDir := "web/templates"
	if envTmpl := os.Getenv("TEMPLATE_DIR"); envTmpl != "" {
		templateDir = envTmpl
	}

	// === DEPENDENCIES ===
	// The assistant client is the app's one external integration: a single
	// instance, constructed here, shared by every request.
	client := assistant.NewOpenAIClient(apiKey, baseURL)

	cfg := server.Config{
		Port:        port,
		TemplateDir: templateDir,
		DBPath:      dbPath,
		SecretKey:   secretKey,
	}

	srv, err := server.New(cfg, logger, client)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
