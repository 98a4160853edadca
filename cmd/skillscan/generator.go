package main

import (
	"context"
	"fmt"

	"github.com/jonathan/skillscan/internal/db"
	"github.com/jonathan/skillscan/internal/llm"
)

// newGenerator builds a Gemini-backed generator from the loaded config.
// apiKey overrides the configured key when set. The returned close func
// releases the client.
func newGenerator(ctx context.Context, apiKey string) (*llm.Generator, func(), error) {
	if apiKey == "" {
		apiKey = appConfig.APIKey
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	tier, model := llm.ParseTier(appConfig.Model)
	llmConfig := llm.DefaultConfig()
	if model != "" {
		llmConfig = llmConfig.WithModel(tier, model)
	}

	client, err := llm.NewGeminiClient(ctx, llmConfig, apiKey)
	if err != nil {
		return nil, nil, err
	}

	gen := llm.NewGenerator(client, llm.WithTier(tier), llm.WithLogger(logger))
	return gen, func() { _ = client.Close() }, nil
}

// openStore connects to the configured database and ensures the schema.
func openStore(ctx context.Context) (*db.DB, error) {
	if appConfig.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required to save documents")
	}
	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return database, nil
}
