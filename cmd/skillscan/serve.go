package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skillscan/internal/config"
	"github.com/jonathan/skillscan/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server exposing classification, scoring, generation, interview question and " +
		"document endpoints. Generation needs GEMINI_API_KEY; document storage needs DATABASE_URL.",
	RunE: runServe,
}

var (
	servePort int
	serveAuth bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, then 8080)")
	serveCmd.Flags().BoolVar(&serveAuth, "require-auth", false, "Require a bearer token on generation routes (needs JWT_SECRET)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := server.Config{
		Port:         appConfig.Port,
		JitterPolicy: appConfig.JitterPolicy,
		UseBrowser:   appConfig.UseBrowser,
		Logger:       logger,
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	if serveAuth || appConfig.RequireAuth {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return fmt.Errorf("failed to create JWT config: %w", err)
		}
		cfg.JWT = jwtConfig
	}

	var deps server.Deps
	if appConfig.APIKey != "" {
		gen, closeGen, err := newGenerator(ctx, "")
		if err != nil {
			return err
		}
		defer closeGen()
		deps.Generator = gen
	} else {
		logger.Warn("GEMINI_API_KEY not set; generation routes will answer 503")
	}

	if appConfig.DatabaseURL != "" {
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Store = store
	} else {
		logger.Warn("DATABASE_URL not set; document routes will answer 503")
	}

	srv, err := server.New(cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	logger.Info("serving", zap.String("addr", srv.Addr()), zap.Bool("auth", cfg.JWT != nil))
	return srv.Start()
}
