package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillscan/internal/config"
	"github.com/jonathan/skillscan/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token <client>",
	Short: "Mint an API bearer token",
	Long:  "Sign a bearer token for the named client with JWT_SECRET. The server accepts it on generation routes when auth is required.",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

var tokenHours int

func init() {
	tokenCmd.Flags().IntVar(&tokenHours, "hours", 0, "Token lifetime in hours (default JWT_EXPIRATION_HOURS, then 24)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	if tokenHours != 0 {
		jwtConfig.ExpirationHours = tokenHours
		if err := jwtConfig.Validate(); err != nil {
			return err
		}
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
