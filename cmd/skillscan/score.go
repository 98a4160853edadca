package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillscan/internal/rendering"
	"github.com/jonathan/skillscan/internal/schemas"
	"github.com/jonathan/skillscan/internal/scoring"
	"github.com/jonathan/skillscan/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score [file]",
	Short: "Extract the score bundle of an analysis report",
	Long: "Read an analysis report (a file, or standard input) and print its overall ATS score with " +
		"derived relevance, keyword and skills sub-scores.",
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

var (
	scorePolicy string
	scoreSeed   uint64
	scoreFormat string
)

func init() {
	scoreCmd.Flags().StringVar(&scorePolicy, "policy", "", "Jitter policy: additive or multiplicative (default from config)")
	scoreCmd.Flags().Uint64Var(&scoreSeed, "seed", 0, "Seed for reproducible sub-scores")
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", "text", "Output format: text or json")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	if err := checkFormat(scoreFormat, "text", "json"); err != nil {
		return err
	}

	policyName := scorePolicy
	if policyName == "" {
		policyName = appConfig.JitterPolicy
	}
	policy, err := scoring.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	opts := []scoring.Option{scoring.WithPolicy(policy)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, scoring.WithSource(scoring.NewSource(scoreSeed)))
	}
	bundle, err := scoring.NewExtractor(opts...).ScoreBytes(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scoreFormat == "text" {
		if !scoring.HasOverallScore(string(data)) {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: no overall ATS score found; scoring as 0")
		}
		_, _ = fmt.Fprintln(out, rendering.TerminalScores(bundle))
		return nil
	}

	if err := schemas.ValidateScores(bundle); err != nil {
		return fmt.Errorf("score bundle does not validate against schema: %w", err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(types.ScoreResponse{Scores: bundle, Bands: scoring.Bands(bundle)})
}
