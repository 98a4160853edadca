package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skillscan/internal/classify"
	"github.com/jonathan/skillscan/internal/db"
	"github.com/jonathan/skillscan/internal/rendering"
	"github.com/jonathan/skillscan/internal/types"
)

var studyPlanCmd = &cobra.Command{
	Use:   "study-plan",
	Short: "Generate a week-by-week study plan for a role",
	Long:  "Generate a study plan with Gemini, classify it into blocks and print it. With --save the plan is stored in the database.",
	RunE:  runStudyPlan,
}

var (
	planRole   string
	planWeeks  int
	planFormat string
	planSave   bool
	planAPIKey string
)

func init() {
	studyPlanCmd.Flags().StringVarP(&planRole, "role", "r", "", "Target role, e.g. \"Backend Engineer\" (required)")
	studyPlanCmd.Flags().IntVarP(&planWeeks, "weeks", "w", 4, "Plan length in weeks (1-12)")
	studyPlanCmd.Flags().StringVarP(&planFormat, "format", "f", "text", "Output format: text, json, html or raw")
	studyPlanCmd.Flags().BoolVar(&planSave, "save", false, "Store the plan in the database")
	studyPlanCmd.Flags().StringVar(&planAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	_ = studyPlanCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(studyPlanCmd)
}

func runStudyPlan(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(planFormat, "text", "json", "html", "raw"); err != nil {
		return err
	}
	req := types.StudyPlanRequest{Role: planRole, Weeks: planWeeks}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid study plan request: %w", err)
	}

	ctx := cmd.Context()
	gen, closeGen, err := newGenerator(ctx, planAPIKey)
	if err != nil {
		return err
	}
	defer closeGen()

	plan, err := gen.StudyPlan(ctx, req.Role, req.Weeks)
	if err != nil {
		return err
	}
	resp := types.StudyPlanResponse{Role: req.Role, Weeks: req.Weeks, Plan: plan, Blocks: classify.Classify(plan)}

	if planSave {
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		doc, err := store.CreateDocument(ctx, &db.DocumentCreateInput{
			Kind:    db.KindStudyPlan,
			Role:    req.Role,
			Weeks:   req.Weeks,
			RawText: plan,
		})
		if err != nil {
			return err
		}
		resp.ID = &doc.ID
		logger.Info("saved study plan", zap.String("id", doc.ID.String()))
	}

	out := cmd.OutOrStdout()
	switch planFormat {
	case "raw":
		_, _ = fmt.Fprintln(out, plan)
	case "html":
		html, err := rendering.HTML(resp.Blocks)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, html)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	default:
		_, _ = fmt.Fprintln(out, rendering.Terminal(resp.Blocks))
	}
	return nil
}
