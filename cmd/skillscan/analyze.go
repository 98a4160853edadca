package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skillscan/internal/classify"
	"github.com/jonathan/skillscan/internal/db"
	"github.com/jonathan/skillscan/internal/rendering"
	"github.com/jonathan/skillscan/internal/scoring"
	"github.com/jonathan/skillscan/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume for ATS compatibility",
	Long: "Analyze a plain-text resume with Gemini, optionally against a job description, and print the " +
		"report with its score bundle.",
	RunE: runAnalyze,
}

var (
	analyzeResume string
	analyzeJob    string
	analyzeType   string
	analyzeFormat string
	analyzeSave   bool
	analyzeAPIKey string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResume, "resume", "", "Path to the resume text (\"-\" for stdin, required)")
	analyzeCmd.Flags().StringVar(&analyzeJob, "job", "", "Path to a job description text")
	analyzeCmd.Flags().StringVarP(&analyzeType, "type", "t", string(types.AnalysisQuickScan),
		"Analysis type: \"Quick Scan\", \"Detailed Analysis\" or \"ATS Optimization\"")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "Output format: text, json, html or raw")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store the analysis in the database")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	_ = analyzeCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(analyzeFormat, "text", "json", "html", "raw"); err != nil {
		return err
	}

	resume, err := readInput(cmd, analyzeResume)
	if err != nil {
		return err
	}
	var job []byte
	if analyzeJob != "" {
		if job, err = readInput(cmd, analyzeJob); err != nil {
			return err
		}
	}

	req := types.AnalyzeRequest{
		ResumeText:     string(resume),
		JobDescription: string(job),
		AnalysisType:   types.AnalysisType(analyzeType),
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid analysis request: %w", err)
	}

	ctx := cmd.Context()
	gen, closeGen, err := newGenerator(ctx, analyzeAPIKey)
	if err != nil {
		return err
	}
	defer closeGen()

	analysis, err := gen.Analysis(ctx, req.ResumeText, req.JobDescription, req.AnalysisType)
	if err != nil {
		return err
	}

	policy, err := scoring.ParsePolicy(appConfig.JitterPolicy)
	if err != nil {
		return err
	}
	scores := scoring.NewExtractor(scoring.WithPolicy(policy)).Score(analysis)
	resp := types.AnalyzeResponse{
		AnalysisType: req.AnalysisType,
		Analysis:     analysis,
		Blocks:       classify.Classify(analysis),
		Scores:       scores,
	}

	if analyzeSave {
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		overall := scores.Overall
		doc, err := store.CreateDocument(ctx, &db.DocumentCreateInput{
			Kind:         db.KindAnalysis,
			AnalysisType: string(req.AnalysisType),
			RawText:      analysis,
			OverallScore: &overall,
		})
		if err != nil {
			return err
		}
		resp.ID = &doc.ID
		logger.Info("saved analysis", zap.String("id", doc.ID.String()))
	}

	out := cmd.OutOrStdout()
	switch analyzeFormat {
	case "raw":
		_, _ = fmt.Fprintln(out, analysis)
	case "html":
		html, err := rendering.AnalysisHTML(analysis)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, html)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	default:
		_, _ = fmt.Fprintln(out, rendering.TerminalAnalysis(analysis))
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, rendering.TerminalScores(scores))
	}
	return nil
}
