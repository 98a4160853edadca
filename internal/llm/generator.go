package llm

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/skillscan/internal/prompts"
	"github.com/jonathan/skillscan/internal/types"
)

// Generator produces study plans and resume analyses from prompt templates.
type Generator struct {
	client Client
	tier   ModelTier
	logger *zap.Logger
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithTier selects the model tier used for every request.
func WithTier(tier ModelTier) GeneratorOption {
	return func(g *Generator) {
		g.tier = tier
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator wraps client.
func NewGenerator(client Client, opts ...GeneratorOption) *Generator {
	g := &Generator{client: client, tier: TierStandard, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// StudyPlan generates a study plan of weeks weeks for role.
func (g *Generator) StudyPlan(ctx context.Context, role string, weeks int) (string, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return "", &types.InvalidInputError{Message: "role is required", Offset: -1}
	}
	if weeks < types.MinStudyWeeks || weeks > types.MaxStudyWeeks {
		return "", &types.InvalidInputError{Message: "weeks must be between 1 and 12", Offset: -1}
	}

	prompt, err := prompts.Render(prompts.StudyPlanFile, "study-plan", map[string]string{
		"Role":  role,
		"Weeks": strconv.Itoa(weeks),
	})
	if err != nil {
		return "", err
	}

	g.logger.Debug("generating study plan", zap.String("role", role), zap.Int("weeks", weeks))
	return g.generate(ctx, "study plan", prompt)
}

// Analysis generates a resume analysis of the given type. The job
// description is optional and selects the job-aware prompt variant.
func (g *Generator) Analysis(ctx context.Context, resumeText, jobDescription string, analysisType types.AnalysisType) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", &types.InvalidInputError{Message: "resume text is required", Offset: -1}
	}
	key, err := AnalysisPromptKey(analysisType, jobDescription != "")
	if err != nil {
		return "", err
	}

	prompt, err := prompts.Render(prompts.AnalysisFile, key, map[string]string{
		"ResumeText":     resumeText,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return "", err
	}

	g.logger.Debug("generating analysis",
		zap.String("analysis_type", string(analysisType)),
		zap.Bool("with_job_description", jobDescription != ""))
	return g.generate(ctx, "analysis", prompt)
}

// AnalysisPromptKey returns the analysis prompt key for a type.
func AnalysisPromptKey(analysisType types.AnalysisType, withJob bool) (string, error) {
	var key string
	switch analysisType {
	case types.AnalysisQuickScan:
		key = "quick-scan"
	case types.AnalysisDetailed:
		key = "detailed"
	case types.AnalysisATSOptimization:
		key = "ats-optimization"
	default:
		return "", &types.InvalidInputError{Message: "unknown analysis type " + strconv.Quote(string(analysisType)), Offset: -1}
	}
	if withJob {
		key += "-with-job"
	}
	return key, nil
}

func (g *Generator) generate(ctx context.Context, what, prompt string) (string, error) {
	text, err := g.client.GenerateContent(ctx, prompt, g.tier)
	if err != nil {
		g.logger.Warn("generation failed", zap.String("kind", what), zap.Error(err))
		return "", &APICallError{Message: "failed to generate " + what, Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &APICallError{Message: "empty " + what + " returned"}
	}
	return StripCodeFence(text), nil
}
