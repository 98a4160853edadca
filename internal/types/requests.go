package types

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AnalysisType selects which resume analysis prompt is used
type AnalysisType string

// Supported analysis types, as offered to the user
const (
	AnalysisQuickScan       AnalysisType = "Quick Scan"
	AnalysisDetailed        AnalysisType = "Detailed Analysis"
	AnalysisATSOptimization AnalysisType = "ATS Optimization"
)

// AnalysisTypes lists every supported analysis type.
func AnalysisTypes() []AnalysisType {
	return []AnalysisType{AnalysisQuickScan, AnalysisDetailed, AnalysisATSOptimization}
}

// Valid reports whether t is a supported analysis type.
func (t AnalysisType) Valid() bool {
	for _, known := range AnalysisTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Study plan length bounds in weeks
const (
	MinStudyWeeks = 1
	MaxStudyWeeks = 12
)

// ClassifyRequest asks for a document to be split into blocks.
type ClassifyRequest struct {
	Text *string `json:"text" validate:"required"`
}

// ClassifyResponse carries the classified blocks.
type ClassifyResponse struct {
	Blocks []Block `json:"blocks"`
}

// ScoreRequest asks for the score bundle of an analysis report.
type ScoreRequest struct {
	Text         *string `json:"text" validate:"required"`
	JitterPolicy string  `json:"jitter_policy,omitempty" validate:"omitempty,oneof=additive multiplicative"`
	Seed         *uint64 `json:"seed,omitempty"`
}

// ScoreResponse carries a score bundle and the display band of each score.
type ScoreResponse struct {
	Scores ScoreBundle       `json:"scores"`
	Bands  map[string]string `json:"bands"`
}

// StudyPlanRequest asks the generator for a study plan.
type StudyPlanRequest struct {
	Role  string `json:"role" validate:"required,min=1,max=100"`
	Weeks int    `json:"weeks" validate:"required,min=1,max=12"`
}

// StudyPlanResponse is a generated study plan with its classified blocks.
type StudyPlanResponse struct {
	ID     *uuid.UUID `json:"id,omitempty"`
	Role   string     `json:"role"`
	Weeks  int        `json:"weeks"`
	Plan   string     `json:"plan"`
	Blocks []Block    `json:"blocks"`
}

// AnalyzeRequest asks the generator to analyze a resume.
type AnalyzeRequest struct {
	ResumeText     string       `json:"resume_text" validate:"required,min=1"`
	JobDescription string       `json:"job_description,omitempty"`
	AnalysisType   AnalysisType `json:"analysis_type" validate:"required,analysis_type"`
}

// AnalyzeResponse is a generated analysis with its blocks and scores.
type AnalyzeResponse struct {
	ID           *uuid.UUID   `json:"id,omitempty"`
	AnalysisType AnalysisType `json:"analysis_type"`
	Analysis     string       `json:"analysis"`
	Blocks       []Block      `json:"blocks"`
	Scores       ScoreBundle  `json:"scores"`
}

// InterviewRequest asks for the question bank of a role.
type InterviewRequest struct {
	Role string `json:"role" validate:"required"`
}

// DocumentResponse is a stored document rebuilt into blocks.
type DocumentResponse struct {
	ID           uuid.UUID    `json:"id"`
	Kind         string       `json:"kind"`
	Role         string       `json:"role,omitempty"`
	Weeks        int          `json:"weeks,omitempty"`
	AnalysisType string       `json:"analysis_type,omitempty"`
	RawText      string       `json:"raw_text"`
	Blocks       []Block      `json:"blocks"`
	Scores       *ScoreBundle `json:"scores,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared request validator with the custom
// analysis_type rule registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("analysis_type", func(fl validator.FieldLevel) bool {
			return AnalysisType(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Validate validates the ClassifyRequest using the validator.
func (r *ClassifyRequest) Validate() error {
	return Validator().Struct(r)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return Validator().Struct(r)
}

// Validate validates the StudyPlanRequest using the validator.
func (r *StudyPlanRequest) Validate() error {
	return Validator().Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return Validator().Struct(r)
}

// Validate validates the InterviewRequest using the validator.
func (r *InterviewRequest) Validate() error {
	return Validator().Struct(r)
}
