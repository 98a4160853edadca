package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentKind distinguishes stored study plans from analyses
type DocumentKind string

// Document kinds
const (
	KindStudyPlan DocumentKind = "study_plan"
	KindAnalysis  DocumentKind = "analysis"
)

// ParseDocumentKind parses a kind filter. The empty string means any kind.
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch DocumentKind(s) {
	case "", KindStudyPlan, KindAnalysis:
		return DocumentKind(s), nil
	default:
		return "", fmt.Errorf("unknown document kind %q", s)
	}
}

// Document is a stored generated text. Only the raw text and the
// deterministic overall score are kept; blocks and sub-scores are
// recomputed on read.
type Document struct {
	ID           uuid.UUID    `json:"id"`
	Kind         DocumentKind `json:"kind"`
	Role         *string      `json:"role,omitempty"`
	Weeks        *int         `json:"weeks,omitempty"`
	AnalysisType *string      `json:"analysis_type,omitempty"`
	RawText      string       `json:"raw_text"`
	OverallScore *int         `json:"overall_score,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// DocumentCreateInput holds the fields of a new document
type DocumentCreateInput struct {
	Kind         DocumentKind
	Role         string
	Weeks        int
	AnalysisType string
	RawText      string
	OverallScore *int
}

// Listing bounds
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListOptions filters and pages ListDocuments
type ListOptions struct {
	Kind   DocumentKind
	Limit  int
	Offset int
}

// normalize clamps the limit into [1, MaxListLimit] and the offset to >= 0.
func (o ListOptions) normalize() ListOptions {
	switch {
	case o.Limit <= 0:
		o.Limit = DefaultListLimit
	case o.Limit > MaxListLimit:
		o.Limit = MaxListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
