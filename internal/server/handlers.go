package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skillscan/internal/classify"
	"github.com/jonathan/skillscan/internal/db"
	"github.com/jonathan/skillscan/internal/interview"
	"github.com/jonathan/skillscan/internal/rendering"
	"github.com/jonathan/skillscan/internal/scoring"
	"github.com/jonathan/skillscan/internal/types"
)

// maxBodyBytes bounds request bodies. Resumes and reports are plain text.
const maxBodyBytes = 1 << 20

// validatable is implemented by every request type in types.
type validatable interface {
	Validate() error
}

// decodeRequest reads a JSON body into req and validates it.
func decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrValidation{Field: "body", Message: "request body too large"}
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return req.Validate()
}

// handleClassify splits a document into blocks. With ?format=html the
// blocks are rendered as an HTML fragment instead.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req types.ClassifyRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	blocks, err := classify.ClassifyBytes([]byte(*req.Text))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		s.jsonResponse(w, http.StatusOK, types.ClassifyResponse{Blocks: blocks})
	case "html":
		s.htmlResponse(w, r, func() (string, error) { return rendering.HTML(blocks) })
	default:
		s.writeError(w, r, &ErrValidation{Field: "format", Message: "must be json or html"})
	}
}

// handleScore extracts the overall score of a report and derives fresh
// sub-scores. A seed makes the derivation reproducible.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	policy := s.policy
	if req.JitterPolicy != "" {
		p, err := scoring.ParsePolicy(req.JitterPolicy)
		if err != nil {
			s.writeError(w, r, &ErrValidation{Field: "jitter_policy", Message: err.Error()})
			return
		}
		policy = p
	}

	opts := []scoring.Option{scoring.WithPolicy(policy)}
	if req.Seed != nil {
		opts = append(opts, scoring.WithSource(scoring.NewSource(*req.Seed)))
	}

	scores, err := scoring.NewExtractor(opts...).ScoreBytes([]byte(*req.Text))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ScoreResponse{Scores: scores, Bands: scoring.Bands(scores)})
}

// handleStudyPlan generates, classifies and stores a study plan.
func (s *Server) handleStudyPlan(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.writeError(w, r, ErrGeneratorUnavailable)
		return
	}

	var req types.StudyPlanRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	role := strings.TrimSpace(req.Role)

	plan, err := s.generator.StudyPlan(r.Context(), role, req.Weeks)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := types.StudyPlanResponse{
		Role:   role,
		Weeks:  req.Weeks,
		Plan:   plan,
		Blocks: classify.Classify(plan),
	}
	resp.ID = s.persist(r, &db.DocumentCreateInput{
		Kind:    db.KindStudyPlan,
		Role:    role,
		Weeks:   req.Weeks,
		RawText: plan,
	})

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyze generates, classifies, scores and stores a resume analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.writeError(w, r, ErrGeneratorUnavailable)
		return
	}

	var req types.AnalyzeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	analysis, err := s.generator.Analysis(r.Context(), req.ResumeText, req.JobDescription, req.AnalysisType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	scores := scoring.NewExtractor(scoring.WithPolicy(s.policy)).Score(analysis)
	resp := types.AnalyzeResponse{
		AnalysisType: req.AnalysisType,
		Analysis:     analysis,
		Blocks:       classify.Classify(analysis),
		Scores:       scores,
	}
	overall := scores.Overall
	resp.ID = s.persist(r, &db.DocumentCreateInput{
		Kind:         db.KindAnalysis,
		AnalysisType: string(req.AnalysisType),
		RawText:      analysis,
		OverallScore: &overall,
	})

	s.jsonResponse(w, http.StatusOK, resp)
}

// persist stores a generated document when a store is configured. A failed
// write is logged and the response goes out without an ID, since the
// generated text is still useful to the caller.
func (s *Server) persist(r *http.Request, input *db.DocumentCreateInput) *uuid.UUID {
	if s.store == nil {
		return nil
	}
	doc, err := s.store.CreateDocument(r.Context(), input)
	if err != nil {
		s.logger.Warn("failed to store document", zap.String("kind", string(input.Kind)), zap.Error(err))
		return nil
	}
	return &doc.ID
}

// handleInterviewRoles lists the roles with a question bank.
func (s *Server) handleInterviewRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"roles": interview.Roles()})
}

// handleInterviewQuestions returns the scraped question bank of a role.
func (s *Server) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	var req types.InterviewRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	questions, err := s.questions(r.Context(), req.Role)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, questions)
}

// handleListDocuments lists stored documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrStoreUnavailable)
		return
	}

	query := r.URL.Query()
	kind, err := db.ParseDocumentKind(query.Get("kind"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "kind", Message: err.Error()})
		return
	}
	limit, err := queryInt(query.Get("limit"), "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	offset, err := queryInt(query.Get("offset"), "offset")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	docs, err := s.store.ListDocuments(r.Context(), db.ListOptions{Kind: kind, Limit: limit, Offset: offset})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []db.Document{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"documents": docs,
		"count":     len(docs),
	})
}

func queryInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: field, Message: "must be a non-negative integer"}
	}
	return n, nil
}

// handleGetDocument returns a stored document rebuilt into blocks. Analyses
// get their stored overall score with freshly derived sub-scores.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrStoreUnavailable)
		return
	}

	id, err := pathUUID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := types.DocumentResponse{
		ID:        doc.ID,
		Kind:      string(doc.Kind),
		RawText:   doc.RawText,
		Blocks:    classify.Classify(doc.RawText),
		CreatedAt: doc.CreatedAt,
	}
	if doc.Role != nil {
		resp.Role = *doc.Role
	}
	if doc.Weeks != nil {
		resp.Weeks = *doc.Weeks
	}
	if doc.AnalysisType != nil {
		resp.AnalysisType = *doc.AnalysisType
	}
	if doc.Kind == db.KindAnalysis {
		overall := scoring.ExtractOverallScore(doc.RawText)
		if doc.OverallScore != nil {
			overall = *doc.OverallScore
		}
		bundle := types.NewScoreBundle(overall, scoring.DeriveSubScores(overall, s.policy, scoring.NewRandomSource()))
		resp.Scores = &bundle
	}

	if r.URL.Query().Get("format") == "html" {
		s.htmlResponse(w, r, func() (string, error) {
			if doc.Kind == db.KindAnalysis {
				return rendering.AnalysisHTML(doc.RawText)
			}
			return rendering.HTML(resp.Blocks)
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDeleteDocument removes a stored document.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrStoreUnavailable)
		return
	}

	id, err := pathUUID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.DeleteDocument(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathUUID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

// htmlResponse writes the fragment produced by render.
func (s *Server) htmlResponse(w http.ResponseWriter, r *http.Request, render func() (string, error)) {
	out, err := render()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, out); err != nil {
		s.logger.Warn("failed to write HTML response", zap.Error(err))
	}
}
