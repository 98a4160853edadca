package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skillscan/internal/db"
	"github.com/jonathan/skillscan/internal/interview"
	"github.com/jonathan/skillscan/internal/llm"
	"github.com/jonathan/skillscan/internal/types"
)

// Dependency errors, reported as 503
var (
	ErrStoreUnavailable     = errors.New("document store is not configured")
	ErrGeneratorUnavailable = errors.New("text generation is not configured")
)

// ErrValidation is returned for malformed request parameters.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		fieldErrs   validator.ValidationErrors
		invalid     *types.InvalidInputError
		apiErr      *llm.APICallError
		questionErr *interview.Error
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation), errors.As(err, &fieldErrs), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &questionErr):
		if questionErr.Cause == nil {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, ErrGeneratorUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage renders err for a response body. Validator errors become
// one "field: rule" clause per failed field; internal errors are not
// exposed.
func errorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		clauses := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			clause := fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag())
			if fe.Param() != "" {
				clause += "=" + fe.Param()
			}
			clauses = append(clauses, clause)
		}
		return "invalid request: " + strings.Join(clauses, "; ")
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
