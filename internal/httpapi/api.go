// Package httpapi exposes the pathway finder over JSON HTTP: the question
// bank, evaluation, scholarship search and matching, accounts and votes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/p-n-ai/pathfinder/internal/account"
	"github.com/p-n-ai/pathfinder/internal/advisor"
	"github.com/p-n-ai/pathfinder/internal/catalog"
	"github.com/p-n-ai/pathfinder/internal/platform/metrics"
	"github.com/p-n-ai/pathfinder/internal/platform/storage"
	"github.com/p-n-ai/pathfinder/internal/quiz"
	"github.com/p-n-ai/pathfinder/internal/vote"
)

// HeaderUserID carries the caller's account id for voting.
const HeaderUserID = "X-User-ID"

// Check reports whether a dependency is ready.
type Check func(ctx context.Context) error

// Deps holds everything the API serves.
type Deps struct {
	Engine   *advisor.Engine
	Catalog  *catalog.Catalog
	Accounts *account.Registry
	Votes    *vote.Service
	QuizWS   http.Handler
	// Checks are run by /readyz, keyed by dependency name.
	Checks map[string]Check
}

// Server holds the HTTP handlers.
type Server struct {
	deps     Deps
	validate *validator.Validate
}

// New creates the API server.
func New(deps Deps) *Server {
	return &Server{deps: deps, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, WithLogging(pattern, h))
	}

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.Handle("GET /metrics", metrics.Handler())

	handle("GET /api/questions", s.handleQuestions)
	handle("POST /api/pathfinder/evaluate", s.handleEvaluate)
	if s.deps.QuizWS != nil {
		handle("GET /api/pathfinder/ws", s.deps.QuizWS.ServeHTTP)
	}
	handle("GET /api/scholarships", s.handleSearchScholarships)
	handle("GET /api/scholarships/{id}", s.handleGetScholarship)
	handle("POST /api/scholarships/match", s.handleMatchScholarships)
	handle("POST /api/accounts", s.handleRegister)
	handle("POST /api/accounts/login", s.handleLogin)
	handle("POST /api/votes", s.handleCastVote)
	handle("GET /api/votes/{targetType}/{targetID}", s.handleGetVotes)

	return CORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	failed := map[string]string{}
	for name, check := range s.deps.Checks {
		if err := check(r.Context()); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		JSONResponse(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unavailable",
			"checks": failed,
		})
		return
	}
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeError maps domain errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		JSONResponse(w, http.StatusBadRequest, ErrorBody{
			Error:   http.StatusText(http.StatusBadRequest),
			Message: "validation failed",
			Fields:  fields,
		})
	case errors.Is(err, storage.ErrUnavailable):
		ErrorResponse(w, http.StatusServiceUnavailable, "storage unavailable, try again later")
	case errors.Is(err, quiz.ErrUnknownOption),
		errors.Is(err, vote.ErrInvalidDirection),
		errors.Is(err, vote.ErrInvalidTarget),
		errors.Is(err, account.ErrCredentialsRequired),
		errors.Is(err, account.ErrPasswordTooShort):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, account.ErrEmailTaken):
		ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		ErrorResponse(w, http.StatusUnauthorized, err.Error())
	default:
		ErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "max":
		return "must be " + fe.Tag() + " " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "failed " + fe.Tag() + " validation"
}

// decode parses and validates a JSON body, writing the error response on
// failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := ParseJSONBody(w, r, v); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, err)
		return false
	}
	return true
}
