package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/p-n-ai/pathfinder/internal/catalog"
	"github.com/p-n-ai/pathfinder/internal/eligibility"
	"github.com/p-n-ai/pathfinder/internal/profile"
	"github.com/p-n-ai/pathfinder/internal/vote"
)

// QuestionView is a question as shown to the learner, without scores.
type QuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Gate    string   `json:"gate,omitempty"`
	Options []string `json:"options"`
}

func (s *Server) handleQuestions(w http.ResponseWriter, _ *http.Request) {
	questions := s.deps.Engine.Bank().Questions()
	out := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		view := QuestionView{ID: q.ID, Text: q.Text, Gate: q.Gate, Options: make([]string, 0, len(q.Options))}
		for _, opt := range q.Options {
			view.Options = append(view.Options, opt.Label)
		}
		out = append(out, view)
	}
	JSONResponse(w, http.StatusOK, map[string]any{"questions": out})
}

// EvaluateRequest holds one optional label per question, in bank order.
// Scholarships, when present, replace the server catalog for this run;
// records that fail to decode are skipped.
type EvaluateRequest struct {
	Answers      []*string         `json:"answers" validate:"required"`
	Scholarships []json.RawMessage `json:"scholarships,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !s.decode(w, r, &req) {
		return
	}

	records := s.deps.Catalog.All()
	if req.Scholarships != nil {
		records = catalog.DecodeRecords(req.Scholarships)
	}

	res, err := s.deps.Engine.EvaluateLabels(r.Context(), req.Answers, records)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, res)
}

// CatalogResponse wraps scholarship lists the way the catalog feed does.
type CatalogResponse struct {
	Results []eligibility.Scholarship `json:"results"`
}

func (s *Server) handleSearchScholarships(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, CatalogResponse{
		Results: s.deps.Catalog.Search(r.URL.Query().Get("q")),
	})
}

func (s *Server) handleGetScholarship(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.deps.Catalog.Get(r.PathValue("id"))
	if !ok {
		ErrorResponse(w, http.StatusNotFound, "scholarship not found")
		return
	}
	JSONResponse(w, http.StatusOK, rec)
}

// MatchRequest selects scholarships by derived tags, a profile, or both.
type MatchRequest struct {
	Tags    []string         `json:"tags" validate:"omitempty,dive,required"`
	Profile *profile.Profile `json:"profile,omitempty"`
}

func (s *Server) handleMatchScholarships(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !s.decode(w, r, &req) {
		return
	}
	JSONResponse(w, http.StatusOK, CatalogResponse{
		Results: eligibility.Filter(s.deps.Catalog.All(), eligibility.Criteria{
			Tags:    req.Tags,
			Profile: req.Profile,
		}),
	})
}

// CredentialsRequest is used for both registration and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !s.decode(w, r, &req) {
		return
	}
	acct, err := s.deps.Accounts.Register(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, acct)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !s.decode(w, r, &req) {
		return
	}
	acct, err := s.deps.Accounts.Authenticate(req.Email, req.Password)
	if err != nil {
		slog.Info("login failed", "error", err)
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, acct)
}

// VoteRequest casts or clears a vote. Direction 0 clears.
type VoteRequest struct {
	TargetType string `json:"target_type" validate:"required,max=64"`
	TargetID   string `json:"target_id" validate:"required,max=128"`
	Direction  int    `json:"direction" validate:"min=-1,max=1"`
}

func (s *Server) voter(r *http.Request) vote.Voter {
	id := r.Header.Get(HeaderUserID)
	if id == "" {
		return vote.Voter{}
	}
	return s.deps.Accounts.Voter(id)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if !s.decode(w, r, &req) {
		return
	}
	target := vote.Target{Type: req.TargetType, ID: req.TargetID}
	tally, err := s.deps.Votes.Cast(r.Context(), target, s.voter(r), req.Direction)
	if err != nil {
		slog.Error("vote failed", "target", target.String(), "error", err)
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, tally)
}

func (s *Server) handleGetVotes(w http.ResponseWriter, r *http.Request) {
	target := vote.Target{Type: r.PathValue("targetType"), ID: r.PathValue("targetID")}
	tally, err := s.deps.Votes.Get(r.Context(), target, s.voter(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, tally)
}
