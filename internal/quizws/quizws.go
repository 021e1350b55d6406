// Package quizws drives a quiz session over a WebSocket, one question at a
// time, and sends the evaluation when the last question is answered.
//
// Client messages are {"type":"answer","label":"..."}, {"type":"back"} and
// {"type":"restart"}. The server replies with "question", "result" or
// "error" messages.
package quizws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/pathfinder/internal/advisor"
	"github.com/p-n-ai/pathfinder/internal/catalog"
	"github.com/p-n-ai/pathfinder/internal/platform/metrics"
	"github.com/p-n-ai/pathfinder/internal/platform/storage"
	"github.com/p-n-ai/pathfinder/internal/session"
)

// Message types.
const (
	TypeQuestion = "question"
	TypeResult   = "result"
	TypeError    = "error"

	TypeAnswer  = "answer"
	TypeBack    = "back"
	TypeRestart = "restart"
)

// Error codes carried by "error" messages.
const (
	CodeBadMessage         = "bad_message"
	CodeUnknownOption      = "unknown_option"
	CodeStorageUnavailable = "storage_unavailable"
	CodeInternal           = "internal"
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

// QuestionView is the question currently shown to the learner.
type QuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  string   `json:"answer,omitempty"`
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type     string          `json:"type"`
	Session  string          `json:"session,omitempty"`
	Index    int             `json:"index"`
	Total    int             `json:"total"`
	Question *QuestionView   `json:"question,omitempty"`
	Result   *advisor.Result `json:"result,omitempty"`
	Code     string          `json:"code,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Handler serves the quiz WebSocket endpoint.
type Handler struct {
	engine  *advisor.Engine
	store   session.Store
	catalog *catalog.Catalog
	accept  *websocket.AcceptOptions
}

// NewHandler creates a quiz WebSocket handler. accept may be nil.
func NewHandler(engine *advisor.Engine, store session.Store, cat *catalog.Catalog, accept *websocket.AcceptOptions) *Handler {
	return &Handler{engine: engine, store: store, catalog: cat, accept: accept}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, h.accept)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	metrics.ActiveQuizSessions.Inc()
	defer metrics.ActiveQuizSessions.Dec()

	ctx := r.Context()
	status, reason := h.run(ctx, conn)
	_ = conn.Close(status, reason)
}

// run owns one connection until the quiz completes or the client leaves.
// An unfinished session is deleted on exit.
func (h *Handler) run(ctx context.Context, conn *websocket.Conn) (websocket.StatusCode, string) {
	s := session.New(h.engine.Bank().Len())
	defer func() {
		if err := h.store.Delete(context.WithoutCancel(ctx), s.ID); err != nil {
			slog.Warn("failed to delete quiz session", "session_id", s.ID, "error", err)
		}
	}()

	if err := h.save(ctx, conn, s); err != nil {
		return websocket.StatusTryAgainLater, "storage unavailable"
	}
	slog.Debug("quiz session started", "session_id", s.ID)
	if err := h.sendQuestion(ctx, conn, s); err != nil {
		return websocket.StatusInternalError, ""
	}

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 {
				slog.Debug("quiz connection ended", "session_id", s.ID, "error", err)
			}
			return websocket.StatusNormalClosure, ""
		}

		current, err := h.store.Get(ctx, s.ID)
		switch {
		case errors.Is(err, session.ErrNotFound):
			// Expired between messages; carry on from the local copy.
		case err != nil:
			_ = h.sendError(ctx, conn, s, CodeStorageUnavailable, err)
			return websocket.StatusTryAgainLater, "storage unavailable"
		default:
			s = current
		}

		switch msg.Type {
		case TypeAnswer:
			if msg.Label != "" {
				if _, ok := h.engine.Bank().Option(s.Index, msg.Label); !ok {
					err := fmt.Errorf("%q is not an option for this question", msg.Label)
					if werr := h.sendError(ctx, conn, s, CodeUnknownOption, err); werr != nil {
						return websocket.StatusInternalError, ""
					}
					continue
				}
			}
			s.Answer(msg.Label)
		case TypeBack:
			s.Back()
		case TypeRestart:
			if err := h.store.Delete(ctx, s.ID); err != nil {
				slog.Warn("failed to delete quiz session", "session_id", s.ID, "error", err)
			}
			s = session.New(h.engine.Bank().Len())
		default:
			if err := h.sendError(ctx, conn, s, CodeBadMessage, fmt.Errorf("unknown message type %q", msg.Type)); err != nil {
				return websocket.StatusInternalError, ""
			}
			continue
		}

		if s.Complete() {
			if err := h.sendResult(ctx, conn, s); err != nil {
				return websocket.StatusInternalError, ""
			}
			return websocket.StatusNormalClosure, "quiz complete"
		}

		if err := h.save(ctx, conn, s); err != nil {
			return websocket.StatusTryAgainLater, "storage unavailable"
		}
		if err := h.sendQuestion(ctx, conn, s); err != nil {
			return websocket.StatusInternalError, ""
		}
	}
}

func (h *Handler) save(ctx context.Context, conn *websocket.Conn, s *session.Session) error {
	err := h.store.Save(ctx, s)
	if err == nil {
		return nil
	}
	slog.Error("failed to save quiz session", "session_id", s.ID, "error", err)
	code := CodeStorageUnavailable
	if !errors.Is(err, storage.ErrUnavailable) {
		code = CodeInternal
	}
	_ = h.sendError(ctx, conn, s, code, err)
	return err
}

func (h *Handler) sendQuestion(ctx context.Context, conn *websocket.Conn, s *session.Session) error {
	q := h.engine.Bank().Question(s.Index)
	view := &QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Options: make([]string, 0, len(q.Options)),
		Answer:  s.Answers[s.Index],
	}
	for _, opt := range q.Options {
		view.Options = append(view.Options, opt.Label)
	}
	return wsjson.Write(ctx, conn, ServerMessage{
		Type:     TypeQuestion,
		Session:  s.ID,
		Index:    s.Index,
		Total:    len(s.Answers),
		Question: view,
	})
}

func (h *Handler) sendResult(ctx context.Context, conn *websocket.Conn, s *session.Session) error {
	res, err := h.engine.EvaluateLabels(ctx, s.Labels(), h.catalog.All())
	if err != nil {
		return h.sendError(ctx, conn, s, CodeUnknownOption, err)
	}
	return wsjson.Write(ctx, conn, ServerMessage{
		Type:    TypeResult,
		Session: s.ID,
		Index:   s.Index,
		Total:   len(s.Answers),
		Result:  &res,
	})
}

func (h *Handler) sendError(ctx context.Context, conn *websocket.Conn, s *session.Session, code string, err error) error {
	return wsjson.Write(ctx, conn, ServerMessage{
		Type:    TypeError,
		Session: s.ID,
		Index:   s.Index,
		Total:   len(s.Answers),
		Code:    code,
		Error:   err.Error(),
	})
}
