package quizws_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/pathfinder/internal/advisor"
	"github.com/p-n-ai/pathfinder/internal/catalog"
	"github.com/p-n-ai/pathfinder/internal/quiz"
	"github.com/p-n-ai/pathfinder/internal/quizws"
	"github.com/p-n-ai/pathfinder/internal/scoring"
	"github.com/p-n-ai/pathfinder/internal/session"
)

func setup(t *testing.T) (*websocket.Conn, *session.MemoryStore, context.Context) {
	t.Helper()

	bank, err := quiz.Default()
	if err != nil {
		t.Fatalf("quiz.Default() error = %v", err)
	}
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	store := session.NewMemoryStore(time.Hour)
	engine := advisor.NewEngine(advisor.EngineConfig{Bank: bank})

	srv := httptest.NewServer(quizws.NewHandler(engine, store, cat, nil))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn, store, ctx
}

func read(t *testing.T, ctx context.Context, conn *websocket.Conn) quizws.ServerMessage {
	t.Helper()
	var msg quizws.ServerMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return msg
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, msg quizws.ClientMessage) {
	t.Helper()
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
}

func TestQuiz_FullRun(t *testing.T) {
	conn, store, ctx := setup(t)

	msg := read(t, ctx, conn)
	if msg.Type != quizws.TypeQuestion || msg.Index != 0 {
		t.Fatalf("first message = %+v, want question 0", msg)
	}
	if msg.Question.ID != "education_level" {
		t.Errorf("first question = %q, want education_level", msg.Question.ID)
	}
	total := msg.Total

	for i := 0; i < total; i++ {
		label := ""
		switch msg.Question.ID {
		case "education_level":
			label = "Below Grade 9 (or no formal schooling)"
		case "age":
			label = "18–24"
		}
		send(t, ctx, conn, quizws.ClientMessage{Type: quizws.TypeAnswer, Label: label})
		msg = read(t, ctx, conn)
	}

	if msg.Type != quizws.TypeResult {
		t.Fatalf("final message = %+v, want result", msg)
	}
	if msg.Result.Scenario != scoring.ScenarioFastTrack {
		t.Errorf("Scenario = %q, want fasttrack", msg.Result.Scenario)
	}
	if msg.Result.Recommended == nil || msg.Result.Recommended.Pathway != quiz.GED {
		t.Errorf("Recommended = %+v, want ged", msg.Result.Recommended)
	}

	// The server closes after the result and drops the session.
	var extra quizws.ServerMessage
	if err := wsjson.Read(ctx, conn, &extra); websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		t.Errorf("close error = %v, want normal closure", err)
	}
	if store.Len() != 0 {
		t.Errorf("stored sessions = %d, want 0", store.Len())
	}
}

func TestQuiz_BackKeepsAnswer(t *testing.T) {
	conn, _, ctx := setup(t)

	first := read(t, ctx, conn)
	label := first.Question.Options[1]
	send(t, ctx, conn, quizws.ClientMessage{Type: quizws.TypeAnswer, Label: label})
	if msg := read(t, ctx, conn); msg.Index != 1 {
		t.Fatalf("Index = %d, want 1", msg.Index)
	}

	send(t, ctx, conn, quizws.ClientMessage{Type: quizws.TypeBack})
	msg := read(t, ctx, conn)
	if msg.Index != 0 {
		t.Fatalf("Index = %d, want 0", msg.Index)
	}
	if msg.Question.Answer != label {
		t.Errorf("Answer = %q, want %q", msg.Question.Answer, label)
	}
}

func TestQuiz_Restart(t *testing.T) {
	conn, _, ctx := setup(t)

	first := read(t, ctx, conn)
	send(t, ctx, conn, quizws.ClientMessage{Type: quizws.TypeAnswer, Label: first.Question.Options[0]})
	read(t, ctx, conn)

	send(t, ctx, conn, quizws.ClientMessage{Type: quizws.TypeRestart})
	msg := read(t, ctx, conn)
	if msg.Index != 0 || msg.Question.Answer != "" {
		t.Errorf("after restart = %+v, want blank question 0", msg)
	}
	if msg.Session == first.Session {
		t.Error("restart should start a new session")
	}
}

func TestQuiz_Errors(t *testing.T) {
	conn, _, ctx := setup(t)
	read(t, ctx, conn)

	tests := []struct {
		name string
		msg  quizws.ClientMessage
		code string
	}{
		{"unknown option", quizws.ClientMessage{Type: quizws.TypeAnswer, Label: "PhD"}, quizws.CodeUnknownOption},
		{"unknown type", quizws.ClientMessage{Type: "skip"}, quizws.CodeBadMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, ctx, conn, tt.msg)
			msg := read(t, ctx, conn)
			if msg.Type != quizws.TypeError || msg.Code != tt.code {
				t.Errorf("reply = %+v, want error %s", msg, tt.code)
			}
			if msg.Index != 0 {
				t.Errorf("Index = %d, want unchanged 0", msg.Index)
			}
		})
	}
}
