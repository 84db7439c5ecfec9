package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"twin-dojo/internal/domain"
	"twin-dojo/internal/llm"
)

type stubLimiter struct {
	allow bool
	keys  []string
}

func (s *stubLimiter) Allow(key string) bool {
	s.keys = append(s.keys, key)
	return s.allow
}

func TestPersonaEngine_WithoutRemoteUsesHeuristic(t *testing.T) {
	engine := NewPersonaEngine(nil, nil, 0, nil)
	emp := sampleEmployee() // N=85, A=20

	got := engine.Reply(context.Background(), emp, nil, "Você está demitido.", domain.SessionFiring)
	if got.Source != domain.ReplySourceHeuristic {
		t.Fatalf("expected heuristic source, got %q", got.Source)
	}
	if got.Text != HeuristicReply(emp.Traits, domain.SessionFiring, "Você está demitido.") {
		t.Fatalf("expected heuristic text, got %q", got.Text)
	}
	if engine.GenerateReply(context.Background(), emp, nil, "Você está demitido.", domain.SessionFiring) != got.Text {
		t.Fatalf("expected GenerateReply to match Reply")
	}
}

func TestPersonaEngine_RemoteSuccess(t *testing.T) {
	mock := &llm.MockClient{Response: "  \"Eu... não sei o que dizer.\"  "}
	engine := NewPersonaEngine(mock, nil, 0, zap.NewNop())
	emp := sampleEmployee()
	history := []domain.Turn{
		{Speaker: domain.SpeakerPersona, Text: Frame(domain.SessionFiring).OpeningLine},
		{Speaker: domain.SpeakerManager, Text: "Precisamos conversar."},
	}

	got := engine.Reply(context.Background(), emp, history, "Você está demitido.", domain.SessionFiring)
	if got.Source != domain.ReplySourceRemote || got.Text != "Eu... não sei o que dizer." {
		t.Fatalf("unexpected reply %+v", got)
	}

	req := mock.LastRequest()
	if req.Message != "Você está demitido." {
		t.Fatalf("expected user message forwarded, got %q", req.Message)
	}
	if req.Temperature != 0.9 {
		t.Fatalf("expected default temperature 0.9, got %v", req.Temperature)
	}
	if len(req.History) != 2 || req.History[0].Role != llm.RoleAssistant || req.History[1].Role != llm.RoleUser {
		t.Fatalf("unexpected history mapping %+v", req.History)
	}
	if req.SystemPrompt != (PersonaPromptBuilder{}).BuildSystemDirective(emp, Frame(domain.SessionFiring)) {
		t.Fatalf("expected system directive built from employee and framing")
	}
}

func TestPersonaEngine_RemoteFailures(t *testing.T) {
	cases := []struct {
		name   string
		mock   *llm.MockClient
		cancel bool
		want   domain.Reply
	}{
		{
			name: "transport error apologizes",
			mock: &llm.MockClient{Err: errors.New("dial tcp: refused")},
			want: domain.Reply{Text: ConnectionApology, Source: domain.ReplySourceApology},
		},
		{
			name: "empty completion apologizes",
			mock: &llm.MockClient{Err: llm.ErrEmptyCompletion},
			want: domain.Reply{Text: ConnectionApology, Source: domain.ReplySourceApology},
		},
		{
			name:   "cancelled context apologizes",
			mock:   &llm.MockClient{Response: "não deveria chegar"},
			cancel: true,
			want:   domain.Reply{Text: ConnectionApology, Source: domain.ReplySourceApology},
		},
		{
			name: "empty text uses placeholder",
			mock: &llm.MockClient{Response: "   "},
			want: domain.Reply{Text: EmptyReplyPlaceholder, Source: domain.ReplySourcePlaceholder},
		},
		{
			name: "fenced empty text uses placeholder",
			mock: &llm.MockClient{Response: "```\n```"},
			want: domain.Reply{Text: EmptyReplyPlaceholder, Source: domain.ReplySourcePlaceholder},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tc.cancel {
				cancel()
			}
			engine := NewPersonaEngine(tc.mock, nil, 0.5, zap.NewNop())
			got := engine.Reply(ctx, sampleEmployee(), nil, "Oi", domain.SessionFeedback)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			if tc.mock.Calls() != 1 {
				t.Fatalf("expected one remote call, got %d", tc.mock.Calls())
			}
		})
	}
}

func TestPersonaEngine_LimiterDeniesFallsBackToHeuristic(t *testing.T) {
	mock := &llm.MockClient{Response: "remoto"}
	limiter := &stubLimiter{allow: false}
	engine := NewPersonaEngine(mock, limiter, 0, zap.NewNop())
	emp := sampleEmployee()

	got := engine.Reply(context.Background(), emp, nil, "Temos um problema.", domain.SessionFeedback)
	if got.Source != domain.ReplySourceHeuristic {
		t.Fatalf("expected heuristic source when limited, got %+v", got)
	}
	if mock.Calls() != 0 {
		t.Fatalf("expected no remote call, got %d", mock.Calls())
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != emp.ID {
		t.Fatalf("expected limiter keyed by employee id, got %+v", limiter.keys)
	}

	limiter.allow = true
	if got := engine.Reply(context.Background(), emp, nil, "Oi", domain.SessionFeedback); got.Source != domain.ReplySourceRemote {
		t.Fatalf("expected remote source when allowed, got %+v", got)
	}
}

func TestPersonaEngine_RemoteEnabled(t *testing.T) {
	var nilEngine *PersonaEngine
	if nilEngine.RemoteEnabled() {
		t.Fatalf("expected nil engine without remote")
	}
	if NewPersonaEngine(nil, nil, 0, nil).RemoteEnabled() {
		t.Fatalf("expected engine without client to be heuristic only")
	}
	if !NewPersonaEngine(&llm.MockClient{}, nil, 0, nil).RemoteEnabled() {
		t.Fatalf("expected engine with client to be remote")
	}
}
