package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"twin-dojo/internal/domain"
)

func TestMemoryEmployeeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEmployeeRepository()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	a := domain.Employee{ID: "a", Name: "Ana", Traits: domain.NeutralTraitProfile()}
	b := domain.Employee{ID: "b", Name: "Bruno", History: []domain.SessionSummary{{ID: "h1", Score: 70}}}
	for _, e := range []domain.Employee{a, b} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create %s: %v", e.ID, err)
		}
	}
	if err := repo.Create(ctx, a); !errors.Is(err, ErrEmployeeExists) {
		t.Fatalf("expected ErrEmployeeExists, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("expected insertion order, got %+v", list)
	}

	got, _ := repo.GetByID(ctx, "b")
	got.History[0].Score = 1
	again, _ := repo.GetByID(ctx, "b")
	if again.History[0].Score != 70 {
		t.Fatalf("expected stored history isolated from caller mutation")
	}

	a.Name = "Ana Paula"
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, _ := repo.GetByID(ctx, "a"); got.Name != "Ana Paula" {
		t.Fatalf("expected updated name, got %q", got.Name)
	}
	if err := repo.Update(ctx, domain.Employee{ID: "zzz"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestMemoryConversationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConversationRepository()

	conv := domain.Conversation{
		ID:          "c1",
		SessionType: domain.SessionConflict,
		Turns:       []domain.Turn{{ID: "t1", Speaker: domain.SpeakerPersona, Text: "Oi."}},
		StartedAt:   time.Now().UTC(),
	}
	if err := repo.Create(ctx, conv); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, conv); !errors.Is(err, ErrConversationExists) {
		t.Fatalf("expected ErrConversationExists, got %v", err)
	}

	conv.Turns[0].Text = "mutated"
	got, err := repo.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Turns[0].Text != "Oi." {
		t.Fatalf("expected stored turns isolated, got %q", got.Turns[0].Text)
	}

	got.Turns = append(got.Turns, domain.Turn{ID: "t2", Speaker: domain.SpeakerManager, Text: "Olá."})
	ended := time.Now().UTC()
	got.EndedAt = &ended
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	final, _ := repo.GetByID(ctx, "c1")
	if len(final.Turns) != 2 || !final.Ended() {
		t.Fatalf("expected updated conversation, got %+v", final)
	}

	if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, domain.Conversation{ID: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}
