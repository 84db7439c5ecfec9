package service

import (
	"strings"
	"testing"

	"twin-dojo/internal/domain"
)

func TestFrame_EverySessionTypeHasEntry(t *testing.T) {
	if len(framings) != domain.SessionTypeCount {
		t.Fatalf("expected %d framings, got %d", domain.SessionTypeCount, len(framings))
	}
	for _, st := range domain.AllSessionTypes() {
		f := Frame(st)
		if f.SessionType != st {
			t.Fatalf("%v: expected session type echoed, got %v", st, f.SessionType)
		}
		if strings.TrimSpace(f.OpeningLine) == "" {
			t.Fatalf("%v: empty opening line", st)
		}
		if strings.TrimSpace(f.BehavioralBrief) == "" {
			t.Fatalf("%v: empty behavioral brief", st)
		}
		if strings.TrimSpace(f.Title) == "" {
			t.Fatalf("%v: empty title", st)
		}
	}
}

func TestFrame_FiringMentionsNeuroticism(t *testing.T) {
	f := Frame(domain.SessionFiring)
	if !strings.Contains(f.BehavioralBrief, "Neuroticismo") {
		t.Fatalf("expected firing brief to reference neuroticism, got %q", f.BehavioralBrief)
	}
	if f.OpeningLine == Frame(domain.SessionFeedback).OpeningLine {
		t.Fatalf("expected firing opening to differ from feedback opening")
	}
}

func TestAllFramings_Order(t *testing.T) {
	all := AllFramings()
	if len(all) != domain.SessionTypeCount {
		t.Fatalf("expected %d framings, got %d", domain.SessionTypeCount, len(all))
	}
	for i, st := range domain.AllSessionTypes() {
		if all[i].SessionType != st {
			t.Fatalf("position %d: expected %v, got %v", i, st, all[i].SessionType)
		}
	}
}
