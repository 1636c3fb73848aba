package state

import (
	"context"
	"errors"
	"testing"

	"github.com/ntustvocab/vocabterm/internal/catalog/catalogtest"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

var practicePair = vocab.Selection{Part: vocab.PartOf(1), Topic: vocab.TopicOf("toefl")}

func question(id, answer string, choices ...string) vocab.PracticeQuestion {
	q := vocab.PracticeQuestion{ID: id, Question: id + "?", Answer: answer}
	for i, c := range choices {
		q.Choices = append(q.Choices, vocab.Choice{Order: i + 1, Text: c})
	}
	return q
}

func threeQuestions() []vocab.PracticeQuestion {
	return []vocab.PracticeQuestion{
		question("q1", "lessen", "lessen", "increase", "expand"),
		question("q2", "frank", "shy", "frank", "angry"),
		question("q3", "brief", "long", "slow", "brief"),
	}
}

func loadedSession(t *testing.T, questions []vocab.PracticeQuestion) *PracticeSession {
	t.Helper()
	s := NewPracticeSession(practicePair)
	if err := s.Load(PracticeLoaded{SessionID: s.ID(), Questions: questions}); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func answer(t *testing.T, s *PracticeSession, idx int) bool {
	t.Helper()
	if err := s.Present(); err != nil {
		t.Fatalf("present: %v", err)
	}
	correct, err := s.SubmitChoice(idx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return correct
}

func TestPracticeScoresThreeQuestions(t *testing.T) {
	s := loadedSession(t, threeQuestions())
	if s.State() != PracticeReady || s.Total() != 3 {
		t.Fatalf("expected ready with 3 questions, got %v/%d", s.State(), s.Total())
	}

	if !answer(t, s, 0) {
		t.Fatalf("q1 should be correct")
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if answer(t, s, 0) {
		t.Fatalf("q2 should be wrong")
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !answer(t, s, 2) {
		t.Fatalf("q3 should be correct")
	}
	if err := s.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}

	if s.Errors() != 1 {
		t.Fatalf("expected 1 error, got %d", s.Errors())
	}
	if s.Accuracy() != "66.7" {
		t.Fatalf("expected 66.7, got %q", s.Accuracy())
	}
	if s.State() != PracticeCompleted {
		t.Fatalf("expected completed, got %v", s.State())
	}
}

func TestSecondSubmissionIsIgnored(t *testing.T) {
	s := loadedSession(t, threeQuestions())
	if !answer(t, s, 0) {
		t.Fatalf("expected correct first answer")
	}
	if _, err := s.SubmitChoice(1); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if s.Chosen() != 0 || s.Errors() != 0 {
		t.Fatalf("second click changed state: chosen=%d errors=%d", s.Chosen(), s.Errors())
	}
}

func TestSubmitRequiresAnswering(t *testing.T) {
	s := loadedSession(t, threeQuestions())
	if _, err := s.SubmitChoice(0); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected rejection before Present, got %v", err)
	}
	if err := s.Present(); err != nil {
		t.Fatalf("present: %v", err)
	}
	if _, err := s.SubmitChoice(7); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected out of range rejection, got %v", err)
	}
	if s.State() != PracticeAnswering {
		t.Fatalf("out of range choice must not change state, got %v", s.State())
	}
}

func TestAdvanceAndFinishGuards(t *testing.T) {
	s := loadedSession(t, threeQuestions()[:2])
	if err := s.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("advance before answering: %v", err)
	}
	answer(t, s, 0)
	if err := s.Finish(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("finish before last question: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.Chosen() != -1 || s.Index() != 1 {
		t.Fatalf("expected reset selection on next question, got chosen=%d index=%d", s.Chosen(), s.Index())
	}
	answer(t, s, 0)
	if err := s.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("advance past last: %v", err)
	}
	if err := s.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if s.Accuracy() != "50.0" {
		t.Fatalf("expected 50.0, got %q", s.Accuracy())
	}
}

func TestErrorsNeverDecrease(t *testing.T) {
	qs := []vocab.PracticeQuestion{
		question("a", "x", "y", "x"),
		question("b", "x", "x", "y"),
		question("c", "x", "y", "x"),
		question("d", "x", "x", "y"),
	}
	s := loadedSession(t, qs)
	picks := []int{0, 0, 1, 1}
	last := 0
	for i, pick := range picks {
		answer(t, s, pick)
		if s.Errors() < last {
			t.Fatalf("errors decreased at question %d: %d -> %d", i, last, s.Errors())
		}
		last = s.Errors()
		if i < len(picks)-1 {
			s.Advance()
		}
	}
	if last != 2 {
		t.Fatalf("expected 2 errors, got %d", last)
	}
}

func TestMalformedQuestionsRejectedAtLoad(t *testing.T) {
	qs := []vocab.PracticeQuestion{
		question("dup", "same", "same", "same", "other"),
		question("none", "missing", "a", "b"),
		question("ok", "b", "a", "b"),
	}
	s := loadedSession(t, qs)
	if s.Total() != 1 || s.Rejected() != 2 {
		t.Fatalf("expected 1 kept and 2 rejected, got %d/%d", s.Total(), s.Rejected())
	}
	q, _ := s.Current()
	if q.ID != "ok" {
		t.Fatalf("unexpected question %q", q.ID)
	}
}

func TestChoicesFollowDisplayOrder(t *testing.T) {
	q := vocab.PracticeQuestion{ID: "q", Answer: "right", Choices: []vocab.Choice{
		{Order: 3, Text: "c"},
		{Order: 1, Text: "right"},
		{Order: 2, Text: "b"},
	}}
	s := loadedSession(t, []vocab.PracticeQuestion{q})
	if !answer(t, s, 0) {
		t.Fatalf("first choice in display order should be the answer")
	}
}

func TestEmptyAndFailedLoads(t *testing.T) {
	s := NewPracticeSession(practicePair)
	s.Load(PracticeLoaded{SessionID: s.ID()})
	if s.State() != PracticeEmpty {
		t.Fatalf("expected empty for zero questions, got %v", s.State())
	}

	failed := NewPracticeSession(practicePair)
	failed.Load(PracticeLoaded{SessionID: failed.ID(), Err: errors.New("boom")})
	if failed.State() != PracticeEmpty || failed.Err() == nil {
		t.Fatalf("expected empty with error, got %v", failed.State())
	}
	if err := failed.Present(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected no questions to present")
	}
}

func TestLoadIgnoresOtherSessions(t *testing.T) {
	s := NewPracticeSession(practicePair)
	other := NewPracticeSession(practicePair)
	if s.ID() == other.ID() {
		t.Fatalf("session ids must differ")
	}
	if err := s.Load(PracticeLoaded{SessionID: other.ID(), Questions: threeQuestions()}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected foreign result to be rejected, got %v", err)
	}
	if s.State() != PracticeLoading {
		t.Fatalf("expected still loading, got %v", s.State())
	}
}

func TestLoadPracticeFromCatalog(t *testing.T) {
	srv, client := newCatalog(t)
	srv.SetPractice(1, "toefl", threeQuestions())

	s := NewPracticeSession(practicePair)
	msg := LoadPractice(context.Background(), client, s.ID(), s.Selection())
	if err := s.Load(msg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Total() != 3 {
		t.Fatalf("expected 3 questions, got %d", s.Total())
	}

	missing := NewPracticeSession(vocab.Selection{Part: vocab.PartOf(2), Topic: vocab.TopicOf("gept")})
	missing.Load(LoadPractice(context.Background(), client, missing.ID(), missing.Selection()))
	if missing.State() != PracticeEmpty || missing.Err() != nil {
		t.Fatalf("expected 404 to render as empty without error, got %v/%v", missing.State(), missing.Err())
	}

	srv.Fail(catalogtest.RoutePractice, 1)
	failed := NewPracticeSession(practicePair)
	failed.Load(LoadPractice(context.Background(), client, failed.ID(), failed.Selection()))
	if failed.State() != PracticeEmpty || failed.Err() == nil {
		t.Fatalf("expected server failure to keep its error, got %v/%v", failed.State(), failed.Err())
	}
	if srv.Hits(catalogtest.RoutePractice) != 3 {
		t.Fatalf("expected three practice requests")
	}
}
