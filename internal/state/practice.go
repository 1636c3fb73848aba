package state

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/ntustvocab/vocabterm/internal/catalog"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

// ErrInvalidTransition is returned when an operation does not apply to the
// session's current state.
var ErrInvalidTransition = errors.New("practice: invalid transition")

// PracticeSource supplies question banks.
type PracticeSource interface {
	Practice(ctx context.Context, part vocab.Part, topic vocab.Topic) ([]vocab.PracticeQuestion, error)
}

// PracticeState is the quiz lifecycle.
type PracticeState int

const (
	PracticeLoading PracticeState = iota
	PracticeReady
	PracticeAnswering
	PracticeAnswered
	PracticeCompleted
	PracticeEmpty
)

func (s PracticeState) String() string {
	switch s {
	case PracticeReady:
		return "ready"
	case PracticeAnswering:
		return "answering"
	case PracticeAnswered:
		return "answered"
	case PracticeCompleted:
		return "completed"
	case PracticeEmpty:
		return "empty"
	default:
		return "loading"
	}
}

// PracticeLoaded carries a fetched question bank back to its session.
type PracticeLoaded struct {
	SessionID string
	Questions []vocab.PracticeQuestion
	Err       error
}

// LoadPractice fetches the question bank for sel on behalf of session id. A
// 404 is the API's way of saying the pair has no questions.
func LoadPractice(ctx context.Context, src PracticeSource, id string, sel vocab.Selection) PracticeLoaded {
	events.Practice.Load(id, sel.String())
	questions, err := src.Practice(ctx, sel.Part, sel.Topic)
	if catalog.StatusCode(err) == http.StatusNotFound {
		return PracticeLoaded{SessionID: id}
	}
	return PracticeLoaded{SessionID: id, Questions: questions, Err: err}
}

// PracticeSession is a single linear pass over a question bank. Errors only
// ever grow and each question is scored once.
type PracticeSession struct {
	id        string
	selection vocab.Selection

	state     PracticeState
	questions []vocab.PracticeQuestion
	index     int
	chosen    int
	errors    int
	rejected  int
	accuracy  string
	err       error
}

// NewPracticeSession returns a session waiting for its questions.
func NewPracticeSession(sel vocab.Selection) *PracticeSession {
	return &PracticeSession{
		id:        uuid.NewString(),
		selection: sel,
		state:     PracticeLoading,
		chosen:    -1,
	}
}

// Load ingests a fetched bank. Malformed questions are dropped; a failed
// fetch or an empty bank leaves the session in PracticeEmpty.
func (s *PracticeSession) Load(msg PracticeLoaded) error {
	if msg.SessionID != s.id {
		return fmt.Errorf("%w: result for session %s", ErrInvalidTransition, msg.SessionID)
	}
	if s.state != PracticeLoading {
		return s.reject("load")
	}
	if msg.Err != nil {
		s.err = msg.Err
		s.state = PracticeEmpty
		events.Practice.Loaded(s.id, 0, 0, msg.Err)
		return nil
	}
	valid := make([]vocab.PracticeQuestion, 0, len(msg.Questions))
	for _, q := range msg.Questions {
		q.Choices = append([]vocab.Choice(nil), q.Choices...)
		q.SortChoices()
		if err := q.Validate(); err != nil {
			s.rejected++
			continue
		}
		valid = append(valid, q)
	}
	s.questions = valid
	if len(valid) == 0 {
		s.state = PracticeEmpty
	} else {
		s.state = PracticeReady
	}
	events.Practice.Loaded(s.id, len(valid), s.rejected, nil)
	return nil
}

// Present moves a ready question into Answering.
func (s *PracticeSession) Present() error {
	if s.state != PracticeReady {
		return s.reject("present")
	}
	s.state = PracticeAnswering
	return nil
}

// SubmitChoice scores choice idx of the current question. Only the first
// submission per question counts.
func (s *PracticeSession) SubmitChoice(idx int) (bool, error) {
	if s.state != PracticeAnswering {
		return false, s.reject("submit")
	}
	q := s.questions[s.index]
	if idx < 0 || idx >= len(q.Choices) {
		return false, fmt.Errorf("%w: choice %d out of range", ErrInvalidTransition, idx)
	}
	s.chosen = idx
	correct := q.IsCorrect(idx)
	if !correct {
		s.errors++
	}
	s.state = PracticeAnswered
	events.Practice.Answer(s.id, s.index, idx, correct)
	return correct, nil
}

// Advance moves to the next question.
func (s *PracticeSession) Advance() error {
	if s.state != PracticeAnswered || s.IsLast() {
		return s.reject("advance")
	}
	s.index++
	s.chosen = -1
	s.state = PracticeReady
	return nil
}

// Finish completes the session after the last question has been answered
// and freezes the accuracy.
func (s *PracticeSession) Finish() error {
	if s.state != PracticeAnswered || !s.IsLast() {
		return s.reject("finish")
	}
	total := len(s.questions)
	pct := float64(total-s.errors) / float64(total) * 100
	s.accuracy = strconv.FormatFloat(pct, 'f', 1, 64)
	s.state = PracticeCompleted
	events.Practice.Finish(s.id, s.errors, total, s.accuracy)
	return nil
}

func (s *PracticeSession) reject(op string) error {
	events.Practice.Rejected(s.id, op, s.state.String())
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, op, s.state)
}

func (s *PracticeSession) ID() string {
	return s.id
}

func (s *PracticeSession) Selection() vocab.Selection {
	return s.selection
}

func (s *PracticeSession) State() PracticeState {
	return s.state
}

// Index is the zero-based position of the current question.
func (s *PracticeSession) Index() int {
	return s.index
}

func (s *PracticeSession) Total() int {
	return len(s.questions)
}

// Current returns the question at Index.
func (s *PracticeSession) Current() (vocab.PracticeQuestion, bool) {
	if s.index < 0 || s.index >= len(s.questions) {
		return vocab.PracticeQuestion{}, false
	}
	return s.questions[s.index], true
}

// Chosen is the submitted choice index for the current question, or -1.
func (s *PracticeSession) Chosen() int {
	return s.chosen
}

func (s *PracticeSession) Errors() int {
	return s.errors
}

// Rejected counts questions dropped at load time.
func (s *PracticeSession) Rejected() int {
	return s.rejected
}

// Accuracy is the percentage correct with one decimal, set by Finish.
func (s *PracticeSession) Accuracy() string {
	return s.accuracy
}

// Err is the fetch failure behind PracticeEmpty, if any.
func (s *PracticeSession) Err() error {
	return s.err
}

func (s *PracticeSession) IsLast() bool {
	return s.index == len(s.questions)-1
}
