package vocab

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedQuestion marks a question whose choices do not contain exactly
// one copy of the answer.
var ErrMalformedQuestion = errors.New("vocab: malformed practice question")

// Choice is one option of a practice question.
type Choice struct {
	Order int    `json:"choice_order"`
	Text  string `json:"choice_text"`
}

// PracticeQuestion is a multiple-choice question. Hash is carried through
// untouched for tracking.
type PracticeQuestion struct {
	ID       string   `json:"entry_id"`
	Question string   `json:"question"`
	Hash     int64    `json:"question_hash"`
	Answer   string   `json:"answer"`
	Choices  []Choice `json:"choices"`
}

// SortChoices orders choices by their display order, keeping ties stable.
func (q *PracticeQuestion) SortChoices() {
	sort.SliceStable(q.Choices, func(i, j int) bool {
		return q.Choices[i].Order < q.Choices[j].Order
	})
}

// Validate checks that exactly one choice text equals the answer.
func (q PracticeQuestion) Validate() error {
	matches := 0
	for _, c := range q.Choices {
		if c.Text == q.Answer {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("%w: question %q has %d choices matching the answer", ErrMalformedQuestion, q.ID, matches)
	}
	return nil
}

// IsCorrect reports whether choice idx matches the answer.
func (q PracticeQuestion) IsCorrect(idx int) bool {
	if idx < 0 || idx >= len(q.Choices) {
		return false
	}
	return q.Choices[idx].Text == q.Answer
}

// CorrectIndex returns the index of the answer choice, or -1.
func (q PracticeQuestion) CorrectIndex() int {
	for i, c := range q.Choices {
		if c.Text == q.Answer {
			return i
		}
	}
	return -1
}
