package ui

import (
	"fmt"

	"github.com/ntustvocab/vocabterm/internal/state"
)

const (
	practiceFooter = "1-9/enter answer  ↑/↓ choose  n next  r results  esc back"
	resultsFooter  = "enter restart  esc back"
)

func (m *Model) viewPractice() string {
	s := m.practice
	part, topic := selectionLabels(m.selector.Pending())
	if s != nil {
		part, topic = selectionLabels(s.Selection())
	}
	lines := []styledLine{{text: "Practice · " + part + menuHeaderSeparator + topic, style: m.styles.Header}}
	footer := practiceFooter
	switch {
	case s == nil || s.State() == state.PracticeLoading:
		lines = append(lines, styledLine{text: "Loading questions…", style: m.styles.Loading})
	case s.State() == state.PracticeEmpty:
		if s.Err() != nil {
			lines = append(lines, styledLine{text: "Could not load practice questions.", style: m.styles.Error})
		}
		lines = append(lines, styledLine{text: "No practice questions for this part and topic.", style: m.styles.Info})
		footer = "enter/esc back"
	case s.State() == state.PracticeCompleted:
		lines = append(lines, m.resultLines(s)...)
		footer = resultsFooter
	default:
		lines = append(lines, m.questionLines(s)...)
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: m.styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footer, style: m.styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) questionLines(s *state.PracticeSession) []styledLine {
	q, ok := s.Current()
	if !ok {
		return nil
	}
	progress := fmt.Sprintf("Question %d of %d", s.Index()+1, s.Total())
	score := fmt.Sprintf("Errors: %d / %d", s.Errors(), s.Total())
	lines := []styledLine{
		{text: progress + "    " + score, style: m.styles.Progress},
		{},
	}
	for _, text := range wrap(q.Question, m.wrapWidth()) {
		lines = append(lines, styledLine{text: text, style: m.styles.Question})
	}
	lines = append(lines, styledLine{})
	answered := s.State() == state.PracticeAnswered
	correct := q.CorrectIndex()
	for i, choice := range q.Choices {
		pointer := "  "
		style := m.styles.Choice
		if !answered && i == m.practiceCursor {
			pointer = "> "
			style = m.styles.SelectedChoice
		}
		mark := ""
		if answered {
			switch {
			case i == correct:
				mark = " ✓"
				style = m.styles.Correct
			case i == s.Chosen():
				mark = " ✗"
				style = m.styles.Wrong
			}
		}
		lines = append(lines, styledLine{text: fmt.Sprintf("%s%d. %s%s", pointer, i+1, choice.Text, mark), style: style})
	}
	if answered {
		next := "n for the next question"
		if s.IsLast() {
			next = "r for your results"
		}
		verdict := "Correct!"
		if s.Chosen() != correct {
			verdict = "Not quite."
		}
		lines = append(lines, styledLine{}, styledLine{text: verdict + " Press " + next + ".", style: m.styles.Info})
	}
	return lines
}

func (m *Model) resultLines(s *state.PracticeSession) []styledLine {
	lines := []styledLine{
		{text: "Results", style: m.styles.Question},
		{},
		{text: fmt.Sprintf("Accuracy: %s%%", s.Accuracy()), style: m.styles.Score},
		{text: fmt.Sprintf("Errors: %d / %d", s.Errors(), s.Total()), style: m.styles.Progress},
	}
	if n := s.Rejected(); n > 0 {
		noun := "questions were"
		if n == 1 {
			noun = "question was"
		}
		lines = append(lines, styledLine{text: fmt.Sprintf("%d malformed %s skipped.", n, noun), style: m.styles.Info})
	}
	return lines
}

func (m *Model) wrapWidth() int {
	if m.width <= 0 {
		return 0
	}
	return m.width
}
