package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
	"github.com/ntustvocab/vocabterm/internal/menu"
	"github.com/ntustvocab/vocabterm/internal/state"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

func (m *Model) handlePracticeMsg(msg tea.Msg) tea.Cmd {
	start, ok := msg.(menu.PracticeMsg)
	if !ok {
		return nil
	}
	m.finishPending()
	m.closeDropdowns("practice")
	return m.beginPractice(start.Selection)
}

// beginPractice replaces any running session with a fresh one for sel.
func (m *Model) beginPractice(sel vocab.Selection) tea.Cmd {
	if !sel.Practicable() {
		m.errMsg = "Choose a specific part and topic to practice."
		return nil
	}
	m.practice = state.NewPracticeSession(sel)
	m.practiceCursor = 0
	m.errMsg = ""
	m.forceClearInfo()
	m.setMode(ModePractice)
	return m.practiceLoadCmd(m.practice)
}

func (m *Model) handlePracticeLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(state.PracticeLoaded)
	if !ok || m.practice == nil {
		return nil
	}
	if err := m.practice.Load(loaded); err != nil {
		events.Practice.Ignored(m.practice.ID(), "load", err)
		return nil
	}
	if m.practice.State() == state.PracticeReady {
		m.presentQuestion("load")
	}
	return nil
}

func (m *Model) exitPractice() {
	m.practice = nil
	m.practiceCursor = 0
	m.setMode(ModeWords)
}

func (m *Model) handlePracticeKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.exitPractice()
		return nil
	}
	s := m.practice
	if s == nil {
		return nil
	}
	switch s.State() {
	case state.PracticeAnswering:
		q, _ := s.Current()
		switch key {
		case "up", "k":
			m.practiceCursor = wrapIndex(m.practiceCursor-1, len(q.Choices))
		case "down", "j":
			m.practiceCursor = wrapIndex(m.practiceCursor+1, len(q.Choices))
		case "enter", " ":
			m.submitChoice(m.practiceCursor)
		default:
			if idx, ok := choiceKey(key); ok {
				m.submitChoice(idx)
			}
		}
	case state.PracticeAnswered:
		switch key {
		case "n":
			m.nextQuestion()
		case "r":
			m.finishPractice(key)
		case "enter":
			if s.IsLast() {
				m.finishPractice(key)
			} else {
				m.nextQuestion()
			}
		}
	case state.PracticeCompleted:
		if key == "enter" {
			return m.beginPractice(s.Selection())
		}
	case state.PracticeEmpty:
		if key == "enter" {
			m.exitPractice()
		}
	}
	return nil
}

func (m *Model) submitChoice(idx int) {
	if _, err := m.practice.SubmitChoice(idx); err != nil {
		events.Practice.Ignored(m.practice.ID(), "submit", err)
		return
	}
	m.practiceCursor = idx
}

func (m *Model) nextQuestion() {
	if err := m.practice.Advance(); err != nil {
		events.Practice.Ignored(m.practice.ID(), "advance", err)
		return
	}
	m.presentQuestion("advance")
}

func (m *Model) presentQuestion(cause string) {
	if err := m.practice.Present(); err != nil {
		events.Practice.Ignored(m.practice.ID(), "present after "+cause, err)
		return
	}
	m.practiceCursor = 0
}

// finishPractice shows the results once the last question is answered.
func (m *Model) finishPractice(key string) {
	s := m.practice
	if err := s.Finish(); err != nil {
		events.Practice.Ignored(s.ID(), "finish on "+key, err)
		if s.State() == state.PracticeAnswered {
			m.setInfo(fmt.Sprintf("Results are ready after question %d.", s.Total()))
		}
	}
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
