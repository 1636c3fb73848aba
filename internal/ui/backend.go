package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/backend"
	"github.com/ntustvocab/vocabterm/internal/state"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent records the heartbeat. When the backend comes back after
// a terminal load failure the current selection is fetched again.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	prev := m.health.Health()
	res := m.dispatcher.Handle(evt)
	if !res.HealthChanged {
		return nil
	}
	recovered := prev != state.HealthUp && prev != state.HealthUnknown && m.health.Health() == state.HealthUp
	if recovered && m.selector.Status() == state.StatusError {
		return m.reload()
	}
	return nil
}

// backendIssue returns the status line for an unhealthy backend.
func (m *Model) backendIssue() (bool, string) {
	switch m.health.Health() {
	case state.HealthNotStarted:
		return true, "Backend not started"
	case state.HealthUnreachable:
		return true, "Cannot reach backend"
	default:
		return false, ""
	}
}
