package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/backend"
	"github.com/ntustvocab/vocabterm/internal/catalog"
	"github.com/ntustvocab/vocabterm/internal/logging"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
	"github.com/ntustvocab/vocabterm/internal/menu"
	"github.com/ntustvocab/vocabterm/internal/prefs"
	"github.com/ntustvocab/vocabterm/internal/theme"
	"github.com/ntustvocab/vocabterm/internal/ui"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

// MemoryPrefs selects a preference store that is discarded on exit.
const MemoryPrefs = "memory"

// Config describes user-provided application options.
type Config struct {
	APIURL       string
	Defaults     vocab.Selection
	PrefsPath    string
	Layout       menu.Layout
	Theme        theme.Name
	Width        int
	Height       int
	// TermWidth and TermHeight are the terminal size seen at startup.
	TermWidth    int
	TermHeight   int
	ShowFooter   bool
	Verbose      bool
	Practice     bool
	PollInterval time.Duration
	Timeout      time.Duration
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	client, err := catalog.New(cfg.APIURL, catalog.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	if err != nil {
		return fmt.Errorf("catalog client: %w", err)
	}
	store, closeStore, err := OpenPrefs(cfg.PrefsPath)
	if err != nil {
		return err
	}
	defer closeStore()

	var watcher *backend.Watcher
	if cfg.PollInterval > 0 {
		watcher = backend.NewWatcher(client, cfg.PollInterval, cfg.Timeout)
		defer watcher.Stop()
	}
	model := ui.NewModel(ui.Options{
		Catalog:       client,
		Prefs:         store,
		Defaults:      cfg.Defaults,
		Layout:        cfg.Layout,
		Theme:         cfg.Theme,
		Width:         cfg.Width,
		Height:        cfg.Height,
		InitialWidth:  cfg.TermWidth,
		InitialHeight: cfg.TermHeight,
		ShowFooter:    cfg.ShowFooter,
		Verbose:       cfg.Verbose,
		Watcher:       watcher,
		FetchTimeout:  cfg.Timeout,
		StartPractice: cfg.Practice,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	events.App.Exit(err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// OpenPrefs opens the preference store at path. An empty path uses the
// per-user config directory; MemoryPrefs keeps nothing on disk.
func OpenPrefs(path string) (prefs.Store, func(), error) {
	if path == MemoryPrefs {
		return prefs.NewMemory(), func() {}, nil
	}
	if path == "" {
		resolved, err := DefaultPrefsPath()
		if err != nil {
			// no config dir: run without persistence
			logging.Error(err)
			return prefs.NewMemory(), func() {}, nil
		}
		path = resolved
	}
	db, err := prefs.OpenSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open preferences: %w", err)
	}
	return db, func() {
		if err := db.Close(); err != nil {
			logging.Error(err)
		}
	}, nil
}

// DefaultPrefsPath is vocabterm/prefs.db under the user config directory.
func DefaultPrefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "vocabterm", "prefs.db"), nil
}
