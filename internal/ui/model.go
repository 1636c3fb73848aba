package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ntustvocab/vocabterm/internal/backend"
	"github.com/ntustvocab/vocabterm/internal/data/dispatcher"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
	"github.com/ntustvocab/vocabterm/internal/menu"
	"github.com/ntustvocab/vocabterm/internal/prefs"
	"github.com/ntustvocab/vocabterm/internal/state"
	"github.com/ntustvocab/vocabterm/internal/theme"
	"github.com/ntustvocab/vocabterm/internal/ui/command"
	uistate "github.com/ntustvocab/vocabterm/internal/ui/state"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

type level = uistate.Level

type Mode int

const (
	ModeWords Mode = iota
	ModePractice
)

func (m Mode) String() string {
	if m == ModePractice {
		return "practice"
	}
	return "words"
}

const (
	menuHeaderSeparator = " → "
	wordsLevelID        = "words"
	defaultFetchTimeout = 15 * time.Second
)

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Catalog is everything the UI fetches: the word list, both option
// catalogs and practice banks.
type Catalog interface {
	state.Catalog
	state.PracticeSource
}

// Options configures a Model.
type Options struct {
	Catalog  Catalog
	Prefs    prefs.Store
	Defaults vocab.Selection

	// Layout overrides the stored layout when set.
	Layout        menu.Layout
	// Theme overrides the stored colour scheme when set.
	Theme         theme.Name
	Width         int
	Height        int
	// InitialWidth and InitialHeight size the first frame when Width and
	// Height are unset. Window resizes replace them.
	InitialWidth  int
	InitialHeight int
	ShowFooter    bool
	Verbose       bool
	Watcher       *backend.Watcher
	FetchTimeout  time.Duration
	StartPractice bool
}

// Model implements the Bubble Tea model for the vocabulary browser.
type Model struct {
	stack             []*level
	loading           bool
	pendingID         string
	pendingLabel      string
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	health            state.HealthStore
	showFooter        bool
	verbose           bool
	filterCursor      cursor.Model
	filterCursorDirty bool
	cursorFocused     bool

	handlers map[reflect.Type]msgHandler

	registry     *menu.Registry
	bus          *command.Bus
	mode         Mode
	catalog      Catalog
	prefs        prefs.Store
	selector     *state.Selector
	dispatcher   *dispatcher.Dispatcher
	fetchTimeout time.Duration
	layout       menu.Layout
	theme        theme.Name
	styles       *theme.Styles
	detailScroll int

	practice       *state.PracticeSession
	practiceCursor int
	startPractice  bool
}

// NewModel builds the word view for opts. Nothing is fetched until Init.
func NewModel(opts Options) *Model {
	registry := menu.BuildRegistry()
	health := state.NewHealthStore()
	wordsNode, _ := registry.Find(wordsLevelID)
	root := newLevel(wordsLevelID, "Words", nil, wordsNode)
	m := &Model{
		stack:         []*level{root},
		registry:      registry,
		bus:           command.New(),
		backend:       opts.Watcher,
		health:        health,
		showFooter:    opts.ShowFooter,
		verbose:       opts.Verbose,
		mode:          ModeWords,
		catalog:       opts.Catalog,
		prefs:         opts.Prefs,
		selector:      state.NewSelector(opts.Prefs, opts.Defaults),
		dispatcher:    dispatcher.New(health),
		fetchTimeout:  opts.FetchTimeout,
		layout:        resolveLayout(opts.Layout, opts.Prefs),
		theme:         resolveTheme(opts.Theme, opts.Prefs),
		startPractice: opts.StartPractice,
	}
	if m.fetchTimeout <= 0 {
		m.fetchTimeout = defaultFetchTimeout
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if !m.fixedWidth && opts.InitialWidth > 0 {
		m.width = opts.InitialWidth
	}
	if !m.fixedHeight && opts.InitialHeight > 0 {
		m.height = opts.InitialHeight
	}
	m.styles = theme.For(m.theme)
	c := cursor.New()
	c.SetChar(" ")
	m.filterCursor = c
	m.styleFilterCursor()
	m.registerHandlers()
	return m
}

func resolveLayout(requested menu.Layout, store prefs.Store) menu.Layout {
	if requested != "" {
		return requested
	}
	if store != nil {
		if raw, ok := store.Get(prefs.KeyLayout); ok {
			if layout, err := menu.ParseLayout(raw); err == nil {
				return layout
			}
		}
	}
	return menu.LayoutGrid
}

func resolveTheme(requested theme.Name, store prefs.Store) theme.Name {
	if requested != "" {
		return requested
	}
	if store != nil {
		if raw, ok := store.Get(prefs.KeyTheme); ok {
			if name, err := theme.Parse(raw); err == nil {
				return name
			}
		}
	}
	return theme.Dark
}

func (m *Model) styleFilterCursor() {
	if m.styles.Cursor != nil {
		m.filterCursor.Style = m.styles.Cursor.Copy()
	}
	if m.styles.Filter != nil {
		m.filterCursor.TextStyle = m.styles.Filter.Copy()
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startCmd()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		m.cursorFocused = true
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):         m.handleMouseMsg,
		reflect.TypeOf(categoryLoadedMsg{}):    m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}):    m.handleActionResultMsg,
		reflect.TypeOf(menu.SelectPartMsg{}):   m.handleSelectPartMsg,
		reflect.TypeOf(menu.SelectTopicMsg{}):  m.handleSelectTopicMsg,
		reflect.TypeOf(menu.LayoutMsg{}):       m.handleLayoutMsg,
		reflect.TypeOf(menu.ThemeMsg{}):        m.handleThemeMsg,
		reflect.TypeOf(menu.PracticeMsg{}):     m.handlePracticeMsg,
		reflect.TypeOf(selectorResultMsg{}):    m.handleSelectorResultMsg,
		reflect.TypeOf(state.PracticeLoaded{}): m.handlePracticeLoadedMsg,
		reflect.TypeOf(backendEventMsg{}):      m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):       m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if m.cursorFocused {
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) setMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	events.UI.Mode(mode.String())
}

// Selector exposes the Part/Topic state machine.
func (m *Model) Selector() *state.Selector {
	return m.selector
}

// Practice returns the running practice session, if any.
func (m *Model) Practice() *state.PracticeSession {
	return m.practice
}

// Mode reports which view is active.
func (m *Model) Mode() Mode {
	return m.mode
}

// Layout reports how words are arranged.
func (m *Model) Layout() menu.Layout {
	return m.layout
}

// Theme reports the active colour scheme.
func (m *Model) Theme() theme.Name {
	return m.theme
}

// Health reports the last backend heartbeat classification.
func (m *Model) Health() state.HealthStore {
	return m.health
}
