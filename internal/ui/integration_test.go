package ui

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ntustvocab/vocabterm/internal/backend"
	"github.com/ntustvocab/vocabterm/internal/catalog"
	"github.com/ntustvocab/vocabterm/internal/catalog/catalogtest"
	"github.com/ntustvocab/vocabterm/internal/logging"
	"github.com/ntustvocab/vocabterm/internal/menu"
	"github.com/ntustvocab/vocabterm/internal/prefs"
	"github.com/ntustvocab/vocabterm/internal/state"
	"github.com/ntustvocab/vocabterm/internal/theme"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

func TestSelectTopicThenPartReconciles(t *testing.T) {
	store := prefs.NewMemory()
	srv, h := startHarness(t, Options{Prefs: store, Width: 100, Height: 30})

	// topics for part 1: all, toefl, pvqc-ict; the cursor starts on pvqc-ict
	h.Key("shift+tab")
	h.Key("up")
	h.Key("enter")

	m := h.Model()
	if len(m.stack) != 1 {
		t.Fatalf("expected dropdown closed after selecting, stack=%d", len(m.stack))
	}
	if got := m.Selector().Pending(); got.Topic != vocab.TopicOf("toefl") {
		t.Fatalf("expected toefl selected, got %s", got)
	}
	if len(m.wordsLevel().Items) != 3 {
		t.Fatalf("expected 3 toefl words, got %d", len(m.wordsLevel().Items))
	}
	if srv.Hits(catalogtest.RouteParts) != 2 || srv.Hits(catalogtest.RouteTopics) != 1 {
		t.Fatalf("expected only the part catalog to be refetched, parts=%d topics=%d",
			srv.Hits(catalogtest.RouteParts), srv.Hits(catalogtest.RouteTopics))
	}
	if v, _ := store.Get(prefs.KeyLastTopic); v != "toefl" {
		t.Fatalf("expected lastTopic persisted, got %q", v)
	}
	if !reflect.DeepEqual(m.Selector().PartOptions(), []string{"all", "1", "2"}) {
		t.Fatalf("unexpected part options %v", m.Selector().PartOptions())
	}

	h.Key("tab")
	h.Type("2")
	h.Key("enter")
	if got := m.Selector().Pending(); got.Part != vocab.PartOf(2) {
		t.Fatalf("expected part 2 selected, got %s", got)
	}
	if v, _ := store.Get(prefs.KeyLastPart); v != "2" {
		t.Fatalf("expected lastPart persisted, got %q", v)
	}
	view := plainView(h)
	if !strings.Contains(view, "Part 2 → TOEFL · 1 word") || !strings.Contains(view, "lessen") {
		t.Fatalf("unexpected view:\n%s", view)
	}
	queries := srv.Queries(catalogtest.RouteWords)
	if queries[len(queries)-1] != "part=2&topic=toefl" {
		t.Fatalf("unexpected last words query %q", queries[len(queries)-1])
	}
}

func TestReselectingCurrentValueSkipsFetch(t *testing.T) {
	srv, h := startHarness(t, Options{})
	h.Key("tab")
	h.Key("enter") // cursor is parked on Part 1
	if srv.Hits(catalogtest.RouteWords) != 1 {
		t.Fatalf("expected no refetch for the applied part, got %d", srv.Hits(catalogtest.RouteWords))
	}
	if h.Model().Selector().Status() != state.StatusIdle {
		t.Fatalf("expected idle, got %s", h.Model().Selector().Status())
	}
}

func TestStaleResultIsDropped(t *testing.T) {
	_, client := newTestServer(t)
	m := NewModel(Options{Catalog: client, Defaults: testDefaults})
	h := NewHarness(m)
	h.Start()

	first, _ := m.Selector().SelectTopic(vocab.TopicOf("toefl"))
	second, _ := m.Selector().SelectPart(vocab.PartAll())

	h.Send(selectorResultMsg{result: state.Fetch(context.Background(), client, first)})
	if m.Selector().Status() != state.StatusLoading {
		t.Fatalf("stale result must not settle the selector, got %s", m.Selector().Status())
	}
	if len(m.wordsLevel().Items) != 2 {
		t.Fatalf("stale result must not replace words, got %d", len(m.wordsLevel().Items))
	}

	h.Send(selectorResultMsg{result: state.Fetch(context.Background(), client, second)})
	if len(m.wordsLevel().Items) != 4 {
		t.Fatalf("expected toefl words from every part, got %d", len(m.wordsLevel().Items))
	}
}

func TestFailureFallsBackToDefaults(t *testing.T) {
	store := prefs.NewMemory()
	store.Set(prefs.KeyLastPart, "2", prefs.DefaultTTL)
	store.Set(prefs.KeyLastTopic, "toefl", prefs.DefaultTTL)
	srv, h := newHarness(t, Options{Prefs: store})
	srv.Fail(catalogtest.RouteWords, 1)
	h.Start()

	m := h.Model()
	if got := m.Selector().Pending(); !got.Equal(testDefaults) {
		t.Fatalf("expected defaults after failure, got %s", got)
	}
	if m.Selector().Status() != state.StatusIdle || len(m.wordsLevel().Items) != 2 {
		t.Fatalf("expected default words loaded, status=%s words=%d", m.Selector().Status(), len(m.wordsLevel().Items))
	}
	if v, _ := store.Get(prefs.KeyLastPart); v != "1" {
		t.Fatalf("expected fallback part persisted, got %q", v)
	}
	if v, _ := store.Get(prefs.KeyLastTopic); v != "pvqc-ict" {
		t.Fatalf("expected fallback topic persisted, got %q", v)
	}
}

func TestBackendRecoveryRetriesFailedLoad(t *testing.T) {
	srv, h := newHarness(t, Options{})
	srv.Fail(catalogtest.RouteWords, 2)
	h.Start()
	if h.Model().Selector().Status() != state.StatusError {
		t.Fatalf("expected error status, got %s", h.Model().Selector().Status())
	}

	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindHeartbeat, Err: catalog.ErrFetch}})
	if srv.Hits(catalogtest.RouteWords) != 2 {
		t.Fatalf("an unhealthy heartbeat must not retry")
	}
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindHeartbeat}})
	if h.Model().Selector().Status() != state.StatusIdle {
		t.Fatalf("expected reload after recovery, got %s", h.Model().Selector().Status())
	}
	if len(h.Model().wordsLevel().Items) != 2 {
		t.Fatalf("expected words after recovery, got %d", len(h.Model().wordsLevel().Items))
	}
}

func TestLayoutToggleIsPersisted(t *testing.T) {
	store := prefs.NewMemory()
	_, h := startHarness(t, Options{Prefs: store})
	h.Key("ctrl+g")
	if h.Model().Layout() != menu.LayoutList {
		t.Fatalf("expected list layout, got %q", h.Model().Layout())
	}
	if v, _ := store.Get(prefs.KeyLayout); v != "list" {
		t.Fatalf("expected layout persisted, got %q", v)
	}

	// back to cards through the command palette: root -> layout -> Cards
	h.Key("ctrl+p")
	h.Type("layout")
	h.Key("enter")
	if h.Model().currentLevel().ID != "layout" {
		t.Fatalf("expected layout menu, got %q", h.Model().currentLevel().ID)
	}
	h.Key("home")
	h.Key("enter")
	if h.Model().Layout() != menu.LayoutGrid || len(h.Model().stack) != 1 {
		t.Fatalf("expected grid layout with menus closed, got %q/%d", h.Model().Layout(), len(h.Model().stack))
	}
	if v, _ := store.Get(prefs.KeyLayout); v != "grid" {
		t.Fatalf("expected grid persisted, got %q", v)
	}
}

func TestThemeToggleIsRemembered(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := prefs.NewMemory()
	store.SetClock(func() time.Time { return now })

	_, h := startHarness(t, Options{Prefs: store})
	if h.Model().Theme() != theme.Dark {
		t.Fatalf("expected dark by default, got %q", h.Model().Theme())
	}
	h.Key("ctrl+t")
	m := h.Model()
	if m.Theme() != theme.Light || m.styles != theme.For(theme.Light) {
		t.Fatalf("expected light styles, got %q", m.Theme())
	}
	if v, _ := store.Get(prefs.KeyTheme); v != "light" {
		t.Fatalf("expected theme persisted, got %q", v)
	}

	_, again := startHarness(t, Options{Prefs: store})
	if again.Model().Theme() != theme.Light {
		t.Fatalf("expected saved theme on the next start, got %q", again.Model().Theme())
	}

	// back to dark through the command palette: root -> theme -> Dark
	h.Key("ctrl+p")
	h.Type("theme")
	h.Key("enter")
	if h.Model().currentLevel().ID != "theme" {
		t.Fatalf("expected theme menu, got %q", h.Model().currentLevel().ID)
	}
	h.Key("home")
	h.Key("enter")
	if h.Model().Theme() != theme.Dark || len(h.Model().stack) != 1 {
		t.Fatalf("expected dark theme with menus closed, got %q/%d", h.Model().Theme(), len(h.Model().stack))
	}
	if v, _ := store.Get(prefs.KeyTheme); v != "dark" {
		t.Fatalf("expected dark persisted, got %q", v)
	}

	now = now.Add(prefs.DefaultTTL - time.Hour)
	if _, ok := store.Get(prefs.KeyTheme); !ok {
		t.Fatal("theme should last for a year")
	}
	now = now.Add(2 * time.Hour)
	if _, ok := store.Get(prefs.KeyTheme); ok {
		t.Fatal("theme should expire after a year")
	}
}

func TestThemeOptionOverridesSavedTheme(t *testing.T) {
	store := prefs.NewMemory()
	store.Set(prefs.KeyTheme, "light", prefs.DefaultTTL)
	_, h := startHarness(t, Options{Prefs: store, Theme: theme.Dark})
	if h.Model().Theme() != theme.Dark {
		t.Fatalf("expected option to win, got %q", h.Model().Theme())
	}

	store.Set(prefs.KeyTheme, "neon", prefs.DefaultTTL)
	_, h = startHarness(t, Options{Prefs: store})
	if h.Model().Theme() != theme.Dark {
		t.Fatalf("expected unknown saved theme to fall back to dark, got %q", h.Model().Theme())
	}
}

func practiceQuestions() []vocab.PracticeQuestion {
	mk := func(id, answer string, choices ...string) vocab.PracticeQuestion {
		q := vocab.PracticeQuestion{ID: id, Question: "Which word means " + id + "?", Answer: answer}
		for i, c := range choices {
			q.Choices = append(q.Choices, vocab.Choice{Order: i + 1, Text: c})
		}
		return q
	}
	return []vocab.PracticeQuestion{
		mk("頻寬", "bandwidth", "bandwidth", "protocol", "latency"),
		mk("協定", "protocol", "router", "protocol", "switch"),
		mk("延遲", "latency", "jitter", "packet", "latency"),
	}
}

func TestPracticeFlowScoresAndRestarts(t *testing.T) {
	srv, h := startHarness(t, Options{Width: 80, Height: 30})
	srv.SetPractice(1, "pvqc-ict", practiceQuestions())

	h.Key("ctrl+r")
	m := h.Model()
	if m.Mode() != ModePractice || m.Practice() == nil {
		t.Fatalf("expected practice mode")
	}
	view := plainView(h)
	for _, want := range []string{"Practice · Part 1 → PVQC ICT", "Question 1 of 3", "Errors: 0 / 3", "Which word means 頻寬?"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}

	h.Key("1")
	h.Key("2") // ignored: already answered
	if m.Practice().Chosen() != 0 || m.Practice().Errors() != 0 {
		t.Fatalf("second key must not change the answer")
	}
	h.Key("n")
	h.Key("1")
	view = plainView(h)
	if !strings.Contains(view, "router ✗") || !strings.Contains(view, "protocol ✓") {
		t.Fatalf("expected marks on the wrong and right choices, got:\n%s", view)
	}
	if !strings.Contains(view, "Errors: 1 / 3") {
		t.Fatalf("expected one error, got:\n%s", view)
	}
	h.Key("n")
	h.Key("down")
	h.Key("down")
	h.Key("enter")
	h.Key("r")

	if m.Practice().State() != state.PracticeCompleted {
		t.Fatalf("expected completed, got %s", m.Practice().State())
	}
	view = plainView(h)
	if !strings.Contains(view, "Accuracy: 66.7%") {
		t.Fatalf("expected accuracy, got:\n%s", view)
	}

	before := m.Practice().ID()
	h.Key("enter")
	if m.Practice().ID() == before || m.Practice().Errors() != 0 || m.Practice().State() != state.PracticeAnswering {
		t.Fatalf("expected a fresh session after restart")
	}
	if srv.Hits(catalogtest.RoutePractice) != 2 {
		t.Fatalf("expected the bank to be fetched again, got %d", srv.Hits(catalogtest.RoutePractice))
	}

	h.Key("esc")
	if m.Mode() != ModeWords || m.Practice() != nil {
		t.Fatalf("expected esc to return to words")
	}
}

func TestPracticeRequiresSpecificPair(t *testing.T) {
	store := prefs.NewMemory()
	store.Set(prefs.KeyLastTopic, "all", prefs.DefaultTTL)
	_, h := startHarness(t, Options{Prefs: store})

	h.Key("ctrl+r")
	if h.Model().Mode() != ModeWords {
		t.Fatalf("expected to stay on words")
	}
	if view := plainView(h); !strings.Contains(view, "choose a specific part and topic") {
		t.Fatalf("expected explanation, got:\n%s", view)
	}
}

func TestPracticeWithoutQuestionsIsEmpty(t *testing.T) {
	_, h := startHarness(t, Options{})
	h.Key("ctrl+r")
	if h.Model().Practice().State() != state.PracticeEmpty {
		t.Fatalf("expected empty session, got %s", h.Model().Practice().State())
	}
	view := plainView(h)
	if !strings.Contains(view, "No practice questions for this part and topic.") {
		t.Fatalf("expected empty message, got:\n%s", view)
	}
	if strings.Contains(view, "Could not load") {
		t.Fatalf("a missing bank is not a failure, got:\n%s", view)
	}
	h.Key("enter")
	if h.Model().Mode() != ModeWords {
		t.Fatalf("expected enter to leave an empty session")
	}
}

func TestStartPracticeOption(t *testing.T) {
	srv, h := newHarness(t, Options{StartPractice: true})
	srv.SetPractice(1, "pvqc-ict", practiceQuestions())
	h.Start()
	m := h.Model()
	if m.Mode() != ModePractice || m.Practice().Total() != 3 {
		t.Fatalf("expected practice to start after the first load")
	}
}

func TestResultsWaitForLastAnswer(t *testing.T) {
	trace := filepath.Join(t.TempDir(), "trace.log")
	logging.Configure(trace)
	logging.SetTraceEnabled(true)
	t.Cleanup(func() {
		logging.SetTraceEnabled(false)
		logging.Configure("")
	})

	srv, h := startHarness(t, Options{Width: 80, Height: 30})
	srv.SetPractice(1, "pvqc-ict", practiceQuestions())
	h.Key("ctrl+r")
	m := h.Model()

	h.Key("r")
	if m.Practice().State() != state.PracticeAnswering {
		t.Fatalf("results before answering must be ignored, got %s", m.Practice().State())
	}
	h.Key("1")
	h.Key("r")
	if m.Practice().State() != state.PracticeAnswered || m.Practice().Index() != 0 {
		t.Fatalf("expected to stay on the answered first question, got %s at %d", m.Practice().State(), m.Practice().Index())
	}
	if view := plainView(h); !strings.Contains(view, "Results are ready after question 3.") {
		t.Fatalf("expected a hint about results, got:\n%s", view)
	}

	data, err := os.ReadFile(trace)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !strings.Contains(string(data), `"action":"finish on r"`) {
		t.Fatalf("expected the refused finish in the trace, got:\n%s", data)
	}
}
