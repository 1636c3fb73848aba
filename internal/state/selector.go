package state

import (
	"context"
	"strconv"

	"github.com/ntustvocab/vocabterm/internal/logging"
	"github.com/ntustvocab/vocabterm/internal/logging/events"
	"github.com/ntustvocab/vocabterm/internal/prefs"
	"github.com/ntustvocab/vocabterm/internal/vocab"
	"golang.org/x/sync/errgroup"
)

// Catalog is the part of the word API the selector reconciles against.
type Catalog interface {
	Words(ctx context.Context, part vocab.Part, topic vocab.Topic) ([]vocab.WordEntry, error)
	Parts(ctx context.Context, topic vocab.Topic) ([]int, error)
	Topics(ctx context.Context, part vocab.Part) ([]string, error)
}

// Status is the selector's load state.
type Status int

const (
	StatusLoading Status = iota
	StatusIdle
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

// Request describes one reconciliation. The word list is always fetched; the
// catalogs only for the axis that changed.
type Request struct {
	Generation  uint64
	Selection   vocab.Selection
	FetchTopics bool
	FetchParts  bool
	Fallback    bool
	Initial     bool
}

// Result is the outcome of every call of a Request, delivered together.
type Result struct {
	Request Request
	Words   []vocab.WordEntry
	Parts   []int
	Topics  []string
	Err     error
}

// Selector keeps the pending Part/Topic choice consistent with the remote
// catalog. It is not safe for concurrent use; only Fetch runs off the UI
// goroutine and it touches no selector state.
type Selector struct {
	prefs    prefs.Store
	defaults vocab.Selection

	pending      vocab.Selection
	applied      vocab.Selection
	appliedKnown bool

	words  []vocab.WordEntry
	parts  []int
	topics []string

	status     Status
	err        error
	generation uint64
}

// NewSelector seeds the pending selection from store, falling back to
// defaults, and writes any missing key back. store may be nil.
func NewSelector(store prefs.Store, defaults vocab.Selection) *Selector {
	s := &Selector{
		prefs:    store,
		defaults: defaults,
		pending:  defaults,
		topics:   vocab.SortTopics(nil),
		status:   StatusLoading,
	}
	if store == nil {
		return s
	}
	if raw, ok := store.Get(prefs.KeyLastPart); ok {
		if p, err := vocab.ParsePart(raw); err == nil {
			s.pending.Part = p
		} else {
			logging.Error(err)
			s.persist(prefs.KeyLastPart, s.pending.Part.String())
		}
	} else {
		s.persist(prefs.KeyLastPart, s.pending.Part.String())
	}
	if raw, ok := store.Get(prefs.KeyLastTopic); ok {
		if t, err := vocab.ParseTopic(raw); err == nil {
			s.pending.Topic = t
		} else {
			logging.Error(err)
			s.persist(prefs.KeyLastTopic, s.pending.Topic.String())
		}
	} else {
		s.persist(prefs.KeyLastTopic, s.pending.Topic.String())
	}
	return s
}

// Start returns the first reconciliation, covering all three calls.
func (s *Selector) Start() Request {
	s.generation++
	s.status = StatusLoading
	req := Request{
		Generation:  s.generation,
		Selection:   s.pending,
		FetchTopics: true,
		FetchParts:  true,
		Initial:     true,
	}
	s.traceRequest(req)
	return req
}

// Reload re-fetches everything for the pending selection.
func (s *Selector) Reload() Request {
	s.generation++
	s.status = StatusLoading
	req := Request{
		Generation:  s.generation,
		Selection:   s.pending,
		FetchTopics: true,
		FetchParts:  true,
	}
	s.traceRequest(req)
	return req
}

// SelectPart changes the pending part. The bool is false when nothing needs
// fetching.
func (s *Selector) SelectPart(p vocab.Part) (Request, bool) {
	events.Selector.Select("part", p.String())
	s.pending.Part = p
	return s.reconcile("part", p.String())
}

// SelectTopic changes the pending topic. The bool is false when nothing needs
// fetching.
func (s *Selector) SelectTopic(t vocab.Topic) (Request, bool) {
	events.Selector.Select("topic", t.String())
	s.pending.Topic = t
	return s.reconcile("topic", t.String())
}

func (s *Selector) reconcile(axis, value string) (Request, bool) {
	if s.appliedKnown && s.pending.Equal(s.applied) {
		// drop whatever is in flight; the applied data already matches
		s.generation++
		s.status = StatusIdle
		s.err = nil
		events.Selector.NoOp(axis, value)
		return Request{}, false
	}
	s.generation++
	s.status = StatusLoading
	req := Request{
		Generation:  s.generation,
		Selection:   s.pending,
		FetchTopics: !s.appliedKnown || s.pending.Part != s.applied.Part,
		FetchParts:  !s.appliedKnown || s.pending.Topic != s.applied.Topic,
	}
	s.traceRequest(req)
	return req, true
}

// Fetch runs the calls req needs concurrently and returns once all of them
// have finished. Partial results are discarded on error.
func Fetch(ctx context.Context, cat Catalog, req Request) Result {
	var (
		words  []vocab.WordEntry
		parts  []int
		topics []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		words, err = cat.Words(gctx, req.Selection.Part, req.Selection.Topic)
		return err
	})
	if req.FetchTopics {
		g.Go(func() error {
			var err error
			topics, err = cat.Topics(gctx, req.Selection.Part)
			return err
		})
	}
	if req.FetchParts {
		g.Go(func() error {
			var err error
			parts, err = cat.Parts(gctx, req.Selection.Topic)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{Request: req, Err: err}
	}
	if words == nil {
		words = []vocab.WordEntry{}
	}
	return Result{Request: req, Words: words, Parts: parts, Topics: topics}
}

// Apply folds a Result into the selector. Results from superseded requests
// are dropped. A first failure returns the fallback request to run next.
func (s *Selector) Apply(res Result) (Request, bool) {
	req := res.Request
	if req.Generation != s.generation {
		events.Selector.Stale(req.Generation, s.generation)
		return Request{}, false
	}
	if res.Err != nil {
		return s.fail(req, res.Err)
	}

	s.words = res.Words
	if s.words == nil {
		s.words = []vocab.WordEntry{}
	}
	if req.FetchTopics {
		s.topics = vocab.SortTopics(res.Topics)
		if !req.Initial {
			s.persist(prefs.KeyLastPart, req.Selection.Part.String())
		}
	}
	if req.FetchParts {
		s.parts = vocab.SortParts(res.Parts)
		if !req.Initial {
			s.persist(prefs.KeyLastTopic, req.Selection.Topic.String())
		}
	}
	s.applied = req.Selection
	s.appliedKnown = true
	s.status = StatusIdle
	s.err = nil
	events.Selector.Applied(req.Generation, req.Selection.String(), len(s.words))
	return Request{}, false
}

func (s *Selector) fail(req Request, err error) (Request, bool) {
	if !req.Fallback {
		events.Selector.Fallback(req.Selection.String(), err)
		s.pending = s.defaults
		s.applied = s.defaults
		s.appliedKnown = false
		s.generation++
		s.status = StatusLoading
		next := Request{
			Generation:  s.generation,
			Selection:   s.defaults,
			FetchTopics: true,
			FetchParts:  true,
			Fallback:    true,
		}
		s.traceRequest(next)
		return next, true
	}
	events.Selector.Failed(req.Selection.String(), err)
	logging.Error(err)
	s.words = nil
	s.appliedKnown = false
	s.status = StatusError
	s.err = err
	return Request{}, false
}

func (s *Selector) persist(key, value string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Set(key, value, prefs.DefaultTTL); err != nil {
		logging.Error(err)
	}
}

func (s *Selector) traceRequest(req Request) {
	events.Selector.Request(req.Generation, req.Selection.String(), req.FetchTopics, req.FetchParts, req.Fallback)
}

// Pending is the user's current choice.
func (s *Selector) Pending() vocab.Selection {
	return s.pending
}

// Applied is the selection the current data was loaded for. The bool is
// false before the first load and after a failed fallback.
func (s *Selector) Applied() (vocab.Selection, bool) {
	return s.applied, s.appliedKnown
}

// Defaults is the selection used when a fetch fails.
func (s *Selector) Defaults() vocab.Selection {
	return s.defaults
}

// Words is nil until the first successful load and after a terminal failure.
func (s *Selector) Words() []vocab.WordEntry {
	return s.words
}

// Parts is the sorted part catalog for the applied topic.
func (s *Selector) Parts() []int {
	return append([]int(nil), s.parts...)
}

// Topics is the sorted topic catalog for the applied part, "all" first.
func (s *Selector) Topics() []string {
	return append([]string(nil), s.topics...)
}

// PartOptions lists the part dropdown values, "all" first.
func (s *Selector) PartOptions() []string {
	out := make([]string, 0, len(s.parts)+1)
	out = append(out, vocab.AllValue)
	for _, p := range s.parts {
		out = append(out, strconv.Itoa(p))
	}
	return out
}

func (s *Selector) Status() Status {
	return s.status
}

// Err is the failure behind StatusError.
func (s *Selector) Err() error {
	return s.err
}

// Generation is the id of the latest issued request.
func (s *Selector) Generation() uint64 {
	return s.generation
}
