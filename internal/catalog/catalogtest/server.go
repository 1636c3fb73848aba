// Package catalogtest serves an in-memory word catalog over HTTP for tests.
package catalogtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/ntustvocab/vocabterm/internal/vocab"
	"github.com/rs/cors"
)

// Route names used for failure injection and request counting.
const (
	RouteWords     = "words"
	RouteParts     = "parts"
	RouteTopics    = "topics"
	RoutePractice  = "practice"
	RouteHeartbeat = "heartbeat"
)

// Entry places a word under a part and topic.
type Entry struct {
	Part  int
	Topic string
	Word  vocab.WordEntry
}

// Server is a fake catalog API.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	entries   []Entry
	practice  map[string][]vocab.PracticeQuestion
	failures  map[string]int
	hits      map[string]int
	queries   map[string][]string
	heartbeat int
}

// New starts a server over entries. Callers Close it.
func New(entries []Entry) *Server {
	s := &Server{
		entries:   append([]Entry(nil), entries...),
		practice:  make(map[string][]vocab.PracticeQuestion),
		failures:  make(map[string]int),
		hits:      make(map[string]int),
		queries:   make(map[string][]string),
		heartbeat: http.StatusOK,
	}
	r := mux.NewRouter()
	r.HandleFunc("/words", s.guard(RouteWords, s.handleWords)).Methods(http.MethodGet)
	r.HandleFunc("/parts", s.guard(RouteParts, s.handleParts)).Methods(http.MethodGet)
	r.HandleFunc("/topics", s.guard(RouteTopics, s.handleTopics)).Methods(http.MethodGet)
	r.HandleFunc("/practice/{part:[0-9]+}/{topic}", s.guard(RoutePractice, s.handlePractice)).Methods(http.MethodGet)
	r.HandleFunc("/heartbeat", s.guard(RouteHeartbeat, s.handleHeartbeat)).Methods(http.MethodGet)
	// the public API answers browsers, so the fake carries the same CORS policy
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Cache-Control"},
	})
	s.Server = httptest.NewServer(c.Handler(r))
	return s
}

// SetPractice installs the question bank for a pair.
func (s *Server) SetPractice(part int, topic string, questions []vocab.PracticeQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.practice[practiceKey(part, topic)] = questions
}

// Fail makes the next n requests to route answer 500.
func (s *Server) Fail(route string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = n
}

// SetHeartbeat sets the status returned by /heartbeat.
func (s *Server) SetHeartbeat(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heartbeat = status
}

// Hits returns how many requests route has served, failures included.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// Queries returns the raw query strings seen by route, in arrival order.
func (s *Server) Queries(route string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries[route]...)
}

func (s *Server) guard(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[route]++
		s.queries[route] = append(s.queries[route], r.URL.RawQuery)
		fail := s.failures[route] > 0
		if fail {
			s.failures[route]--
		}
		s.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal Server Error"})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	part, topic := r.URL.Query().Get("part"), r.URL.Query().Get("topic")
	s.mu.Lock()
	words := make([]vocab.WordEntry, 0)
	for _, e := range s.entries {
		if part != "" && strconv.Itoa(e.Part) != part {
			continue
		}
		if topic != "" && e.Topic != topic {
			continue
		}
		words = append(words, e.Word)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"words": words})
}

func (s *Server) handleParts(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	s.mu.Lock()
	seen := map[int]struct{}{}
	for _, e := range s.entries {
		if topic == "" || e.Topic == topic {
			seen[e.Part] = struct{}{}
		}
	}
	s.mu.Unlock()
	if len(seen) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "No parts found for the specified topic"})
		return
	}
	parts := make([]int, 0, len(seen))
	for p := range seen {
		parts = append(parts, p)
	}
	sort.Ints(parts)
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(parts), "parts": parts})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	part := r.URL.Query().Get("part")
	s.mu.Lock()
	seen := map[string]struct{}{}
	for _, e := range s.entries {
		if part == "" || strconv.Itoa(e.Part) == part {
			seen[e.Topic] = struct{}{}
		}
	}
	s.mu.Unlock()
	if len(seen) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "No topics found for the specified part"})
		return
	}
	topics := make([]string, 0, len(seen))
	for t := range seen {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(topics), "topics": topics})
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	part, _ := strconv.Atoi(vars["part"])
	s.mu.Lock()
	questions, ok := s.practice[practiceKey(part, vars["topic"])]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "No entries found for the specified part and topic"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": questions})
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.heartbeat
	s.mu.Unlock()
	writeJSON(w, status, map[string]string{"status": http.StatusText(status)})
}

func practiceKey(part int, topic string) string {
	return strconv.Itoa(part) + "/" + topic
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
