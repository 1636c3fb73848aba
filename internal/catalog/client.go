package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ntustvocab/vocabterm/internal/logging/events"
	"github.com/ntustvocab/vocabterm/internal/vocab"
)

// DefaultBaseURL is the public word API.
const DefaultBaseURL = "https://py.xserver.tw/api"

// maxBody caps how much of a response is decoded.
const maxBody = 16 << 20

// Client talks to the word/parts/topics/practice HTTP API.
type Client struct {
	base *url.URL
	http *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. Timeouts, if any, live there.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New builds a client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog url %q must be http or https", baseURL)
	}
	c := &Client{base: u, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type wordsResponse struct {
	Words []vocab.WordEntry `json:"words"`
}

type partsResponse struct {
	Count int   `json:"count"`
	Parts []int `json:"parts"`
}

type topicsResponse struct {
	Count  int      `json:"count"`
	Topics []string `json:"topics"`
}

type practiceResponse struct {
	Entries []vocab.PracticeQuestion `json:"entries"`
}

// Words fetches the word list; unfiltered axes are omitted from the query.
func (c *Client) Words(ctx context.Context, part vocab.Part, topic vocab.Topic) ([]vocab.WordEntry, error) {
	q := url.Values{}
	setPart(q, part)
	setTopic(q, topic)
	var resp wordsResponse
	if err := c.get(ctx, c.endpoint(q, "words"), &resp); err != nil {
		return nil, err
	}
	return resp.Words, nil
}

// Parts fetches the parts that have words for topic.
func (c *Client) Parts(ctx context.Context, topic vocab.Topic) ([]int, error) {
	q := url.Values{}
	setTopic(q, topic)
	var resp partsResponse
	if err := c.get(ctx, c.endpoint(q, "parts"), &resp); err != nil {
		return nil, err
	}
	return resp.Parts, nil
}

// Topics fetches the topics that have words for part.
func (c *Client) Topics(ctx context.Context, part vocab.Part) ([]string, error) {
	q := url.Values{}
	setPart(q, part)
	var resp topicsResponse
	if err := c.get(ctx, c.endpoint(q, "topics"), &resp); err != nil {
		return nil, err
	}
	return resp.Topics, nil
}

// Practice fetches the question bank for a concrete (part, topic) pair.
func (c *Client) Practice(ctx context.Context, part vocab.Part, topic vocab.Topic) ([]vocab.PracticeQuestion, error) {
	n, okPart := part.Value()
	name, okTopic := topic.Value()
	if !okPart || !okTopic {
		return nil, fmt.Errorf("%w: practice needs a specific part and topic, got %s/%s", ErrFetch, part, topic)
	}
	var resp practiceResponse
	if err := c.get(ctx, c.endpoint(nil, "practice", strconv.Itoa(n), name), &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// Heartbeat checks that the API is reachable.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.get(ctx, c.endpoint(nil, "heartbeat"), nil)
}

func setPart(q url.Values, part vocab.Part) {
	if n, ok := part.Value(); ok {
		q.Set("part", strconv.Itoa(n))
	}
}

func setTopic(q url.Values, topic vocab.Topic) {
	if name, ok := topic.Value(); ok {
		q.Set("topic", name)
	}
}

// endpoint appends segments to the base path, each escaped as a single
// segment, so a topic id can never change which resource is addressed.
func (c *Client) endpoint(q url.Values, segments ...string) string {
	u := *c.base
	plain := strings.TrimSuffix(c.base.Path, "/")
	escaped := strings.TrimSuffix(c.base.EscapedPath(), "/")
	for _, seg := range segments {
		plain += "/" + seg
		escaped += "/" + escapeSegment(seg)
	}
	u.Path, u.RawPath = plain, escaped
	u.RawQuery = ""
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// escapeSegment escapes s for use as one path segment. Dot segments are
// percent-encoded as well, since url.PathEscape leaves them alone.
func escapeSegment(s string) string {
	if s == "." || s == ".." {
		return strings.Repeat("%2E", len(s))
	}
	return url.PathEscape(s)
}

func (c *Client) get(ctx context.Context, target string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	events.Catalog.Request(req.Method, target)
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		events.Catalog.Error(target, err)
		return fmt.Errorf("%w: GET %s: %v", ErrFetch, target, err)
	}
	defer resp.Body.Close()
	events.Catalog.Response(target, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return &StatusError{URL: target, Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		events.Catalog.Error(target, err)
		return fmt.Errorf("%w: decode %s: %v", ErrFetch, target, err)
	}
	return nil
}
