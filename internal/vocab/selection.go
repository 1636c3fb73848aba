package vocab

import (
	"fmt"
	"strconv"
	"strings"
)

// AllValue is the wire and display form of an unfiltered axis.
const AllValue = "all"

// Part names a weekly vocabulary unit, or no filter at all.
type Part struct {
	n        int
	specific bool
}

// PartAll returns the unfiltered part.
func PartAll() Part {
	return Part{}
}

// PartOf returns a specific part. Non-positive values collapse to unfiltered.
func PartOf(n int) Part {
	if n <= 0 {
		return Part{}
	}
	return Part{n: n, specific: true}
}

// ParsePart accepts "all", an empty string, or a positive integer.
func ParsePart(raw string) (Part, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, AllValue) {
		return PartAll(), nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return Part{}, fmt.Errorf("invalid part %q: %w", raw, err)
	}
	if n <= 0 {
		return Part{}, fmt.Errorf("invalid part %q: must be positive", raw)
	}
	return PartOf(n), nil
}

// Specific reports whether the part filters anything.
func (p Part) Specific() bool {
	return p.specific
}

// Value returns the part number and whether it is specific.
func (p Part) Value() (int, bool) {
	return p.n, p.specific
}

func (p Part) String() string {
	if !p.specific {
		return AllValue
	}
	return strconv.Itoa(p.n)
}

// MarshalText renders the wire form so traces stay readable.
func (p Part) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Topic names a subject category, or no filter at all.
type Topic struct {
	name     string
	specific bool
}

// TopicAll returns the unfiltered topic.
func TopicAll() Topic {
	return Topic{}
}

// TopicOf returns a specific topic; "all" and blank names are unfiltered.
func TopicOf(name string) Topic {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.EqualFold(trimmed, AllValue) {
		return Topic{}
	}
	return Topic{name: trimmed, specific: true}
}

// ParseTopic mirrors ParsePart for topics. Topic ids may not contain '/'.
func ParseTopic(raw string) (Topic, error) {
	if strings.ContainsAny(raw, "/?#") {
		return Topic{}, fmt.Errorf("invalid topic %q", raw)
	}
	return TopicOf(raw), nil
}

// Specific reports whether the topic filters anything.
func (t Topic) Specific() bool {
	return t.specific
}

// Value returns the topic id and whether it is specific.
func (t Topic) Value() (string, bool) {
	return t.name, t.specific
}

func (t Topic) String() string {
	if !t.specific {
		return AllValue
	}
	return t.name
}

func (t Topic) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Selection is a (Part, Topic) pair.
type Selection struct {
	Part  Part
	Topic Topic
}

// Equal reports whether both axes match.
func (s Selection) Equal(other Selection) bool {
	return s.Part == other.Part && s.Topic == other.Topic
}

// Practicable reports whether a practice session can be started for the pair.
func (s Selection) Practicable() bool {
	return s.Part.Specific() && s.Topic.Specific()
}

func (s Selection) String() string {
	return fmt.Sprintf("%s/%s", s.Part, s.Topic)
}
