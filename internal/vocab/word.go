package vocab

import "strings"

// Pronunciation is one recorded reading of a word.
type Pronunciation struct {
	POS  string `json:"pos"`
	Lang string `json:"lang"`
	URL  string `json:"url"`
	Pron string `json:"pron"`
}

// Definition is a gloss with its translation.
type Definition struct {
	POS         string `json:"pos"`
	Definition  string `json:"definition"`
	Translation string `json:"translation"`
}

// VerbForm is an inflected form such as the past participle.
type VerbForm struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// WordEntry is a single vocabulary item as served by the catalog.
type WordEntry struct {
	Word           string          `json:"word"`
	POS            string          `json:"pos"`
	Meaning        string          `json:"meaning"`
	Pronunciations []Pronunciation `json:"pronunciations"`
	Definitions    []Definition    `json:"definitions"`
	Verbs          []VerbForm      `json:"verbs"`
}

// POSTags splits the part-of-speech field. "-" marks a word without tags.
func (w WordEntry) POSTags() []string {
	pos := strings.TrimSpace(w.POS)
	if pos == "" || pos == "-" {
		return nil
	}
	parts := strings.Split(pos, "/")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Pronunciation returns the first pronunciation for the language tag ("us", "uk").
func (w WordEntry) Pronunciation(lang string) (Pronunciation, bool) {
	for _, p := range w.Pronunciations {
		if strings.EqualFold(strings.TrimSpace(p.Lang), lang) {
			return p, true
		}
	}
	return Pronunciation{}, false
}

// AudioLangs is the order recordings are offered in.
var AudioLangs = []string{"us", "uk"}

// Recordings returns one pronunciation with an audio link per language in
// AudioLangs order. Lang is normalised to lower case.
func (w WordEntry) Recordings() []Pronunciation {
	var out []Pronunciation
	for _, lang := range AudioLangs {
		for _, p := range w.Pronunciations {
			if strings.EqualFold(strings.TrimSpace(p.Lang), lang) && strings.TrimSpace(p.URL) != "" {
				p.Lang = lang
				p.URL = strings.TrimSpace(p.URL)
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// HasDetails reports whether the word has anything to show when expanded.
func (w WordEntry) HasDetails() bool {
	return len(w.Definitions) > 0 || len(w.Verbs) > 0 || len(w.Recordings()) > 0
}
