package vocab

import "sort"

// topicOrder is the editorial order used by the topic dropdown.
var topicOrder = []string{
	AllValue,
	"toefl",
	"toeic",
	"ielts",
	"gept",
	"pvqc-ict",
	"pvqc-bm",
	"pvqc-dm",
}

var topicLabels = map[string]string{
	AllValue:   "All",
	"toefl":    "TOEFL",
	"toeic":    "TOEIC",
	"ielts":    "IELTS",
	"gept":     "GEPT",
	"pvqc-ict": "PVQC ICT",
	"pvqc-bm":  "PVQC Business",
	"pvqc-dm":  "PVQC Digital Media",
}

// TopicLabel returns the display label for a topic id.
func TopicLabel(id string) string {
	if label, ok := topicLabels[id]; ok {
		return label
	}
	return id
}

// SortTopics returns "all" first, then known topics in editorial order, then
// unknown topics alphabetically. Duplicates and blanks are dropped.
func SortTopics(topics []string) []string {
	rank := make(map[string]int, len(topicOrder))
	for i, id := range topicOrder {
		rank[id] = i
	}
	seen := map[string]struct{}{AllValue: {}}
	known := []string{AllValue}
	var unknown []string
	for _, raw := range topics {
		id := TopicOf(raw).String()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := rank[id]; ok {
			known = append(known, id)
		} else {
			unknown = append(unknown, id)
		}
	}
	sort.SliceStable(known, func(i, j int) bool {
		return rank[known[i]] < rank[known[j]]
	})
	sort.Strings(unknown)
	return append(known, unknown...)
}

// SortParts returns the positive parts ascending without duplicates.
func SortParts(parts []int) []int {
	seen := make(map[int]struct{}, len(parts))
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if p <= 0 {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
