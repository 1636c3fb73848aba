package state

// IsExpanded reports whether the word with id shows its details.
func (l *Level) IsExpanded(id string) bool {
	if l.Expanded == nil {
		return false
	}
	_, ok := l.Expanded[id]
	return ok
}

// ToggleExpanded flips the expanded state of id.
func (l *Level) ToggleExpanded(id string) {
	if l.Expanded == nil {
		l.Expanded = make(map[string]struct{})
	}
	if _, ok := l.Expanded[id]; ok {
		delete(l.Expanded, id)
		return
	}
	l.Expanded[id] = struct{}{}
}

// ToggleCurrentExpanded flips the item under the cursor.
func (l *Level) ToggleCurrentExpanded() bool {
	item, ok := l.CurrentItem()
	if !ok {
		return false
	}
	l.ToggleExpanded(item.ID)
	return true
}

// CollapseAll forgets every expanded item.
func (l *Level) CollapseAll() {
	for id := range l.Expanded {
		delete(l.Expanded, id)
	}
}

func (l *Level) pruneExpanded() {
	if len(l.Expanded) == 0 {
		return
	}
	valid := make(map[string]struct{}, len(l.Full))
	for _, item := range l.Full {
		valid[item.ID] = struct{}{}
	}
	for id := range l.Expanded {
		if _, ok := valid[id]; !ok {
			delete(l.Expanded, id)
		}
	}
}
