package menu

import "strings"

// Node represents a menu entry definition within the registry tree.
type Node struct {
	ID       string
	Loader   Loader
	Action   Action
	Children map[string]*Node
}

// Registry exposes lookup utilities for menu definitions.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// BuildRegistry wires the loader and handler maps into a tree keyed by
// colon-separated ids.
func BuildRegistry() *Registry {
	r := &Registry{nodes: make(map[string]*Node)}
	r.root = r.ensure("root")
	r.root.Loader = func(Context) ([]Item, error) { return RootItems(), nil }

	for id, loader := range CategoryLoaders() {
		r.ensure(id).Loader = loader
	}
	for id, action := range ActionHandlers() {
		r.ensure(id).Action = action
	}
	for id, node := range r.nodes {
		if id == "root" {
			continue
		}
		parentID, key := parentKey(id)
		r.ensure(parentID).Children[key] = node
	}
	return r
}

func (r *Registry) ensure(id string) *Node {
	if node, ok := r.nodes[id]; ok {
		return node
	}
	node := &Node{ID: id, Children: make(map[string]*Node)}
	r.nodes[id] = node
	return node
}

// Root returns the registry root node.
func (r *Registry) Root() *Node {
	return r.root
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Child resolves a child node under the given parent for the provided key.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	node, ok := parent.Children[key]
	return node, ok
}

func parentKey(id string) (string, string) {
	idx := strings.LastIndex(id, ":")
	if idx < 0 {
		return "root", id
	}
	return id[:idx], id[idx+1:]
}
