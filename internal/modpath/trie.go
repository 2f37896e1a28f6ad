// Package modpath stores dotted Python module paths in an arena-based
// trie and answers membership and prefix queries against them.
//
// The arena pre-allocates a contiguous slice of nodes and references
// children by index instead of pointer. Module-name lookups happen for
// every import in every linted file, so keeping the nodes in one
// allocation keeps GC pressure and cache misses low.
package modpath

import "strings"

// NodeIndex represents the index of a trie node within the arena.
type NodeIndex int

// Arena is a memory pool that stores all trie nodes.
type Arena struct {
	nodes []arenaNode
}

type arenaNode struct {
	// children maps a module path segment to the index of the child node.
	children map[string]NodeIndex
	// isEnd marks the last segment of an inserted module path.
	isEnd bool
}

// NewArena creates a new arena holding only the root node.
func NewArena() *Arena {
	arena := &Arena{
		nodes: make([]arenaNode, 0, 1024),
	}
	// root node (index 0)
	arena.nodes = append(arena.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return arena
}

func (a *Arena) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return idx
}

// Insert inserts the segments of one dotted module path into the trie.
func (a *Arena) Insert(segments []string) {
	current := NodeIndex(0)

	for _, part := range segments {
		node := &a.nodes[current]
		childIdx, exists := node.children[part]

		if !exists {
			childIdx = a.newNode()
			node.children[part] = childIdx
		}

		current = childIdx
	}

	a.nodes[current].isEnd = true
}

// Contains reports whether the exact module path was inserted.
func (a *Arena) Contains(segments []string) bool {
	current := NodeIndex(0)
	for _, part := range segments {
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			return false
		}
		current = childIdx
	}
	return a.nodes[current].isEnd
}

// MatchesPrefix reports whether any inserted module path is a prefix of
// the given path. Importing "os.path" matches an inserted "os": the
// submodule belongs to the same module for grouping purposes.
func (a *Arena) MatchesPrefix(segments []string) bool {
	current := NodeIndex(0)
	for _, part := range segments {
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			return false
		}
		current = childIdx
		if a.nodes[current].isEnd {
			return true
		}
	}
	return false
}

// Set is a wrapper around Arena that takes dotted module paths.
type Set struct {
	arena *Arena
}

// NewSet returns an initialized Set.
func NewSet() *Set {
	return &Set{arena: NewArena()}
}

// NewSetOf returns a Set pre-populated with the given module paths.
func NewSetOf(modules ...string) *Set {
	s := NewSet()
	for _, m := range modules {
		s.Add(m)
	}
	return s
}

// Add inserts a dotted module path such as "os.path".
func (s *Set) Add(module string) {
	if module == "" {
		return
	}
	s.arena.Insert(strings.Split(module, "."))
}

// Contains reports whether the exact dotted path was added.
func (s *Set) Contains(module string) bool {
	if module == "" {
		return false
	}
	return s.arena.Contains(strings.Split(module, "."))
}

// ContainsModule reports whether the dotted path or any of its parent
// modules was added.
func (s *Set) ContainsModule(module string) bool {
	if module == "" {
		return false
	}
	return s.arena.MatchesPrefix(strings.Split(module, "."))
}
