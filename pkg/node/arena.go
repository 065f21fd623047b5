// Package node wraps a position with a parent, children, a depth, and
// whatever algorithm-specific payload the owning search needs, lazily
// computed on expansion. Rather than chasing owned parent pointers,
// nodes live in a flat arena and refer to each other by index: ownership
// flows strictly from a tree's Arena to every node in it, and a node's
// "parent" is a non-owning index back-reference rather than a pointer.
//
// Only the algorithms that need a genuinely persistent, revisitable tree
// (Monte-Carlo search) use this package; the recursive algorithms
// (Minimax, Alpha-Beta, MTD(f), Negamax) never materialize a Node at all,
// and Proof-Number Search uses its own node type (pkg/search/pnsearch.go)
// since its φ/δ bookkeeping doesn't fit the generic arena shape.
package node

// ID identifies a node within an Arena. The zero Arena's root is always
// assigned ID 0; None identifies the absence of a node (e.g. the root's
// parent).
type ID int

// None is the sentinel ID representing "no such node".
const None ID = -1

// Arena owns a tree of nodes carrying a T payload each. IDs are assigned
// by a monotonic counter scoped to the Arena instance, never a package or
// process-global one, so arenas belonging to different searches never
// collide.
type Arena[T any] struct {
	nodes []entry[T]
}

type entry[T any] struct {
	parent   ID
	children []ID
	depth    int
	payload  T
}

// NewArena creates an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// NewRoot resets the arena and creates a root node (depth 0, no parent)
// holding payload, returning its ID (always 0).
func (a *Arena[T]) NewRoot(payload T) ID {
	a.nodes = a.nodes[:0]
	a.nodes = append(a.nodes, entry[T]{parent: None, payload: payload})
	return 0
}

// NewChild creates a new node as a child of parent, returning its ID.
func (a *Arena[T]) NewChild(parent ID, payload T) ID {
	id := ID(len(a.nodes))
	a.nodes = append(a.nodes, entry[T]{
		parent:  parent,
		depth:   a.nodes[parent].depth + 1,
		payload: payload,
	})
	a.nodes[parent].children = append(a.nodes[parent].children, id)
	return id
}

// Len reports the number of nodes currently in the arena.
func (a *Arena[T]) Len() int { return len(a.nodes) }

// Parent returns id's parent, or None if id is the root.
func (a *Arena[T]) Parent(id ID) ID { return a.nodes[id].parent }

// Children returns id's children in creation order. The returned slice
// aliases the arena's storage and must not be mutated by the caller.
func (a *Arena[T]) Children(id ID) []ID { return a.nodes[id].children }

// Depth returns id's distance from the root.
func (a *Arena[T]) Depth(id ID) int { return a.nodes[id].depth }

// Payload returns a pointer to id's payload, so callers can mutate
// algorithm-specific fields (visit counts, cached evaluations) in place.
func (a *Arena[T]) Payload(id ID) *T { return &a.nodes[id].payload }
