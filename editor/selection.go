package editor

// SelectionListener receives the previous and the new contents after every
// replacement.
type SelectionListener func(old, next []*Node)

// Selection is the ordered, duplicate-free set of selected nodes. It is
// only changed by select actions, which keep each node's selected flag in
// step with membership.
type Selection struct {
	items     []*Node
	listeners []SelectionListener
}

func NewSelection() *Selection {
	return &Selection{items: make([]*Node, 0)}
}

func (s *Selection) Items() []*Node {
	return append([]*Node(nil), s.items...)
}

func (s *Selection) Len() int { return len(s.items) }

func (s *Selection) Empty() bool { return len(s.items) == 0 }

func (s *Selection) Contains(n *Node) bool {
	for _, m := range s.items {
		if m == n {
			return true
		}
	}
	return false
}

// Subscribe registers fn for replacement events and returns a function
// that removes it again.
func (s *Selection) Subscribe(fn SelectionListener) func() {
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

// replace clears the flag on the old members, swaps the contents, then sets
// the flag on the new members. A node in both sets ends up selected.
func (s *Selection) replace(next []*Node) {
	old := s.items
	for _, n := range old {
		n.selected = false
	}
	s.items = dedupe(next)
	for _, n := range s.items {
		n.selected = true
	}
	for _, fn := range s.listeners {
		if fn != nil {
			fn(append([]*Node(nil), old...), s.Items())
		}
	}
}

func without(nodes []*Node, drop *Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != drop {
			out = append(out, n)
		}
	}
	return out
}

type HitKind int

const (
	HitNone HitKind = iota
	HitNode
	HitAdorner
)

type Hit struct {
	Kind   HitKind
	Node   *Node
	Handle Handle
}

// NodeAt returns the topmost node whose bounds contain p, or nil.
func (g *Graph) NodeAt(p Point) *Node {
	for i := len(g.nodes) - 1; i >= 0; i-- {
		if g.nodes[i].Bounds().Contains(p) {
			return g.nodes[i]
		}
	}
	return nil
}

// NodesIn returns the nodes, in z-order, whose bounds intersect r.
func (g *Graph) NodesIn(r Rect) []*Node {
	return Intersecting(r, g.nodes)
}

// Intersecting returns the subset of nodes whose bounds intersect r,
// including nodes that only touch its edges.
func Intersecting(r Rect, nodes []*Node) []*Node {
	out := make([]*Node, 0)
	for _, n := range nodes {
		if n.Bounds().Intersects(r) {
			out = append(out, n)
		}
	}
	return out
}
