package main

import (
	"sort"

	"flowcanvas/editor"
)

// newDiagramNode creates a node with an input pin on the left and an output
// pin on the right.
func newDiagramNode(label string, at editor.Point) *editor.Node {
	width := float64(len([]rune(label)) + 4)
	if width < defaultNodeWidth {
		width = defaultNodeWidth
	}
	n := editor.NewNode(label, at, editor.Size{Width: width, Height: defaultNodeHeight})
	n.AddPin(editor.SideLeft, "in")
	n.AddPin(editor.SideRight, "out")
	return n
}

func inPin(n *editor.Node) *editor.Pin {
	if pins := n.Pins(editor.SideLeft); len(pins) > 0 {
		return pins[0]
	}
	return nil
}

func outPin(n *editor.Node) *editor.Pin {
	if pins := n.Pins(editor.SideRight); len(pins) > 0 {
		return pins[0]
	}
	return nil
}

// childrenOf returns the nodes fed by parent's output pin, top to bottom.
func childrenOf(g *editor.Graph, parent *editor.Node) []*editor.Node {
	out := outPin(parent)
	var children []*editor.Node
	for _, c := range g.ConnectionsOf(parent) {
		if c.Source() == out && c.Target() != nil {
			children = append(children, c.Target().Node())
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Position().Y < children[j].Position().Y
	})
	return children
}

// parentOf returns the node whose output feeds n's input pin, if any.
func parentOf(g *editor.Graph, n *editor.Node) *editor.Node {
	in := inPin(n)
	for _, c := range g.ConnectionsOf(n) {
		if c.Target() == in && c.Source() != nil {
			return c.Source().Node()
		}
	}
	return nil
}

// childPosition places a new child right of parent, below the last child it
// already has.
func childPosition(g *editor.Graph, parent *editor.Node) editor.Point {
	b := parent.Bounds()
	p := editor.Point{X: b.Right() + childGap, Y: b.Y}
	if children := childrenOf(g, parent); len(children) > 0 {
		last := children[len(children)-1].Bounds()
		p.Y = last.Bottom() + 1
	}
	return p
}

func siblingPosition(sibling *editor.Node) editor.Point {
	b := sibling.Bounds()
	return editor.Point{X: b.X, Y: b.Bottom() + 1}
}

// placeNode adds a node labelled label according to kind and links it to
// its parent. The node and the link are separate history entries.
func (m *model) placeNode(label string, kind placement, anchor *editor.Node) (*editor.Node, error) {
	g := m.canvas.Graph()
	var parent *editor.Node
	at := m.cursor
	switch kind {
	case placeChild:
		parent = anchor
		at = childPosition(g, anchor)
	case placeSibling:
		parent = parentOf(g, anchor)
		at = siblingPosition(anchor)
		if parent != nil {
			at = childPosition(g, parent)
		}
	}

	n := newDiagramNode(label, at)
	if err := m.canvas.AddNode(n); err != nil {
		return nil, err
	}
	if parent != nil {
		if _, err := m.canvas.Connect(outPin(parent), inPin(n)); err != nil {
			return n, err
		}
	}
	m.canvas.Select([]*editor.Node{n})
	m.log.Debugf("placed %s at %s", n.Label, at)
	return n, nil
}
