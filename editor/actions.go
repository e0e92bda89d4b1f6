package editor

import "fmt"

// Action is one reversible edit. Exactly one payload matching Type is set.
// Payloads hold absolute old and new values captured when the action was
// built, so Do and Undo never recompute state.
type Action struct {
	Type ActionType

	Select *SelectData
	Move   *MoveData
	Scale  *ScaleData
	Rotate *RotateData
	Nodes  *NodesData
	Link   *LinkData
}

type SelectData struct {
	Selection *Selection
	Old       []*Node
	New       []*Node
}

type MoveData struct {
	Nodes []*Node
	Old   []Point
	New   []Point
}

type ScaleData struct {
	Nodes   []*Node
	OldPos  []Point
	NewPos  []Point
	OldSize []Size
	NewSize []Size
}

type RotateData struct {
	Nodes []*Node
	Old   []float64
	New   []float64
}

// NodesData backs ActionAddNode and ActionDeleteNodes. Indices and
// connection indices are filled on the first Do.
type NodesData struct {
	Graph     *Graph
	Selection *Selection
	Nodes     []*Node

	indices      []int
	removed      []*Connection
	removedAt    []int
	oldSelection []*Node
}

// LinkData backs ActionConnect and ActionDisconnect.
type LinkData struct {
	Graph      *Graph
	Connection *Connection

	index int
}

func NewSelectAction(sel *Selection, next []*Node) *Action {
	return &Action{Type: ActionSelect, Select: &SelectData{
		Selection: sel,
		Old:       sel.Items(),
		New:       dedupe(next),
	}}
}

func NewMoveAction(nodes []*Node, old, next []Point) *Action {
	if len(nodes) != len(old) || len(nodes) != len(next) {
		panic("editor: move action arrays differ in length")
	}
	return &Action{Type: ActionMove, Move: &MoveData{Nodes: nodes, Old: old, New: next}}
}

func NewScaleAction(nodes []*Node, oldPos, newPos []Point, oldSize, newSize []Size) *Action {
	n := len(nodes)
	if len(oldPos) != n || len(newPos) != n || len(oldSize) != n || len(newSize) != n {
		panic("editor: scale action arrays differ in length")
	}
	return &Action{Type: ActionScale, Scale: &ScaleData{
		Nodes: nodes, OldPos: oldPos, NewPos: newPos, OldSize: oldSize, NewSize: newSize,
	}}
}

func NewRotateAction(nodes []*Node, old, next []float64) *Action {
	if len(nodes) != len(old) || len(nodes) != len(next) {
		panic("editor: rotate action arrays differ in length")
	}
	return &Action{Type: ActionRotate, Rotate: &RotateData{Nodes: nodes, Old: old, New: next}}
}

func NewAddNodeAction(g *Graph, nodes ...*Node) *Action {
	return &Action{Type: ActionAddNode, Nodes: &NodesData{Graph: g, Nodes: nodes}}
}

func NewDeleteNodesAction(g *Graph, sel *Selection, nodes []*Node) *Action {
	return &Action{Type: ActionDeleteNodes, Nodes: &NodesData{Graph: g, Selection: sel, Nodes: dedupe(nodes)}}
}

func NewConnectAction(g *Graph, c *Connection) *Action {
	return &Action{Type: ActionConnect, Link: &LinkData{Graph: g, Connection: c, index: -1}}
}

func NewDisconnectAction(g *Graph, c *Connection) *Action {
	return &Action{Type: ActionDisconnect, Link: &LinkData{Graph: g, Connection: c, index: -1}}
}

func (a *Action) Do() {
	switch a.Type {
	case ActionSelect:
		a.Select.Selection.replace(a.Select.New)
	case ActionMove:
		for i, n := range a.Move.Nodes {
			n.SetPosition(a.Move.New[i])
		}
	case ActionScale:
		for i, n := range a.Scale.Nodes {
			n.SetSize(a.Scale.NewSize[i])
			n.SetPosition(a.Scale.NewPos[i])
		}
	case ActionRotate:
		for i, n := range a.Rotate.Nodes {
			n.SetRotation(a.Rotate.New[i])
		}
	case ActionAddNode:
		a.Nodes.add()
	case ActionDeleteNodes:
		a.Nodes.delete()
	case ActionConnect:
		a.Link.insert()
	case ActionDisconnect:
		a.Link.remove()
	default:
		panic(fmt.Sprintf("editor: unknown action type %d", a.Type))
	}
}

func (a *Action) Undo() {
	switch a.Type {
	case ActionSelect:
		a.Select.Selection.replace(a.Select.Old)
	case ActionMove:
		for i, n := range a.Move.Nodes {
			n.SetPosition(a.Move.Old[i])
		}
	case ActionScale:
		for i, n := range a.Scale.Nodes {
			n.SetSize(a.Scale.OldSize[i])
			n.SetPosition(a.Scale.OldPos[i])
		}
	case ActionRotate:
		for i, n := range a.Rotate.Nodes {
			n.SetRotation(a.Rotate.Old[i])
		}
	case ActionAddNode:
		a.Nodes.removeAdded()
	case ActionDeleteNodes:
		a.Nodes.restore()
	case ActionConnect:
		a.Link.remove()
	case ActionDisconnect:
		a.Link.insert()
	default:
		panic(fmt.Sprintf("editor: unknown action type %d", a.Type))
	}
}

func (a *Action) String() string {
	switch a.Type {
	case ActionSelect:
		return fmt.Sprintf("select %d nodes", len(a.Select.New))
	case ActionMove:
		return fmt.Sprintf("move %d nodes", len(a.Move.Nodes))
	case ActionScale:
		return fmt.Sprintf("scale %d nodes", len(a.Scale.Nodes))
	case ActionRotate:
		return fmt.Sprintf("rotate %d nodes", len(a.Rotate.Nodes))
	case ActionAddNode:
		return fmt.Sprintf("add %d nodes", len(a.Nodes.Nodes))
	case ActionDeleteNodes:
		return fmt.Sprintf("delete %d nodes", len(a.Nodes.Nodes))
	case ActionConnect:
		return fmt.Sprintf("connect %s -> %s", a.Link.Connection.source, a.Link.Connection.target)
	case ActionDisconnect:
		return fmt.Sprintf("disconnect %s -> %s", a.Link.Connection.source, a.Link.Connection.target)
	}
	return a.Type.String()
}

func (d *NodesData) add() {
	for i, n := range d.Nodes {
		at := d.Graph.NodeCount()
		if d.indices != nil {
			at = d.indices[i]
		}
		mustDo(d.Graph.InsertNode(at, n))
	}
	if d.indices == nil {
		d.indices = make([]int, len(d.Nodes))
		for i, n := range d.Nodes {
			d.indices[i] = d.Graph.IndexOfNode(n)
		}
	}
}

func (d *NodesData) removeAdded() {
	for i := len(d.Nodes) - 1; i >= 0; i-- {
		d.Graph.RemoveNode(d.Nodes[i].ID)
	}
}

func (d *NodesData) delete() {
	doomed := make(map[*Node]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		doomed[n] = true
	}

	if d.Selection != nil {
		d.oldSelection = d.Selection.Items()
		var keep []*Node
		for _, n := range d.oldSelection {
			if !doomed[n] {
				keep = append(keep, n)
			}
		}
		d.Selection.replace(keep)
	}

	d.removed, d.removedAt = nil, nil
	for i, c := range d.Graph.Connections() {
		if (c.source != nil && doomed[c.source.node]) || (c.target != nil && doomed[c.target.node]) {
			d.removed = append(d.removed, c)
			d.removedAt = append(d.removedAt, i)
		}
	}
	for i := len(d.removedAt) - 1; i >= 0; i-- {
		mustDo(d.Graph.RemoveAt(d.removedAt[i]))
	}

	d.indices = d.indices[:0]
	ordered := make([]*Node, 0, len(d.Nodes))
	for i, n := range d.Graph.Nodes() {
		if doomed[n] {
			d.indices = append(d.indices, i)
			ordered = append(ordered, n)
		}
	}
	d.Nodes = ordered
	for i := len(ordered) - 1; i >= 0; i-- {
		d.Graph.RemoveNode(ordered[i].ID)
	}
}

func (d *NodesData) restore() {
	for i, n := range d.Nodes {
		mustDo(d.Graph.InsertNode(d.indices[i], n))
	}
	for i, c := range d.removed {
		mustDo(d.Graph.InsertRange(d.removedAt[i], []*Connection{c}))
	}
	if d.Selection != nil {
		d.Selection.replace(d.oldSelection)
	}
}

func (d *LinkData) insert() {
	at := d.Graph.ConnectionCount()
	if d.index >= 0 && d.index <= at {
		at = d.index
	}
	mustDo(d.Graph.InsertRange(at, []*Connection{d.Connection}))
	d.index = at
}

func (d *LinkData) remove() {
	d.index = d.Graph.indexOf(d.Connection)
	mustDo(d.Graph.Remove(d.Connection))
}

// mustDo panics when a replayed action no longer fits the store, which
// means the history and the store went out of sync.
func mustDo(err error) {
	if err != nil {
		panic(fmt.Sprintf("editor: replay out of sync: %v", err))
	}
}

func dedupe(nodes []*Node) []*Node {
	seen := make(map[*Node]bool, len(nodes))
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
