package editor

import (
	"fmt"

	"github.com/kataras/golog"
)

type Options struct {
	HistoryCapacity int
	Adorner         AdornerOptions
	Mapper          CoordinateMapper
	Layer           Layer
	Shortcuts       ShortcutMatcher
	Logger          *golog.Logger
}

func DefaultOptions() Options {
	return Options{
		HistoryCapacity: DefaultHistoryCapacity,
		Adorner:         DefaultAdornerOptions(),
		Shortcuts:       DefaultKeymap(),
	}
}

// RubberBand is the drag rectangle of a multi-select gesture.
type RubberBand struct {
	Origin  Point
	Current Point
}

func (b RubberBand) Rect() Rect {
	return RectFromPoints(b.Origin, b.Current)
}

// Canvas is the interaction state machine. It owns the graph, the
// selection and the history, and turns pointer and key events into
// recorded actions. It must be driven from a single goroutine.
type Canvas struct {
	graph     *Graph
	selection *Selection
	history   *History
	viewport  *Viewport
	adorner   *Adorner
	band      *RubberBand
	state     State
	opts      Options
	log       *golog.Logger
}

func NewCanvas(opts Options) *Canvas {
	if opts.Logger == nil {
		opts.Logger = silentLogger()
	}
	if opts.Shortcuts == nil {
		opts.Shortcuts = DefaultKeymap()
	}
	c := &Canvas{
		graph:     NewGraph(opts.Mapper, opts.Logger),
		selection: NewSelection(),
		history:   NewHistory(opts.HistoryCapacity, opts.Logger),
		viewport:  NewViewport(),
		state:     StateIdle,
		opts:      opts,
		log:       opts.Logger,
	}
	c.selection.Subscribe(c.onSelectionChanged)
	return c
}

func (c *Canvas) Graph() *Graph { return c.graph }
func (c *Canvas) Selection() *Selection { return c.selection }
func (c *Canvas) History() *History { return c.history }
func (c *Canvas) Viewport() *Viewport { return c.viewport }
func (c *Canvas) State() State { return c.state }

// Adorner returns the active adorner, or nil while nothing is selected.
func (c *Canvas) Adorner() *Adorner { return c.adorner }

// RubberBand returns the multi-select rectangle while one is being drawn.
func (c *Canvas) RubberBand() (Rect, bool) {
	if c.band == nil {
		return Rect{}, false
	}
	return c.band.Rect(), true
}

// HitTest resolves what lies under p: adorner grips and frame first, then
// the topmost node, then the adorner body between adorned nodes.
func (c *Canvas) HitTest(p Point) Hit {
	if c.adorner != nil {
		if h := c.adorner.HitTest(p); h != HandleNone {
			return Hit{Kind: HitAdorner, Handle: h}
		}
	}
	if n := c.graph.NodeAt(p); n != nil {
		return Hit{Kind: HitNode, Node: n}
	}
	if c.adorner != nil && c.adorner.Bounds().Contains(p) {
		return Hit{Kind: HitAdorner, Handle: HandleMove}
	}
	return Hit{Kind: HitNone}
}

func (c *Canvas) PointerDown(e PointerEvent) bool {
	if e.Handled {
		return false
	}
	defer c.checkInvariants()

	hit := c.HitTest(e.Position)
	switch {
	case hit.Kind == HitNode && e.ClickCount >= 2:
		c.Select([]*Node{hit.Node})
	case hit.Kind == HitAdorner:
		c.adorner.BeginDrag(hit.Handle, e.Position)
		c.setState(StateAdornerActive)
	case hit.Kind == HitNode && !hit.Node.selected:
		next := []*Node{hit.Node}
		if e.Modifiers.Has(ModShift) || e.Modifiers.Has(ModCtrl) {
			next = append(c.selection.Items(), hit.Node)
		}
		c.Select(next)
		c.adorner.BeginDrag(HandleMove, e.Position)
	case hit.Kind == HitNode:
		c.Select(without(c.selection.Items(), hit.Node))
	default:
		c.band = nil
		c.Select(nil)
		c.setState(StateIdle)
	}
	return true
}

func (c *Canvas) PointerMove(e PointerEvent) bool {
	if e.Handled || !e.Buttons.Has(ButtonLeft) {
		return false
	}
	defer c.checkInvariants()

	switch c.state {
	case StateIdle:
		c.band = &RubberBand{Origin: e.Position, Current: e.Position}
		c.setState(StateMultiSelecting)
	case StateMultiSelecting:
		c.band.Current = e.Position
	case StateAdornerActive:
		c.adorner.Drag(e.Position)
	}
	return true
}

func (c *Canvas) PointerUp(e PointerEvent) bool {
	if e.Handled {
		return false
	}
	defer c.checkInvariants()

	switch c.state {
	case StateMultiSelecting:
		picked := c.graph.NodesIn(c.band.Rect())
		c.band = nil
		c.Select(picked)
		if len(picked) > 0 {
			c.setState(StateAdornerActive)
		} else {
			c.setState(StateIdle)
		}
	case StateAdornerActive:
		if a := c.adorner.EndDrag(); a != nil {
			c.history.AddUserAction(a, Record)
		}
	}
	return true
}

// KeyUp handles Delete and the configured undo/redo shortcuts. Keys are
// ignored while a gesture is in progress.
func (c *Canvas) KeyUp(e KeyEvent) bool {
	if e.Handled {
		return false
	}
	defer c.checkInvariants()

	switch {
	case c.busy():
		return false
	case e.Key == KeyDelete:
		c.Select(nil)
		return true
	case c.opts.Shortcuts.Matches(ShortcutUndo, e):
		return c.Undo()
	case c.opts.Shortcuts.Matches(ShortcutRedo, e):
		return c.Redo()
	}
	return false
}

func (c *Canvas) busy() bool {
	return c.state == StateMultiSelecting || (c.adorner != nil && c.adorner.Dragging())
}

// finishGesture ends a drag or rubber band in progress. A drag is
// recorded as it stands; a rubber band is dropped without selecting.
func (c *Canvas) finishGesture() {
	if c.adorner != nil && c.adorner.Dragging() {
		if a := c.adorner.EndDrag(); a != nil {
			c.history.AddUserAction(a, Record)
		}
	}
	if c.state == StateMultiSelecting {
		c.band = nil
		c.setState(StateIdle)
	}
}

func (c *Canvas) Undo() bool {
	c.finishGesture()
	return c.history.Undo()
}

func (c *Canvas) Redo() bool {
	c.finishGesture()
	return c.history.Redo()
}

// Select replaces the selection with nodes as one recorded action. Asking
// for the current selection again records nothing. A gesture in progress
// is finished first.
func (c *Canvas) Select(nodes []*Node) {
	c.finishGesture()
	next := dedupe(nodes)
	if sameNodes(c.selection.items, next) {
		return
	}
	c.apply(NewSelectAction(c.selection, next), Record)
}

func (c *Canvas) AddNode(n *Node) error {
	if c.graph.Node(n.ID) != nil {
		return fmt.Errorf("add node %s: %w", n.ID, ErrNodeExists)
	}
	c.apply(NewAddNodeAction(c.graph, n), Record)
	return nil
}

// DeleteSelected removes the selected nodes and their connections as one
// action.
func (c *Canvas) DeleteSelected() bool {
	if c.selection.Empty() || c.busy() {
		return false
	}
	c.apply(NewDeleteNodesAction(c.graph, c.selection, c.selection.Items()), Record)
	return true
}

func (c *Canvas) Connect(source, target *Pin) (*Connection, error) {
	if err := c.graph.checkConnect(source, target); err != nil {
		return nil, err
	}
	conn := NewConnection(source, target)
	c.apply(NewConnectAction(c.graph, conn), Record)
	return conn, nil
}

func (c *Canvas) Disconnect(conn *Connection) error {
	if c.graph.indexOf(conn) < 0 {
		return fmt.Errorf("disconnect %s: %w", conn.ID, ErrUnknownConnection)
	}
	c.apply(NewDisconnectAction(c.graph, conn), Record)
	return nil
}

// Nudge moves the selection by a fixed offset as one action.
func (c *Canvas) Nudge(dx, dy float64) bool {
	if c.selection.Empty() || c.busy() || (dx == 0 && dy == 0) {
		return false
	}
	if c.adorner != nil && !c.adorner.CanMove {
		return false
	}
	nodes := c.selection.Items()
	old := make([]Point, len(nodes))
	next := make([]Point, len(nodes))
	for i, n := range nodes {
		old[i] = n.position
		next[i] = n.position.Add(Point{dx, dy})
	}
	c.apply(NewMoveAction(nodes, old, next), Record)
	return true
}

func (c *Canvas) apply(a *Action, rec Recording) {
	a.Do()
	c.history.AddUserAction(a, rec)
}

// onSelectionChanged creates the adorner on the first selection, rebinds
// it on every change and drops it when the selection empties. It also runs
// during undo and redo so the state follows replayed selections.
func (c *Canvas) onSelectionChanged(_, next []*Node) {
	if len(next) == 0 {
		if c.adorner != nil {
			c.adorner.Deactivate()
			c.adorner = nil
		}
		if c.state == StateAdornerActive {
			c.setState(StateIdle)
		}
		return
	}
	if c.adorner == nil {
		c.adorner = newAdorner(c.opts.Adorner)
		c.adorner.Activate(c.opts.Layer)
	}
	c.adorner.bind(next)
	if c.state == StateIdle {
		c.setState(StateAdornerActive)
	}
}

func (c *Canvas) setState(s State) {
	if c.state == s {
		return
	}
	c.log.Debugf("canvas: %s -> %s", c.state, s)
	c.state = s
}

func (c *Canvas) checkInvariants() {
	if c.state == StateAdornerActive && (c.selection.Empty() || c.adorner == nil) {
		panic("editor: adorner active with an empty selection")
	}
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
