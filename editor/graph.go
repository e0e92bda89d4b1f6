package editor

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kataras/golog"
)

type NodeID string

type ConnectionID string

// ConnectRule lets a node type restrict which pins its own pins may be wired to.
type ConnectRule interface {
	CanConnectToPin(own, candidate *Pin) bool
}

type ConnectRuleFunc func(own, candidate *Pin) bool

func (f ConnectRuleFunc) CanConnectToPin(own, candidate *Pin) bool {
	return f(own, candidate)
}

// NodeObserver is notified synchronously after a node's position, size or
// rotation changes.
type NodeObserver interface {
	OnBoundElementChanged(n *Node)
}

type Node struct {
	ID    NodeID
	Label string
	Rule  ConnectRule

	position  Point
	size      Size
	rotation  float64
	selected  bool
	pins      [len(sides)][]*Pin
	observers []NodeObserver
}

func NewNode(label string, pos Point, size Size) *Node {
	return &Node{
		ID:       NodeID(uuid.NewString()),
		Label:    label,
		position: pos,
		size:     clampSize(size),
	}
}

func clampSize(s Size) Size {
	if s.Width < MinNodeWidth {
		s.Width = MinNodeWidth
	}
	if s.Height < MinNodeHeight {
		s.Height = MinNodeHeight
	}
	return s
}

func (n *Node) Position() Point { return n.position }
func (n *Node) Size() Size { return n.size }
func (n *Node) Rotation() float64 { return n.rotation }
func (n *Node) Selected() bool { return n.selected }

// Bounds is the axis-aligned box of the node, ignoring rotation.
func (n *Node) Bounds() Rect {
	return Rect{n.position.X, n.position.Y, n.size.Width, n.size.Height}
}

func (n *Node) SetPosition(p Point) {
	if p == n.position {
		return
	}
	n.position = p
	n.notify()
}

func (n *Node) MoveBy(dx, dy float64) {
	n.SetPosition(n.position.Add(Point{dx, dy}))
}

func (n *Node) SetSize(s Size) {
	s = clampSize(s)
	if s == n.size {
		return
	}
	n.size = s
	n.notify()
}

func (n *Node) SetRotation(deg float64) {
	if deg == n.rotation {
		return
	}
	n.rotation = deg
	n.notify()
}

// AddPin appends a pin to the given side. Pins on a side are spread evenly
// along it in insertion order.
func (n *Node) AddPin(side Side, name string) *Pin {
	p := &Pin{Name: name, side: side, node: n}
	n.pins[side] = append(n.pins[side], p)
	n.notify()
	return p
}

// Pins returns the pins on one side in order.
func (n *Node) Pins(side Side) []*Pin {
	return append([]*Pin(nil), n.pins[side]...)
}

func (n *Node) AllPins() []*Pin {
	var all []*Pin
	for _, s := range sides {
		all = append(all, n.pins[s]...)
	}
	return all
}

func (n *Node) pinBounds(p *Pin) Rect {
	list := n.pins[p.side]
	idx := p.Index()
	slot := float64(idx+1) / float64(len(list)+1)
	var c Point
	switch p.side {
	case SideLeft:
		c = Point{0, n.size.Height * slot}
	case SideRight:
		c = Point{n.size.Width, n.size.Height * slot}
	case SideTop:
		c = Point{n.size.Width * slot, 0}
	case SideBottom:
		c = Point{n.size.Width * slot, n.size.Height}
	}
	return Rect{c.X - PinSize/2, c.Y - PinSize/2, PinSize, PinSize}
}

func (n *Node) observe(o NodeObserver) {
	for _, existing := range n.observers {
		if existing == o {
			return
		}
	}
	n.observers = append(n.observers, o)
}

func (n *Node) unobserve(o NodeObserver) {
	for i, existing := range n.observers {
		if existing == o {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

func (n *Node) notify() {
	for _, o := range append([]NodeObserver(nil), n.observers...) {
		o.OnBoundElementChanged(n)
	}
}

// Pin is a connection point on a node's edge. The node reference is a
// back-reference only; the node owns the pin.
type Pin struct {
	Name string

	side      Side
	node      *Node
	connected bool
}

func (p *Pin) Node() *Node { return p.node }
func (p *Pin) Side() Side { return p.side }
func (p *Pin) Connected() bool { return p.connected }

func (p *Pin) Index() int {
	for i, q := range p.mustNode().pins[p.side] {
		if q == p {
			return i
		}
	}
	panic(fmt.Sprintf("editor: pin %q not listed on its node", p.Name))
}

// CanConnectTo asks the owning node's rule whether p may be wired to other.
// Nodes without a rule accept every pin.
func (p *Pin) CanConnectTo(other *Pin) bool {
	n := p.mustNode()
	if n.Rule == nil {
		return true
	}
	return n.Rule.CanConnectToPin(p, other)
}

func (p *Pin) mustNode() *Node {
	if p == nil {
		panic("editor: nil pin")
	}
	if p.node == nil {
		panic(fmt.Sprintf("editor: pin %q has no owning node", p.Name))
	}
	return p.node
}

func (p *Pin) String() string {
	if p.node == nil {
		return p.Name
	}
	return fmt.Sprintf("%s.%s", p.node.Label, p.Name)
}

// Connection is an edge between a source and a target pin. Either end may be
// a free point instead of a pin, but never both.
type Connection struct {
	ID ConnectionID

	source      *Pin
	target      *Pin
	sourcePoint Point
	targetPoint Point
	curve       Curve
	mapper      CoordinateMapper
	store       *Graph
	updating    bool
}

func NewConnection(source, target *Pin) *Connection {
	if source == nil && target == nil {
		panic("editor: connection needs at least one bound endpoint")
	}
	c := &Connection{ID: ConnectionID(uuid.NewString()), source: source, target: target}
	if source == nil {
		c.sourcePoint = PinCenter(target)
	}
	if target == nil {
		c.targetPoint = PinCenter(source)
	}
	UpdateConnectionPath(c)
	return c
}

// NewDraftConnection starts a connection from source whose target end
// follows the pointer at free.
func NewDraftConnection(source *Pin, free Point) *Connection {
	c := NewConnection(source, nil)
	c.targetPoint = free
	UpdateConnectionPath(c)
	return c
}

func (c *Connection) Source() *Pin { return c.source }
func (c *Connection) Target() *Pin { return c.target }
func (c *Connection) Curve() Curve { return c.curve }

func (c *Connection) bound() bool {
	return c.source != nil && c.target != nil
}

// DetachSource converts the source end into a free point at p.
func (c *Connection) DetachSource(p Point) error {
	if c.source == nil || c.target == nil {
		return fmt.Errorf("detach source of %s: %w", c.ID, ErrNoBoundEndpoint)
	}
	old := c.source
	c.source = nil
	c.sourcePoint = p
	c.rebind(old)
	return nil
}

// DetachTarget converts the target end into a free point at p.
func (c *Connection) DetachTarget(p Point) error {
	if c.target == nil || c.source == nil {
		return fmt.Errorf("detach target of %s: %w", c.ID, ErrNoBoundEndpoint)
	}
	old := c.target
	c.target = nil
	c.targetPoint = p
	c.rebind(old)
	return nil
}

func (c *Connection) AttachSource(pin *Pin) error {
	if c.source == pin {
		return nil
	}
	if err := c.checkAttach(pin, c.target, pin, c.target); err != nil {
		return err
	}
	old := c.source
	c.source = pin
	c.rebind(old)
	return nil
}

func (c *Connection) AttachTarget(pin *Pin) error {
	if c.target == pin {
		return nil
	}
	if err := c.checkAttach(pin, c.source, c.source, pin); err != nil {
		return err
	}
	old := c.target
	c.target = pin
	c.rebind(old)
	return nil
}

func (c *Connection) checkAttach(pin, other, source, target *Pin) error {
	pin.mustNode()
	if other == nil {
		return nil
	}
	if !pin.CanConnectTo(other) || !other.CanConnectTo(pin) {
		return fmt.Errorf("attach %s to %s: %w", pin, other, ErrConnectionRejected)
	}
	if c.store != nil && c.store.HasConnection(source, target) {
		return fmt.Errorf("attach %s -> %s: %w", source, target, ErrConnectionExists)
	}
	return nil
}

// MoveFreeEnd moves whichever end is not bound to a pin.
func (c *Connection) MoveFreeEnd(p Point) {
	switch {
	case c.source == nil:
		c.sourcePoint = p
	case c.target == nil:
		c.targetPoint = p
	default:
		return
	}
	UpdateConnectionPath(c)
}

// OnBoundElementChanged recomputes the path once. Notifications raised while
// the recomputation runs are dropped.
func (c *Connection) OnBoundElementChanged(*Node) {
	if c.updating {
		return
	}
	c.updating = true
	defer func() { c.updating = false }()
	UpdateConnectionPath(c)
}

// rebind refreshes observer registrations and pin flags after an end
// changed, then recomputes the path.
func (c *Connection) rebind(old *Pin) {
	if c.store != nil {
		if old != nil {
			if !c.references(old.node) {
				old.node.unobserve(c)
			}
			c.store.refreshPin(old)
		}
		c.observeNodes()
		c.store.refreshPin(c.source)
		c.store.refreshPin(c.target)
	}
	UpdateConnectionPath(c)
}

func (c *Connection) references(n *Node) bool {
	return (c.source != nil && c.source.node == n) || (c.target != nil && c.target.node == n)
}

func (c *Connection) observeNodes() {
	if c.source != nil {
		c.source.node.observe(c)
	}
	if c.target != nil {
		c.target.node.observe(c)
	}
}

func (c *Connection) unobserveNodes() {
	if c.source != nil {
		c.source.node.unobserve(c)
	}
	if c.target != nil {
		c.target.node.unobserve(c)
	}
}

// Graph is the topology store. It owns nodes and connections and keeps at
// most one connection per ordered pair of bound pins.
type Graph struct {
	nodes       []*Node
	byID        map[NodeID]*Node
	connections []*Connection
	mapper      CoordinateMapper
	log         *golog.Logger
}

func NewGraph(mapper CoordinateMapper, logger *golog.Logger) *Graph {
	if mapper == nil {
		mapper = NodeSpace{}
	}
	if logger == nil {
		logger = silentLogger()
	}
	return &Graph{
		nodes:       make([]*Node, 0),
		byID:        make(map[NodeID]*Node),
		connections: make([]*Connection, 0),
		mapper:      mapper,
		log:         logger,
	}
}

func (g *Graph) Mapper() CoordinateMapper { return g.mapper }

func (g *Graph) AddNode(n *Node) error {
	return g.InsertNode(len(g.nodes), n)
}

// InsertNode places n at z-order index i; later nodes draw on top.
func (g *Graph) InsertNode(i int, n *Node) error {
	if _, exists := g.byID[n.ID]; exists {
		return fmt.Errorf("add node %s: %w", n.ID, ErrNodeExists)
	}
	if i < 0 || i > len(g.nodes) {
		return fmt.Errorf("insert node at %d of %d: %w", i, len(g.nodes), ErrIndexOutOfRange)
	}
	g.nodes = append(g.nodes, nil)
	copy(g.nodes[i+1:], g.nodes[i:])
	g.nodes[i] = n
	g.byID[n.ID] = n
	return nil
}

// RemoveNode deletes the node and every connection touching one of its
// pins. It returns the node's former z-order index and the removed
// connections in store order, or -1 when the node is unknown.
func (g *Graph) RemoveNode(id NodeID) (int, []*Connection) {
	n, ok := g.byID[id]
	if !ok {
		return -1, nil
	}
	var removed []*Connection
	for _, c := range g.Connections() {
		if c.references(n) {
			g.Remove(c)
			removed = append(removed, c)
		}
	}
	idx := g.IndexOfNode(n)
	g.nodes = append(g.nodes[:idx], g.nodes[idx+1:]...)
	delete(g.byID, id)
	g.log.Debugf("removed node %s with %d connections", n.Label, len(removed))
	return idx, removed
}

func (g *Graph) Node(id NodeID) *Node {
	return g.byID[id]
}

func (g *Graph) IndexOfNode(n *Node) int {
	for i, m := range g.nodes {
		if m == n {
			return i
		}
	}
	return -1
}

func (g *Graph) Nodes() []*Node {
	return append([]*Node(nil), g.nodes...)
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

// HasConnection reports whether a connection from source to target exists.
// Pairs with a free end never match.
func (g *Graph) HasConnection(source, target *Pin) bool {
	if source == nil || target == nil {
		return false
	}
	for _, c := range g.connections {
		if c.source == source && c.target == target {
			return true
		}
	}
	return false
}

func (g *Graph) AddConnection(c *Connection) error {
	return g.InsertRange(len(g.connections), []*Connection{c})
}

// TryAddConnection is AddConnection reporting failure as false.
func (g *Graph) TryAddConnection(c *Connection) bool {
	if err := g.AddConnection(c); err != nil {
		g.log.Debugf("try add connection: %v", err)
		return false
	}
	return true
}

func (g *Graph) AddRange(cs []*Connection) error {
	return g.InsertRange(len(g.connections), cs)
}

// InsertRange inserts cs at index i. The whole batch is validated against
// the current store and against itself before anything is inserted.
func (g *Graph) InsertRange(i int, cs []*Connection) error {
	if i < 0 || i > len(g.connections) {
		return fmt.Errorf("insert connections at %d of %d: %w", i, len(g.connections), ErrIndexOutOfRange)
	}
	type pair struct{ source, target *Pin }
	seen := make(map[pair]bool, len(cs))
	members := make(map[*Connection]bool, len(cs))
	for _, c := range cs {
		if members[c] || g.indexOf(c) >= 0 {
			return fmt.Errorf("add connection %s: %w", c.ID, ErrConnectionExists)
		}
		members[c] = true
		if !c.bound() {
			continue
		}
		k := pair{c.source, c.target}
		if seen[k] || g.HasConnection(c.source, c.target) {
			return fmt.Errorf("add connection %s -> %s: %w", c.source, c.target, ErrConnectionExists)
		}
		seen[k] = true
	}

	tail := append([]*Connection(nil), g.connections[i:]...)
	g.connections = append(append(g.connections[:i], cs...), tail...)
	for _, c := range cs {
		c.store = g
		c.mapper = g.mapper
		c.observeNodes()
		g.refreshPin(c.source)
		g.refreshPin(c.target)
		UpdateConnectionPath(c)
	}
	return nil
}

// Connect creates and stores a connection between two pins after both
// sides' rules accepted it.
func (g *Graph) Connect(source, target *Pin) (*Connection, error) {
	if err := g.checkConnect(source, target); err != nil {
		return nil, err
	}
	c := NewConnection(source, target)
	if err := g.AddConnection(c); err != nil {
		return nil, err
	}
	return c, nil
}

// checkConnect asks both pins' rules and rejects a pair that is already
// connected.
func (g *Graph) checkConnect(source, target *Pin) error {
	source.mustNode()
	target.mustNode()
	if !source.CanConnectTo(target) || !target.CanConnectTo(source) {
		g.log.Debugf("connection %s -> %s vetoed", source, target)
		return fmt.Errorf("connect %s -> %s: %w", source, target, ErrConnectionRejected)
	}
	if g.HasConnection(source, target) {
		return fmt.Errorf("connect %s -> %s: %w", source, target, ErrConnectionExists)
	}
	return nil
}

// RemoveConnection removes the connection from source to target, reporting
// whether one existed.
func (g *Graph) RemoveConnection(source, target *Pin) bool {
	for _, c := range g.connections {
		if c.source == source && c.target == target && c.bound() {
			g.Remove(c)
			return true
		}
	}
	return false
}

func (g *Graph) Remove(c *Connection) error {
	i := g.indexOf(c)
	if i < 0 {
		return fmt.Errorf("remove connection %s: %w", c.ID, ErrUnknownConnection)
	}
	return g.RemoveAt(i)
}

func (g *Graph) RemoveAt(i int) error {
	if i < 0 || i >= len(g.connections) {
		return fmt.Errorf("remove connection %d of %d: %w", i, len(g.connections), ErrIndexOutOfRange)
	}
	c := g.connections[i]
	g.connections = append(g.connections[:i], g.connections[i+1:]...)
	c.unobserveNodes()
	c.store = nil
	g.refreshPin(c.source)
	g.refreshPin(c.target)
	return nil
}

// GetConnection returns the first connection that has pin at either end.
func (g *Graph) GetConnection(pin *Pin) *Connection {
	for _, c := range g.connections {
		if c.source == pin || c.target == pin {
			return c
		}
	}
	return nil
}

func (g *Graph) ConnectionsOf(n *Node) []*Connection {
	var out []*Connection
	for _, c := range g.connections {
		if c.references(n) {
			out = append(out, c)
		}
	}
	return out
}

func (g *Graph) ConnectionAt(i int) (*Connection, error) {
	if i < 0 || i >= len(g.connections) {
		return nil, fmt.Errorf("connection %d of %d: %w", i, len(g.connections), ErrIndexOutOfRange)
	}
	return g.connections[i], nil
}

func (g *Graph) Connections() []*Connection {
	return append([]*Connection(nil), g.connections...)
}

func (g *Graph) ConnectionCount() int { return len(g.connections) }

func (g *Graph) indexOf(c *Connection) int {
	for i, x := range g.connections {
		if x == c {
			return i
		}
	}
	return -1
}

func (g *Graph) refreshPin(p *Pin) {
	if p == nil {
		return
	}
	p.connected = g.GetConnection(p) != nil
}
