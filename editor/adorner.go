package editor

import "math"

// Layer is the rendering surface an adorner is attached to while active.
type Layer interface {
	Attach(a *Adorner)
	Detach(a *Adorner)
}

type AdornerOptions struct {
	CanMove   bool
	CanResize bool
	CanRotate bool
}

func DefaultAdornerOptions() AdornerOptions {
	return AdornerOptions{CanMove: true, CanResize: true}
}

// Adorner is the handle group drawn around the selection. It references the
// adorned nodes without owning them and keeps only drag state of its own.
type Adorner struct {
	AdornerOptions

	elements []*Node
	layer    Layer
	active   bool

	dragging  bool
	handle    Handle
	origin    Point
	prev      Point
	frame     Rect
	startPos  []Point
	startSize []Size
	startRot  []float64
}

func newAdorner(opts AdornerOptions) *Adorner {
	return &Adorner{AdornerOptions: opts}
}

// Activate attaches the adorner to layer. A second call is a no-op.
func (a *Adorner) Activate(layer Layer) {
	if a.active {
		return
	}
	a.active = true
	a.layer = layer
	if layer != nil {
		layer.Attach(a)
	}
}

// Deactivate detaches the adorner. Calling it on an inactive adorner does
// nothing.
func (a *Adorner) Deactivate() {
	if !a.active {
		return
	}
	a.active = false
	a.dragging = false
	if a.layer != nil {
		a.layer.Detach(a)
	}
	a.layer = nil
}

func (a *Adorner) Active() bool { return a.active }
func (a *Adorner) Dragging() bool { return a.dragging }
func (a *Adorner) Handle() Handle { return a.handle }

func (a *Adorner) Elements() []*Node {
	return append([]*Node(nil), a.elements...)
}

func (a *Adorner) bind(nodes []*Node) {
	a.elements = append(a.elements[:0], nodes...)
}

// Bounds is the union of the adorned nodes' bounds.
func (a *Adorner) Bounds() Rect {
	if len(a.elements) == 0 {
		return Rect{}
	}
	r := a.elements[0].Bounds()
	for _, n := range a.elements[1:] {
		r = r.Union(n.Bounds())
	}
	return r
}

// Frame is the outer edge of the handle ring.
func (a *Adorner) Frame() Rect {
	return a.Bounds().Inflate(HandleSize)
}

func (a *Adorner) ResizeGrip() Rect {
	f := a.Frame()
	return Rect{f.Right() - HandleSize, f.Bottom() - HandleSize, HandleSize, HandleSize}
}

func (a *Adorner) RotateGrip() Rect {
	f := a.Frame()
	return Rect{f.Center().X - HandleSize/2, f.Y - 2*HandleSize, HandleSize, HandleSize}
}

// HitTest returns the handle under p. The resize and rotate grips are
// skipped when their capability is off. The frame ring always reports
// HandleMove so a click on it keeps the selection; BeginDrag refuses the
// move when CanMove is off. Points inside the adorned bounds report
// HandleNone so the canvas can resolve them against the nodes first.
func (a *Adorner) HitTest(p Point) Handle {
	if len(a.elements) == 0 {
		return HandleNone
	}
	if a.CanRotate && a.RotateGrip().Contains(p) {
		return HandleRotate
	}
	if a.CanResize && a.ResizeGrip().Contains(p) {
		return HandleResize
	}
	if a.Frame().Contains(p) && !a.Bounds().Contains(p) {
		return HandleMove
	}
	return HandleNone
}

// BeginDrag starts a gesture on handle at p. It reports false when the
// handle's capability is off.
func (a *Adorner) BeginDrag(h Handle, p Point) bool {
	switch h {
	case HandleMove:
		if !a.CanMove {
			return false
		}
	case HandleResize:
		if !a.CanResize {
			return false
		}
	case HandleRotate:
		if !a.CanRotate {
			return false
		}
	default:
		return false
	}
	a.dragging = true
	a.handle = h
	a.origin = p
	a.prev = p
	a.frame = a.Bounds()
	a.startPos = make([]Point, len(a.elements))
	a.startSize = make([]Size, len(a.elements))
	a.startRot = make([]float64, len(a.elements))
	for i, n := range a.elements {
		a.startPos[i] = n.position
		a.startSize[i] = n.size
		a.startRot[i] = n.rotation
	}
	return true
}

// Drag applies the pointer movement since the last call to every adorned
// node.
func (a *Adorner) Drag(p Point) {
	if !a.dragging {
		return
	}
	delta := p.Sub(a.prev)
	a.prev = p
	switch a.handle {
	case HandleMove:
		for _, n := range a.elements {
			n.MoveBy(delta.X, delta.Y)
		}
	case HandleResize:
		a.scaleTo(p)
	case HandleRotate:
		a.rotateTo(p)
	}
}

func (a *Adorner) scaleTo(p Point) {
	total := p.Sub(a.origin)
	sx, sy := 1.0, 1.0
	if a.frame.Width > 0 {
		sx = math.Max((a.frame.Width+total.X)/a.frame.Width, 0.01)
	}
	if a.frame.Height > 0 {
		sy = math.Max((a.frame.Height+total.Y)/a.frame.Height, 0.01)
	}
	for i, n := range a.elements {
		off := a.startPos[i].Sub(Point{a.frame.X, a.frame.Y})
		n.SetSize(Size{a.startSize[i].Width * sx, a.startSize[i].Height * sy})
		n.SetPosition(Point{a.frame.X + off.X*sx, a.frame.Y + off.Y*sy})
	}
}

func (a *Adorner) rotateTo(p Point) {
	c := a.frame.Center()
	from := math.Atan2(a.origin.Y-c.Y, a.origin.X-c.X)
	to := math.Atan2(p.Y-c.Y, p.X-c.X)
	deg := (to - from) * 180 / math.Pi
	for i, n := range a.elements {
		n.SetRotation(math.Mod(a.startRot[i]+deg+360, 360))
	}
}

// EndDrag stops the gesture and returns the single action describing it,
// or nil when nothing changed. The action's effect is already applied.
func (a *Adorner) EndDrag() *Action {
	if !a.dragging {
		return nil
	}
	a.dragging = false
	nodes := a.Elements()
	switch a.handle {
	case HandleMove:
		next := make([]Point, len(nodes))
		changed := false
		for i, n := range nodes {
			next[i] = n.position
			changed = changed || next[i] != a.startPos[i]
		}
		if changed {
			return NewMoveAction(nodes, a.startPos, next)
		}
	case HandleResize:
		nextPos := make([]Point, len(nodes))
		nextSize := make([]Size, len(nodes))
		changed := false
		for i, n := range nodes {
			nextPos[i], nextSize[i] = n.position, n.size
			changed = changed || nextPos[i] != a.startPos[i] || nextSize[i] != a.startSize[i]
		}
		if changed {
			return NewScaleAction(nodes, a.startPos, nextPos, a.startSize, nextSize)
		}
	case HandleRotate:
		next := make([]float64, len(nodes))
		changed := false
		for i, n := range nodes {
			next[i] = n.rotation
			changed = changed || next[i] != a.startRot[i]
		}
		if changed {
			return NewRotateAction(nodes, a.startRot, next)
		}
	}
	return nil
}
