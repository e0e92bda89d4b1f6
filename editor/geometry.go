package editor

import (
	"fmt"
	"math"
)

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

type Size struct {
	Width, Height float64
}

type Rect struct {
	X, Y, Width, Height float64
}

// RectFromPoints returns the axis-aligned rectangle spanned by a and b in
// any order.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

func (r Rect) Right() float64 { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether p lies inside r. All four edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects reports whether r and o overlap. Touching edges count.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() && r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

func (r Rect) Union(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  math.Max(r.Right(), o.Right()) - x,
		Height: math.Max(r.Bottom(), o.Bottom()) - y,
	}
}

func (r Rect) Inflate(d float64) Rect {
	return Rect{r.X - d, r.Y - d, r.Width + 2*d, r.Height + 2*d}
}

// CoordinateMapper translates a point from a node's local space into the
// space of the canvas that hosts the node.
type CoordinateMapper interface {
	ToCanvas(n *Node, local Point) Point
}

// NodeSpace maps node-local points by rotating them around the node center
// and offsetting by the node position.
type NodeSpace struct{}

func (NodeSpace) ToCanvas(n *Node, local Point) Point {
	p := local
	if n.rotation != 0 {
		c := Point{n.size.Width / 2, n.size.Height / 2}
		rad := n.rotation * math.Pi / 180
		sin, cos := math.Sincos(rad)
		d := p.Sub(c)
		p = Point{c.X + d.X*cos - d.Y*sin, c.Y + d.X*sin + d.Y*cos}
	}
	return p.Add(n.position)
}

// PinCenter returns the center of the pin's bounding box in canvas space.
func PinCenter(pin *Pin) Point {
	return MapPinCenter(NodeSpace{}, pin)
}

func MapPinCenter(m CoordinateMapper, pin *Pin) Point {
	n := pin.mustNode()
	return m.ToCanvas(n, n.pinBounds(pin).Center())
}

// PinSideAngle returns the cardinal angle in degrees of the side the pin is
// attached to, measured from the owning node's center in screen space (y
// grows downward, so 90 is the bottom side).
func PinSideAngle(pin *Pin) float64 {
	return MapPinSideAngle(NodeSpace{}, pin)
}

func MapPinSideAngle(m CoordinateMapper, pin *Pin) float64 {
	n := pin.mustNode()
	center := m.ToCanvas(n, Point{n.size.Width / 2, n.size.Height / 2})
	d := MapPinCenter(m, pin).Sub(center)
	return snapAngle(math.Atan2(d.Y, d.X))
}

func snapAngle(rad float64) float64 {
	if rad < 0 {
		rad += 2 * math.Pi
	}
	switch {
	case rad >= math.Pi/4 && rad < 3*math.Pi/4:
		return 90
	case rad >= 3*math.Pi/4 && rad < 5*math.Pi/4:
		return 180
	case rad >= 5*math.Pi/4 && rad < 7*math.Pi/4:
		return 270
	}
	return 0
}

// Curve is the rendered path of a connection: a cubic bezier whose control
// points leave each bound end along that end's side angle. A free end has no
// angle and is approached in a straight line.
type Curve struct {
	Start         Point
	End           Point
	StartAngle    float64
	EndAngle      float64
	HasStartAngle bool
	HasEndAngle   bool
}

// ControlPoints returns the two inner bezier control points.
func (c Curve) ControlPoints() (Point, Point) {
	d := math.Hypot(c.End.X-c.Start.X, c.End.Y-c.Start.Y) / 2
	if d < minControlDistance {
		d = minControlDistance
	}
	c1, c2 := c.Start, c.End
	if c.HasStartAngle {
		c1 = project(c.Start, c.StartAngle, d)
	}
	if c.HasEndAngle {
		c2 = project(c.End, c.EndAngle, d)
	}
	return c1, c2
}

// Sample returns n+1 points along the curve from Start to End.
func (c Curve) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	c1, c2 := c.ControlPoints()
	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		a, b, cc, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		points = append(points, Point{
			X: a*c.Start.X + b*c1.X + cc*c2.X + d*c.End.X,
			Y: a*c.Start.Y + b*c1.Y + cc*c2.Y + d*c.End.Y,
		})
	}
	return points
}

func project(p Point, deg, dist float64) Point {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Point{p.X + cos*dist, p.Y + sin*dist}
}

// UpdateConnectionPath recomputes the curve of conn from its bound pins.
func UpdateConnectionPath(conn *Connection) {
	m := conn.mapper
	if m == nil {
		m = NodeSpace{}
	}
	curve := Curve{Start: conn.sourcePoint, End: conn.targetPoint}
	if conn.source != nil {
		curve.Start = MapPinCenter(m, conn.source)
		curve.StartAngle = MapPinSideAngle(m, conn.source)
		curve.HasStartAngle = true
	}
	if conn.target != nil {
		curve.End = MapPinCenter(m, conn.target)
		curve.EndAngle = MapPinSideAngle(m, conn.target)
		curve.HasEndAngle = true
	}
	conn.curve = curve
}

// Viewport is the pan/zoom transform between screen and canvas space.
type Viewport struct {
	pan      Point
	zoom     float64
	updating bool
	onChange func(*Viewport)
}

func NewViewport() *Viewport {
	return &Viewport{zoom: 1}
}

// OnChange registers fn to run after the transform changes. Changes made
// from inside fn are applied without notifying again.
func (v *Viewport) OnChange(fn func(*Viewport)) {
	v.onChange = fn
}

func (v *Viewport) Pan() Point { return v.pan }
func (v *Viewport) Zoom() float64 { return v.zoom }

func (v *Viewport) SetPan(p Point) {
	v.update(func() { v.pan = p })
}

func (v *Viewport) PanBy(dx, dy float64) {
	v.SetPan(v.pan.Add(Point{dx, dy}))
}

func (v *Viewport) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	v.update(func() { v.zoom = z })
}

func (v *Viewport) update(apply func()) {
	apply()
	if v.updating || v.onChange == nil {
		return
	}
	v.updating = true
	defer func() { v.updating = false }()
	v.onChange(v)
}

func (v *Viewport) ScreenToCanvas(p Point) Point {
	return Point{p.X/v.zoom + v.pan.X, p.Y/v.zoom + v.pan.Y}
}

func (v *Viewport) CanvasToScreen(p Point) Point {
	return Point{(p.X - v.pan.X) * v.zoom, (p.Y - v.pan.Y) * v.zoom}
}
