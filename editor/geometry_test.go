package editor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectContainsIsInclusive(t *testing.T) {
	r := Rect{0, 0, 10, 6}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{10, 6}, true},
		{Point{10, 0}, true},
		{Point{5, 3}, true},
		{Point{10.1, 3}, false},
		{Point{-0.1, 3}, false},
		{Point{5, 6.1}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Contains(tt.p), "point %v", tt.p)
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	assert.True(t, r.Intersects(Rect{5, 5, 10, 10}))
	assert.True(t, r.Intersects(Rect{10, 10, 5, 5}), "corner touch")
	assert.True(t, r.Intersects(Rect{-5, 3, 5, 1}), "edge touch")
	assert.True(t, r.Intersects(Rect{2, 2, 1, 1}), "contained")
	assert.False(t, r.Intersects(Rect{10.5, 0, 5, 5}))
	assert.False(t, r.Intersects(Rect{0, -3, 5, 2.5}))
}

func TestRectFromPointsNormalizes(t *testing.T) {
	assert.Equal(t, Rect{2, 1, 8, 4}, RectFromPoints(Point{10, 1}, Point{2, 5}))
}

func TestPinCenter(t *testing.T) {
	n := NewNode("n", Point{20, 30}, Size{10, 6})
	right := n.AddPin(SideRight, "out")
	left := n.AddPin(SideLeft, "in")
	top := n.AddPin(SideTop, "t")
	bottom := n.AddPin(SideBottom, "b")

	assert.Equal(t, Point{30, 33}, PinCenter(right))
	assert.Equal(t, Point{20, 33}, PinCenter(left))
	assert.Equal(t, Point{25, 30}, PinCenter(top))
	assert.Equal(t, Point{25, 36}, PinCenter(bottom))
}

func TestPinSideAngle(t *testing.T) {
	n := NewNode("n", Point{0, 0}, Size{10, 6})
	pins := map[Side]*Pin{
		SideRight:  n.AddPin(SideRight, "r"),
		SideBottom: n.AddPin(SideBottom, "b"),
		SideLeft:   n.AddPin(SideLeft, "l"),
		SideTop:    n.AddPin(SideTop, "t"),
	}
	want := map[Side]float64{SideRight: 0, SideBottom: 90, SideLeft: 180, SideTop: 270}
	for side, pin := range pins {
		assert.Equal(t, want[side], PinSideAngle(pin), side.String())
	}
}

func TestPinSideAngleSnapsOffCenterPins(t *testing.T) {
	n := NewNode("n", Point{0, 0}, Size{10, 6})
	upper := n.AddPin(SideRight, "upper")
	lower := n.AddPin(SideRight, "lower")

	assert.Equal(t, Point{10, 2}, PinCenter(upper))
	assert.Equal(t, Point{10, 4}, PinCenter(lower))
	assert.Equal(t, 0.0, PinSideAngle(upper))
	assert.Equal(t, 0.0, PinSideAngle(lower))
}

func TestPinSideAngleFollowsRotation(t *testing.T) {
	n := NewNode("n", Point{0, 0}, Size{10, 6})
	p := n.AddPin(SideRight, "out")
	n.SetRotation(90)

	c := PinCenter(p)
	assert.InDelta(t, 5, c.X, 1e-9)
	assert.InDelta(t, 8, c.Y, 1e-9)
	assert.Equal(t, 90.0, PinSideAngle(p))
}

func TestSnapAngleBuckets(t *testing.T) {
	tests := []struct {
		rad  float64
		want float64
	}{
		{0, 0},
		{math.Pi/4 - 0.01, 0},
		{math.Pi / 4, 90},
		{3*math.Pi/4 - 0.01, 90},
		{3 * math.Pi / 4, 180},
		{-math.Pi + 0.01, 180},
		{5 * math.Pi / 4, 270},
		{-math.Pi / 2, 270},
		{7 * math.Pi / 4, 0},
		{-0.1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, snapAngle(tt.rad), "rad %v", tt.rad)
	}
}

func TestPinWithoutNodePanics(t *testing.T) {
	orphan := &Pin{Name: "orphan"}
	assert.Panics(t, func() { PinCenter(orphan) })
	assert.Panics(t, func() { PinSideAngle(orphan) })
}

func TestUpdateConnectionPathWithFreeEnd(t *testing.T) {
	n := NewNode("n", Point{0, 0}, Size{10, 6})
	out := n.AddPin(SideRight, "out")

	c := NewDraftConnection(out, Point{40, 20})
	curve := c.Curve()
	assert.Equal(t, Point{10, 3}, curve.Start)
	assert.True(t, curve.HasStartAngle)
	assert.Equal(t, 0.0, curve.StartAngle)
	assert.Equal(t, Point{40, 20}, curve.End)
	assert.False(t, curve.HasEndAngle)

	c1, c2 := curve.ControlPoints()
	assert.Greater(t, c1.X, curve.Start.X)
	assert.InDelta(t, curve.Start.Y, c1.Y, 1e-9)
	assert.Equal(t, curve.End, c2, "free end is approached straight")

	c.MoveFreeEnd(Point{50, 50})
	assert.Equal(t, Point{50, 50}, c.Curve().End)
}

func TestCurveSampleEndpoints(t *testing.T) {
	curve := Curve{Start: Point{0, 0}, End: Point{30, 10}, HasStartAngle: true, HasEndAngle: true, EndAngle: 180}
	pts := curve.Sample(8)
	require.Len(t, pts, 9)
	assert.Equal(t, curve.Start, pts[0])
	assert.Equal(t, curve.End, pts[len(pts)-1])
}

func TestViewportTransforms(t *testing.T) {
	v := NewViewport()
	v.SetPan(Point{10, 5})
	v.SetZoom(2)

	p := v.ScreenToCanvas(Point{4, 6})
	assert.Equal(t, Point{12, 8}, p)
	assert.Equal(t, Point{4, 6}, v.CanvasToScreen(p))

	v.SetZoom(0)
	assert.Equal(t, 2.0, v.Zoom(), "non-positive zoom is ignored")
}

func TestViewportChangeHandlerDoesNotReenter(t *testing.T) {
	v := NewViewport()
	calls := 0
	v.OnChange(func(v *Viewport) {
		calls++
		v.SetZoom(v.Zoom() * 2)
	})

	v.PanBy(3, 4)
	assert.Equal(t, 1, calls)
	assert.Equal(t, Point{3, 4}, v.Pan())
	assert.Equal(t, 2.0, v.Zoom())
}
