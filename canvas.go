package main

import (
	"math"
	"strings"

	"flowcanvas/editor"
)

// gridLayer is the adorner layer of the terminal view. The canvas attaches
// the adorner while something is selected and the renderer draws its
// handles only while it is attached.
type gridLayer struct {
	adorner *editor.Adorner
}

func (l *gridLayer) Attach(a *editor.Adorner) { l.adorner = a }

func (l *gridLayer) Detach(a *editor.Adorner) {
	if l.adorner == a {
		l.adorner = nil
	}
}

type grid struct {
	cells         [][]rune
	width, height int
}

func newGrid(width, height int) *grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &grid{cells: make([][]rune, height), width: width, height: height}
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", width))
	}
	return g
}

func (g *grid) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y][x] = r
}

func (g *grid) text(x, y int, s string, maxLen int) {
	for i, r := range []rune(s) {
		if i >= maxLen {
			return
		}
		g.set(x+i, y, r)
	}
}

func (g *grid) lines() []string {
	out := make([]string, g.height)
	for i, row := range g.cells {
		out[i] = string(row)
	}
	return out
}

func cell(p editor.Point) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Render draws the diagram seen through the viewport: connections first,
// then nodes with their pins, then the rubber band and adorner handles.
func Render(c *editor.Canvas, layer *gridLayer, width, height int) []string {
	g := newGrid(width, height)
	vp := c.Viewport()

	for _, conn := range c.Graph().Connections() {
		drawConnection(g, vp, conn)
	}
	for _, n := range c.Graph().Nodes() {
		drawNode(g, vp, n)
	}
	if r, ok := c.RubberBand(); ok {
		x0, y0, x1, y1 := spanCells(vp, r)
		drawFrame(g, x0, y0, x1, y1, '┌', '┐', '└', '┘', '─', '│')
	}
	if layer != nil && layer.adorner != nil {
		drawAdorner(g, vp, layer.adorner)
	}
	return g.lines()
}

func drawConnection(g *grid, vp *editor.Viewport, conn *editor.Connection) {
	pts := conn.Curve().Sample(curveSamples)
	for _, p := range pts {
		x, y := cell(vp.CanvasToScreen(p))
		g.set(x, y, '.')
	}
	if conn.Target() == nil || len(pts) < 2 {
		return
	}
	// the end cell belongs to the pin, so the head goes on the last cell
	// before it
	ex, ey := cell(vp.CanvasToScreen(pts[len(pts)-1]))
	for i := len(pts) - 2; i >= 0; i-- {
		x, y := cell(vp.CanvasToScreen(pts[i]))
		if x != ex || y != ey {
			g.set(x, y, arrowHead(conn.Curve().EndAngle))
			return
		}
	}
}

// arrowHead points into the target pin, opposite the side it sits on.
func arrowHead(sideAngle float64) rune {
	switch sideAngle {
	case 0:
		return '<'
	case 90:
		return '^'
	case 180:
		return '>'
	default:
		return 'v'
	}
}

func drawNode(g *grid, vp *editor.Viewport, n *editor.Node) {
	corner, horizontal, vertical := '+', '-', '|'
	if n.Selected() {
		corner, horizontal, vertical = '#', '#', '#'
	}
	x0, y0, x1, y1 := boxCells(vp, n.Bounds())
	if x1 <= x0 || y1 <= y0 {
		g.set(x0, y0, corner)
		return
	}
	for x := x0; x <= x1; x++ {
		g.set(x, y0, horizontal)
		g.set(x, y1, horizontal)
	}
	for y := y0; y <= y1; y++ {
		g.set(x0, y, vertical)
		g.set(x1, y, vertical)
	}
	for _, p := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		g.set(p[0], p[1], corner)
	}
	if y1-y0 > 1 {
		g.text(x0+1, y0+1, n.Label, x1-x0-1)
	}

	for _, pin := range n.AllPins() {
		glyph := 'o'
		if pin.Connected() {
			glyph = '@'
		}
		x, y := cell(vp.CanvasToScreen(editor.PinCenter(pin)))
		g.set(clampInt(x, x0, x1), clampInt(y, y0, y1), glyph)
	}
}

// spanCells returns the cells holding the corners of r. Used for rectangles
// spanned between two pointer positions.
func spanCells(vp *editor.Viewport, r editor.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = cell(vp.CanvasToScreen(editor.Point{X: r.X, Y: r.Y}))
	x1, y1 = cell(vp.CanvasToScreen(editor.Point{X: r.Right(), Y: r.Bottom()}))
	return x0, y0, x1, y1
}

// boxCells returns the cells covered by r when its edges lie on cell
// boundaries: the right and bottom edges belong to the previous cell.
func boxCells(vp *editor.Viewport, r editor.Rect) (x0, y0, x1, y1 int) {
	x0, y0, x1, y1 = spanCells(vp, r)
	return x0, y0, x1 - 1, y1 - 1
}

func drawFrame(g *grid, x0, y0, x1, y1 int, tl, tr, bl, br, h, v rune) {
	for x := x0 + 1; x < x1 && h != 0; x++ {
		g.set(x, y0, h)
		g.set(x, y1, h)
	}
	for y := y0 + 1; y < y1 && v != 0; y++ {
		g.set(x0, y, v)
		g.set(x1, y, v)
	}
	g.set(x0, y0, tl)
	g.set(x1, y0, tr)
	g.set(x0, y1, bl)
	g.set(x1, y1, br)
}

func drawAdorner(g *grid, vp *editor.Viewport, a *editor.Adorner) {
	x0, y0, x1, y1 := boxCells(vp, a.Frame())
	drawFrame(g, x0, y0, x1, y1, '.', '.', '.', '.', 0, 0)
	if a.CanResize {
		x, y := cell(vp.CanvasToScreen(editor.Point{X: a.ResizeGrip().X, Y: a.ResizeGrip().Y}))
		g.set(x, y, '%')
	}
	if a.CanRotate {
		x, y := cell(vp.CanvasToScreen(editor.Point{X: a.RotateGrip().X, Y: a.RotateGrip().Y}))
		g.set(x, y, '@')
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
