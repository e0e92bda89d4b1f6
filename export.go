package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"flowcanvas/editor"
)

// diagramBounds is the union of every node and connection curve.
func diagramBounds(c *editor.Canvas) (editor.Rect, bool) {
	var r editor.Rect
	has := false
	add := func(o editor.Rect) {
		if !has {
			r, has = o, true
			return
		}
		r = r.Union(o)
	}
	for _, n := range c.Graph().Nodes() {
		add(n.Bounds())
	}
	for _, conn := range c.Graph().Connections() {
		for _, p := range conn.Curve().Sample(curveSamples) {
			add(editor.Rect{X: p.X, Y: p.Y})
		}
	}
	return r, has
}

// ExportToPNG draws the whole diagram, regardless of the viewport, one
// character cell per canvas unit.
func ExportToPNG(c *editor.Canvas, filename string) error {
	bounds, ok := diagramBounds(c)
	if !ok {
		return fmt.Errorf("nothing to export")
	}
	bounds = bounds.Inflate(exportPadding)
	px := func(p editor.Point) (float64, float64) {
		return (p.X - bounds.X) * charWidth, (p.Y - bounds.Y) * charHeight
	}

	dc := gg.NewContext(int(math.Ceil(bounds.Width*charWidth)), int(math.Ceil(bounds.Height*charHeight)))
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.SetLineWidth(1.0)
	dc.SetColor(color.Black)
	for _, conn := range c.Graph().Connections() {
		curve := conn.Curve()
		c1, c2 := curve.ControlPoints()
		x0, y0 := px(curve.Start)
		x1, y1 := px(c1)
		x2, y2 := px(c2)
		x3, y3 := px(curve.End)
		dc.MoveTo(x0, y0)
		dc.CubicTo(x1, y1, x2, y2, x3, y3)
		dc.Stroke()
		if conn.Target() != nil {
			drawArrowPNG(dc, x2, y2, x3, y3)
		}
	}

	for _, n := range c.Graph().Nodes() {
		drawNodePNG(dc, n, px)
	}
	return dc.SavePNG(filename)
}

func drawNodePNG(dc *gg.Context, n *editor.Node, px func(editor.Point) (float64, float64)) {
	b := n.Bounds()
	x, y := px(editor.Point{X: b.X, Y: b.Y})
	cx, cy := px(b.Center())
	w, h := b.Width*charWidth, b.Height*charHeight

	dc.Push()
	dc.RotateAbout(gg.Radians(n.Rotation()), cx, cy)
	dc.SetColor(color.Black)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	dc.DrawStringAnchored(n.Label, cx, cy, 0.5, 0.5)
	dc.Pop()

	for _, pin := range n.AllPins() {
		qx, qy := px(editor.PinCenter(pin))
		dc.DrawCircle(qx, qy, 3)
		if pin.Connected() {
			dc.Fill()
		} else {
			dc.Stroke()
		}
	}
}

func drawArrowPNG(dc *gg.Context, fx, fy, tx, ty float64) {
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	arrowSize := 6.0
	arrowAngle := 0.5
	dc.MoveTo(tx, ty)
	dc.LineTo(tx-arrowSize*dx+arrowSize*dy*arrowAngle, ty-arrowSize*dy-arrowSize*dx*arrowAngle)
	dc.LineTo(tx-arrowSize*dx-arrowSize*dy*arrowAngle, ty-arrowSize*dy+arrowSize*dx*arrowAngle)
	dc.ClosePath()
	dc.Fill()
}

// renderText draws the visible part of the canvas without trailing blanks.
func (m *model) renderText() string {
	width, height := m.width, m.height-statusHeight
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}
	lines := Render(m.canvas, nil, width, height)
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

func (m *model) exportVisualTXT(filename string) error {
	return os.WriteFile(filename, []byte(m.renderText()), 0o644)
}

func (m *model) copyToClipboard() error {
	return clipboard.WriteAll(m.renderText())
}

func (m *model) export(kind ExportKind) {
	var name string
	var err error
	switch kind {
	case ExportPNG:
		name = m.config.GetSavePath("flowcanvas.png")
		err = ExportToPNG(m.canvas, name)
	case ExportText:
		name = m.config.GetSavePath("flowcanvas.txt")
		err = m.exportVisualTXT(name)
	}
	if err != nil {
		m.log.Warnf("export %s: %v", name, err)
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "exported " + name
}
