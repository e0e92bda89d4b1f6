package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcanvas/editor"
)

func trimmed(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, " ")
	}
	return out
}

func TestRenderNode(t *testing.T) {
	c := editor.NewCanvas(editor.DefaultOptions())
	n := editor.NewNode("N1", editor.Point{X: 1, Y: 1}, editor.Size{Width: 10, Height: 3})
	require.NoError(t, c.Graph().AddNode(n))

	got := trimmed(Render(c, nil, 20, 5))
	assert.Equal(t, []string{
		"",
		" +--------+",
		" |N1      |",
		" +--------+",
		"",
	}, got)

	c.Select([]*editor.Node{n})
	got = trimmed(Render(c, nil, 20, 5))
	assert.Equal(t, " ##########", got[1], "selected nodes use a heavy border")
}

func TestRenderConnectionAndPins(t *testing.T) {
	c := editor.NewCanvas(editor.DefaultOptions())
	a := newDiagramNode("a", editor.Point{X: 0, Y: 0})
	b := newDiagramNode("b", editor.Point{X: 30, Y: 0})
	require.NoError(t, c.Graph().AddNode(a))
	require.NoError(t, c.Graph().AddNode(b))
	_, err := c.Connect(outPin(a), inPin(b))
	require.NoError(t, err)

	row := []rune(Render(c, nil, 50, 4)[1])
	assert.Equal(t, 'o', row[0], "free input pin")
	assert.Equal(t, '@', row[11], "connected output pin")
	assert.Equal(t, '.', row[20])
	assert.Equal(t, '>', row[29])
	assert.Equal(t, '@', row[30])
}

func TestRenderRubberBandAndAdorner(t *testing.T) {
	layer := &gridLayer{}
	opts := editor.DefaultOptions()
	opts.Layer = layer
	c := editor.NewCanvas(opts)
	n := editor.NewNode("N", editor.Point{X: 2, Y: 2}, editor.Size{Width: 8, Height: 3})
	require.NoError(t, c.Graph().AddNode(n))

	c.PointerMove(editor.PointerEvent{Position: editor.Point{X: 15, Y: 1}, Buttons: editor.ButtonLeft})
	c.PointerMove(editor.PointerEvent{Position: editor.Point{X: 18, Y: 3}, Buttons: editor.ButtonLeft})
	lines := Render(c, layer, 30, 8)
	assert.Equal(t, '┌', []rune(lines[1])[15])
	assert.Equal(t, '┘', []rune(lines[3])[18])

	c.PointerUp(editor.PointerEvent{Position: editor.Point{X: 18, Y: 3}})
	assert.Empty(t, c.Selection().Items())
	require.Nil(t, layer.adorner)

	c.Select([]*editor.Node{n})
	require.NotNil(t, layer.adorner)
	lines = Render(c, layer, 30, 8)
	assert.Equal(t, '.', []rune(lines[1])[1], "adorner frame corner")
	assert.Equal(t, '%', []rune(lines[5])[10], "resize grip")
	assert.Equal(t, '.', []rune(lines[1])[10], "frame ends on the last clickable column")
	assert.Equal(t, '.', []rune(lines[5])[1], "frame ends on the last clickable row")
	assert.NotEqual(t, '.', []rune(lines[1])[11])
	assert.NotEqual(t, '.', []rune(lines[6])[1])

	c.Select(nil)
	assert.Nil(t, layer.adorner)
}

func TestRenderFollowsViewport(t *testing.T) {
	c := editor.NewCanvas(editor.DefaultOptions())
	n := editor.NewNode("N", editor.Point{X: 10, Y: 5}, editor.Size{Width: 8, Height: 3})
	require.NoError(t, c.Graph().AddNode(n))
	c.Viewport().SetPan(editor.Point{X: 10, Y: 5})

	lines := Render(c, nil, 20, 4)
	assert.Equal(t, '+', []rune(lines[0])[0])
	assert.Equal(t, '+', []rune(lines[2])[7])
}
