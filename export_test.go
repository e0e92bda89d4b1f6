package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcanvas/editor"
)

func TestExportToPNG(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "out.png")
	assert.Error(t, ExportToPNG(m.canvas, path), "empty diagram")

	a := m.addTestNode(t, "a", 0, 0)
	b := m.addTestNode(t, "b", 30, 4)
	_, err := m.canvas.Connect(outPin(a), inPin(b))
	require.NoError(t, err)
	b.SetRotation(30)

	require.NoError(t, ExportToPNG(m.canvas, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestDiagramBoundsCoversCurves(t *testing.T) {
	m := newTestModel(t)
	_, ok := diagramBounds(m.canvas)
	assert.False(t, ok)

	a := m.addTestNode(t, "a", 0, 0)
	b := m.addTestNode(t, "b", 30, 10)
	_, err := m.canvas.Connect(outPin(a), inPin(b))
	require.NoError(t, err)

	r, ok := diagramBounds(m.canvas)
	require.True(t, ok)
	assert.Equal(t, editor.Rect{X: 0, Y: 0, Width: 42, Height: 13}, r)
}

func TestExportText(t *testing.T) {
	m := newTestModel(t)
	m.config.SaveDirectory = t.TempDir()
	m.addTestNode(t, "hello", 0, 0)

	m.export(ExportText)
	require.Empty(t, m.errorMessage)

	data, err := os.ReadFile(filepath.Join(m.config.SaveDirectory, "flowcanvas.txt"))
	require.NoError(t, err)
	assert.Equal(t, "+----------+\nohello     o\n+----------+\n", string(data))
}
