package main

import (
	"fmt"

	"flowcanvas/editor"
)

// handleCanvasKey forwards a key to the canvas, which owns Delete and the
// configured undo and redo chords, and reports what the history did.
func (m *model) handleCanvasKey(ev editor.KeyEvent) bool {
	h := m.canvas.History()
	before, count := h.CurrentIndex(), h.Count()
	if !m.canvas.KeyUp(ev) {
		return false
	}
	switch after := h.CurrentIndex(); {
	case h.Count() != count:
	case after < before:
		m.successMessage = fmt.Sprintf("undo %s", m.entryName(before))
	case after > before:
		m.successMessage = fmt.Sprintf("redo %s", m.entryName(after))
	}
	return true
}

func (m *model) entryName(i int) string {
	a, err := m.canvas.History().At(i)
	if err != nil {
		return "?"
	}
	return a.String()
}

func (m *model) historyStatus() string {
	h := m.canvas.History()
	return fmt.Sprintf("History: %d/%d", h.CurrentIndex()+1, h.Count())
}
