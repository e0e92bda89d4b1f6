package main

import "flowcanvas/editor"

func (m *model) handleNavigation(key string, speed int) {
	if m.mode == ModePan {
		m.handlePan(key, speed)
		return
	}
	m.handleNudge(key, speed)
}

func (m *model) handlePan(key string, speed int) {
	dx, dy := direction(key)
	m.canvas.Viewport().PanBy(float64(dx*speed), float64(dy*speed))
}

// handleNudge moves the selection one step per key press.
func (m *model) handleNudge(key string, speed int) {
	dx, dy := direction(key)
	if !m.canvas.Nudge(float64(dx*speed), float64(dy*speed)) && m.canvas.Selection().Empty() {
		m.errorMessage = "nothing selected"
	}
}

func direction(key string) (int, int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) zoomBy(factor float64) {
	vp := m.canvas.Viewport()
	vp.SetZoom(vp.Zoom() * factor)
}

func (m *model) resetView() {
	vp := m.canvas.Viewport()
	vp.SetPan(editor.Point{})
	vp.SetZoom(1)
}
