package main

import (
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"flowcanvas/editor"
)

// canvasPoint maps a terminal cell to the canvas point at its center, so a
// click on a border cell lands inside the node drawn there.
func (m *model) canvasPoint(x, y int) editor.Point {
	return m.canvas.Viewport().ScreenToCanvas(editor.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
}

func mouseModifiers(msg tea.MouseMsg) editor.Modifier {
	var mods editor.Modifier
	if msg.Ctrl {
		mods |= editor.ModCtrl
	}
	if msg.Alt {
		mods |= editor.ModAlt
	}
	if msg.Shift {
		mods |= editor.ModShift
	}
	return mods
}

// clickCount counts presses on the same cell within the double click
// interval.
func (m *model) clickCount(p editor.Point) int {
	now := m.now()
	if m.clicks > 0 && now.Sub(m.lastClick) <= doubleClickInterval && m.clickAt == p {
		m.clicks++
	} else {
		m.clicks = 1
	}
	m.lastClick = now
	m.clickAt = p
	return m.clicks
}

// keyEvent turns a bubbletea key into the editor's key record. Key names
// follow tea.KeyMsg.String, so "ctrl+z" becomes key "z" with ModCtrl and a
// bare upper case rune carries ModShift.
func keyEvent(msg tea.KeyMsg) editor.KeyEvent {
	parts := strings.Split(msg.String(), "+")
	key := parts[len(parts)-1]
	if key == "" && len(parts) > 1 {
		key = "+"
		parts = parts[:len(parts)-1]
	}
	var mods editor.Modifier
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "ctrl":
			mods |= editor.ModCtrl
		case "alt":
			mods |= editor.ModAlt
		case "shift":
			mods |= editor.ModShift
		}
	}
	if r := []rune(key); len(r) == 1 && unicode.IsUpper(r[0]) {
		mods |= editor.ModShift
	}
	return editor.KeyEvent{Key: key, Modifiers: mods}
}

func readClipboardText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return cleanClipboardText(text), nil
}

// cleanClipboardText keeps the first non blank line, without control
// characters, as a node label.
func cleanClipboardText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return -1
			}
			return r
		}, line)
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
