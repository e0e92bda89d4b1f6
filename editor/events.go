package editor

import "strings"

type MouseButton int

const (
	ButtonLeft MouseButton = 1 << iota
	ButtonRight
	ButtonMiddle
)

func (b MouseButton) Has(o MouseButton) bool { return b&o != 0 }

type Modifier int

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModMeta
)

func (m Modifier) Has(o Modifier) bool { return m&o != 0 }

// PointerEvent is a mouse record in canvas coordinates. Buttons holds the
// buttons still pressed when the event was raised.
type PointerEvent struct {
	Position   Point
	Buttons    MouseButton
	ClickCount int
	Modifiers  Modifier
	Handled    bool
}

const (
	KeyDelete = "delete"
	KeyEscape = "esc"
)

type KeyEvent struct {
	Key       string
	Modifiers Modifier
	Handled   bool
}

// Chord renders the event the way key bindings are written, for example
// "ctrl+shift+z".
func (e KeyEvent) Chord() string {
	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if e.Modifiers.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "meta")
	}
	return strings.Join(append(parts, strings.ToLower(e.Key)), "+")
}

type Shortcut int

const (
	ShortcutUndo Shortcut = iota
	ShortcutRedo
)

// ShortcutMatcher answers whether a configured shortcut is satisfied by a
// key event.
type ShortcutMatcher interface {
	Matches(s Shortcut, e KeyEvent) bool
}

// Keymap binds shortcuts to chords. A chord matches either the event's full
// chord or, for bindings without modifiers, the bare key compared case
// sensitively so "u" and "U" can mean different things.
type Keymap map[Shortcut][]string

func DefaultKeymap() Keymap {
	return Keymap{
		ShortcutUndo: {"ctrl+z"},
		ShortcutRedo: {"ctrl+y", "ctrl+shift+z"},
	}
}

func (k Keymap) Matches(s Shortcut, e KeyEvent) bool {
	chord := e.Chord()
	for _, binding := range k[s] {
		if strings.Contains(binding, "+") {
			if strings.EqualFold(binding, chord) {
				return true
			}
			continue
		}
		if binding == e.Key && (e.Modifiers&^ModShift) == 0 {
			return true
		}
	}
	return false
}
