package editor

import (
	"fmt"

	"github.com/kataras/golog"
)

// Recording tells AddUserAction whether the action belongs in the history.
// Replay paths pass Replay so applying stored actions never records them a
// second time.
type Recording bool

const (
	Record Recording = true
	Replay Recording = false
)

// History is a fixed-capacity undo/redo ring. Entries 0..current are done;
// entries after current are the redo tail.
type History struct {
	entries []*Action
	count   int
	current int
	log     *golog.Logger
}

func NewHistory(capacity int, logger *golog.Logger) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	if logger == nil {
		logger = silentLogger()
	}
	return &History{
		entries: make([]*Action, capacity),
		current: -1,
		log:     logger,
	}
}

// AddUserAction stores an action the caller has already applied. Any redo
// tail is discarded first; when the ring is full the oldest entry goes.
func (h *History) AddUserAction(a *Action, rec Recording) bool {
	if rec == Replay {
		return false
	}
	if h.current < h.count-1 {
		for i := h.current + 1; i < h.count; i++ {
			h.entries[i] = nil
		}
		h.count = h.current + 1
	}
	if h.count == len(h.entries) {
		copy(h.entries, h.entries[1:])
		h.entries[h.count-1] = nil
		h.count--
		h.current--
	}
	h.entries[h.count] = a
	h.count++
	h.current++
	h.log.Debugf("history: push %s (%d/%d)", a, h.count, len(h.entries))
	return true
}

// Undo reverses the action at the cursor and steps back. It reports false
// when there is nothing to undo.
func (h *History) Undo() bool {
	if h.current < 0 {
		return false
	}
	a := h.entries[h.current]
	a.Undo()
	h.current--
	h.log.Debugf("history: undo %s", a)
	return true
}

// Redo steps forward and reapplies the action now at the cursor. It reports
// false when the cursor is already at the newest entry.
func (h *History) Redo() bool {
	if h.current >= h.count-1 {
		return false
	}
	h.current++
	a := h.entries[h.current]
	a.Do()
	h.log.Debugf("history: redo %s", a)
	return true
}

func (h *History) CanUndo() bool { return h.current >= 0 }
func (h *History) CanRedo() bool { return h.current < h.count-1 }

func (h *History) Count() int { return h.count }
func (h *History) Capacity() int { return len(h.entries) }
func (h *History) CurrentIndex() int { return h.current }

func (h *History) At(i int) (*Action, error) {
	if i < 0 || i >= h.count {
		return nil, fmt.Errorf("history entry %d of %d: %w", i, h.count, ErrIndexOutOfRange)
	}
	return h.entries[i], nil
}

// Entries returns the stored actions oldest first, including the redo tail.
func (h *History) Entries() []*Action {
	return append([]*Action(nil), h.entries[:h.count]...)
}

// Describe lists the entries for debugging, marking the cursor with '>'.
func (h *History) Describe() []string {
	lines := make([]string, 0, h.count)
	for i, a := range h.entries[:h.count] {
		mark := " "
		if i == h.current {
			mark = ">"
		}
		lines = append(lines, fmt.Sprintf("%s %d %s", mark, i, a))
	}
	return lines
}

func (h *History) Clear() {
	for i := range h.entries {
		h.entries[i] = nil
	}
	h.count = 0
	h.current = -1
}
