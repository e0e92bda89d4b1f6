package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// moveTo applies and returns a move of n to p.
func moveTo(n *Node, p Point) *Action {
	a := NewMoveAction([]*Node{n}, []Point{n.Position()}, []Point{p})
	a.Do()
	return a
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10, nil)
	n := NewNode("n", Point{0, 0}, Size{10, 6})

	h.AddUserAction(moveTo(n, Point{5, 5}), Record)
	h.AddUserAction(moveTo(n, Point{9, 1}), Record)
	assert.Equal(t, 2, h.Count())
	assert.Equal(t, 1, h.CurrentIndex())

	require.True(t, h.Undo())
	assert.Equal(t, Point{5, 5}, n.Position())
	require.True(t, h.Undo())
	assert.Equal(t, Point{0, 0}, n.Position())
	assert.False(t, h.Undo(), "nothing left to undo")
	assert.Equal(t, -1, h.CurrentIndex())
	assert.Equal(t, 2, h.Count(), "undo keeps entries for redo")

	require.True(t, h.Redo())
	assert.Equal(t, Point{5, 5}, n.Position())
	require.True(t, h.Redo())
	assert.Equal(t, Point{9, 1}, n.Position())
	assert.False(t, h.Redo(), "already at newest entry")
}

func TestHistoryEvictsOldestWhenFull(t *testing.T) {
	h := NewHistory(3, nil)
	n := NewNode("n", Point{}, Size{})
	var pushed []*Action
	for i := 1; i <= 5; i++ {
		a := moveTo(n, Point{float64(i), 0})
		pushed = append(pushed, a)
		h.AddUserAction(a, Record)
		assert.LessOrEqual(t, h.Count(), h.Capacity())
	}

	assert.Equal(t, 3, h.Count())
	assert.Equal(t, 2, h.CurrentIndex())
	assert.Equal(t, pushed[2:], h.Entries())

	for h.Undo() {
	}
	assert.Equal(t, Point{2, 0}, n.Position(), "oldest surviving entry moved from x=2")
}

func TestHistoryPushAfterUndoDropsRedoTail(t *testing.T) {
	h := NewHistory(5, nil)
	n := NewNode("n", Point{}, Size{})
	first := moveTo(n, Point{1, 0})
	h.AddUserAction(first, Record)
	h.AddUserAction(moveTo(n, Point{2, 0}), Record)
	h.AddUserAction(moveTo(n, Point{3, 0}), Record)

	h.Undo()
	h.Undo()
	third := moveTo(n, Point{7, 7})
	h.AddUserAction(third, Record)

	assert.Equal(t, []*Action{first, third}, h.Entries())
	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo())
	assert.Equal(t, Point{7, 7}, n.Position())
}

func TestHistoryReplayIsNotRecorded(t *testing.T) {
	h := NewHistory(5, nil)
	n := NewNode("n", Point{}, Size{})
	assert.False(t, h.AddUserAction(moveTo(n, Point{1, 1}), Replay))
	assert.Zero(t, h.Count())
	assert.False(t, h.CanUndo())
}

func TestHistoryAt(t *testing.T) {
	h := NewHistory(0, nil)
	assert.Equal(t, DefaultHistoryCapacity, h.Capacity())

	n := NewNode("n", Point{}, Size{})
	a := moveTo(n, Point{1, 1})
	h.AddUserAction(a, Record)

	got, err := h.At(0)
	require.NoError(t, err)
	assert.Same(t, a, got)
	_, err = h.At(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = h.At(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestHistoryDescribeAndClear(t *testing.T) {
	h := NewHistory(5, nil)
	n := NewNode("n", Point{}, Size{})
	h.AddUserAction(moveTo(n, Point{1, 1}), Record)
	h.AddUserAction(moveTo(n, Point{2, 2}), Record)
	h.Undo()

	assert.Equal(t, []string{"> 0 move 1 nodes", "  1 move 1 nodes"}, h.Describe())

	h.Clear()
	assert.Zero(t, h.Count())
	assert.Equal(t, -1, h.CurrentIndex())
	assert.Empty(t, h.Entries())
}
