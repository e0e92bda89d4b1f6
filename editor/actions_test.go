package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionsAreInverse(t *testing.T) {
	w := newWiring(t)
	conn, err := w.g.Connect(w.a, w.b)
	require.NoError(t, err)
	sel := NewSelection()
	sel.replace([]*Node{w.n2})

	type snapshot struct {
		pos1, pos2   Point
		size1, size2 Size
		rot1         float64
		curve        Curve
		selected     []*Node
	}
	take := func() snapshot {
		return snapshot{
			w.n1.Position(), w.n2.Position(),
			w.n1.Size(), w.n2.Size(),
			w.n1.Rotation(), conn.Curve(), sel.Items(),
		}
	}

	actions := map[string]*Action{
		"select": NewSelectAction(sel, []*Node{w.n1, w.n2}),
		"move": NewMoveAction([]*Node{w.n1, w.n2},
			[]Point{w.n1.Position(), w.n2.Position()},
			[]Point{{3, 4}, {50, 9}}),
		"scale": NewScaleAction([]*Node{w.n1},
			[]Point{w.n1.Position()}, []Point{{-2, -2}},
			[]Size{w.n1.Size()}, []Size{{20, 12}}),
		"rotate": NewRotateAction([]*Node{w.n1}, []float64{0}, []float64{45}),
	}
	for name, a := range actions {
		t.Run(name, func(t *testing.T) {
			before := take()
			a.Do()
			after := take()
			assert.NotEqual(t, before, after)

			a.Undo()
			assert.Equal(t, before, take())
			a.Do()
			assert.Equal(t, after, take())
			a.Undo()
		})
	}
}

func TestActionArraysMustMatch(t *testing.T) {
	n := NewNode("n", Point{}, Size{})
	assert.Panics(t, func() { NewMoveAction([]*Node{n}, nil, []Point{{}}) })
	assert.Panics(t, func() { NewRotateAction([]*Node{n}, []float64{0}, nil) })
	assert.Panics(t, func() {
		NewScaleAction([]*Node{n}, []Point{{}}, []Point{{}}, []Size{{}}, nil)
	})
}

func TestDeleteNodesRestoresStoreOrder(t *testing.T) {
	w := newWiring(t)
	n3 := NewNode("N3", Point{80, 0}, Size{10, 6})
	require.NoError(t, w.g.AddNode(n3))
	c := n3.AddPin(SideLeft, "C")
	out := w.n2.AddPin(SideRight, "out")
	first, err := w.g.Connect(w.a, w.b)
	require.NoError(t, err)
	second, err := w.g.Connect(out, c)
	require.NoError(t, err)
	third, err := w.g.Connect(w.b, w.a)
	require.NoError(t, err)

	sel := NewSelection()
	sel.replace([]*Node{w.n1, n3})
	a := NewDeleteNodesAction(w.g, sel, []*Node{n3, w.n1})

	a.Do()
	assert.Equal(t, []*Node{w.n2}, w.g.Nodes())
	assert.Zero(t, w.g.ConnectionCount())
	assert.True(t, sel.Empty())
	assert.False(t, w.n1.Selected())

	a.Undo()
	assert.Equal(t, []*Node{w.n1, w.n2, n3}, w.g.Nodes())
	assert.Equal(t, []*Connection{first, second, third}, w.g.Connections())
	assert.Equal(t, []*Node{w.n1, n3}, sel.Items())
	assert.True(t, w.b.Connected())

	w.n1.MoveBy(1, 0)
	assert.Equal(t, Point{11, 3}, first.Curve().Start, "restored connections observe again")
}

func TestConnectAndDisconnectActions(t *testing.T) {
	w := newWiring(t)
	conn := NewConnection(w.a, w.b)
	connect := NewConnectAction(w.g, conn)

	connect.Do()
	assert.True(t, w.g.HasConnection(w.a, w.b))
	connect.Undo()
	assert.False(t, w.g.HasConnection(w.a, w.b))
	assert.False(t, w.a.Connected())
	connect.Do()

	disconnect := NewDisconnectAction(w.g, conn)
	disconnect.Do()
	assert.Zero(t, w.g.ConnectionCount())
	disconnect.Undo()
	assert.Equal(t, []*Connection{conn}, w.g.Connections())
}

func TestAddNodeAction(t *testing.T) {
	g := NewGraph(nil, nil)
	n := NewNode("n", Point{}, Size{})
	a := NewAddNodeAction(g, n)

	a.Do()
	assert.Same(t, n, g.Node(n.ID))
	a.Undo()
	assert.Nil(t, g.Node(n.ID))
	a.Do()
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, "add 1 nodes", a.String())
}
