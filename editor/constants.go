package editor

type Side int

const (
	SideLeft Side = iota
	SideTop
	SideRight
	SideBottom
)

var sides = [...]Side{SideLeft, SideTop, SideRight, SideBottom}

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

type State int

const (
	StateIdle State = iota
	StateMultiSelecting
	StateAdornerActive
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMultiSelecting:
		return "multi-selecting"
	case StateAdornerActive:
		return "adorner-active"
	}
	return "unknown"
}

type ActionType int

const (
	ActionSelect ActionType = iota
	ActionMove
	ActionScale
	ActionRotate
	ActionAddNode
	ActionDeleteNodes
	ActionConnect
	ActionDisconnect
)

func (t ActionType) String() string {
	switch t {
	case ActionSelect:
		return "select"
	case ActionMove:
		return "move"
	case ActionScale:
		return "scale"
	case ActionRotate:
		return "rotate"
	case ActionAddNode:
		return "add-node"
	case ActionDeleteNodes:
		return "delete-nodes"
	case ActionConnect:
		return "connect"
	case ActionDisconnect:
		return "disconnect"
	}
	return "unknown"
}

type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleResize
	HandleRotate
)

const (
	MinNodeWidth  = 8
	MinNodeHeight = 3

	DefaultHistoryCapacity = 100

	// PinSize is the edge length of a pin's square bounding box.
	PinSize = 1.0
	// HandleSize is the width of the adorner frame and its grips.
	HandleSize = 1.0

	minControlDistance = 4.0
)
