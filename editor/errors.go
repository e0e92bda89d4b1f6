package editor

import "errors"

var (
	ErrConnectionExists   = errors.New("connection already exists")
	ErrConnectionRejected = errors.New("pins cannot be connected")
	ErrNoBoundEndpoint    = errors.New("connection must keep at least one bound endpoint")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrUnknownConnection  = errors.New("connection not in store")
	ErrNodeExists         = errors.New("node already exists")
)
