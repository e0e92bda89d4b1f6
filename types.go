package main

import (
	"time"

	"github.com/kataras/golog"

	"flowcanvas/editor"
)

type model struct {
	width  int
	height int

	canvas *editor.Canvas
	layer  *gridLayer
	config *Config
	log    *golog.Logger

	mode       Mode
	help       bool
	helpScroll int

	// pointer state in canvas space
	cursor    editor.Point
	buttons   editor.MouseButton
	lastClick time.Time
	clickAt   editor.Point
	clicks    int
	now       func() time.Time

	// label input for a node being created
	labelText   string
	labelAnchor *editor.Node
	labelKind   placement

	errorMessage   string
	successMessage string
}

type placement int

const (
	placeAtCursor placement = iota
	placeChild
	placeSibling
)

func newModel(cfg *Config, logger *golog.Logger) *model {
	layer := &gridLayer{}
	m := &model{
		canvas: editor.NewCanvas(cfg.editorOptions(logger, layer)),
		layer:  layer,
		config: cfg,
		log:    logger,
		mode:   ModeNormal,
		now:    time.Now,
	}
	m.canvas.Viewport().OnChange(func(vp *editor.Viewport) {
		switch {
		case vp.Zoom() < minZoom:
			vp.SetZoom(minZoom)
		case vp.Zoom() > maxZoom:
			vp.SetZoom(maxZoom)
		}
		logger.Debugf("viewport pan %s zoom %.2f", vp.Pan(), vp.Zoom())
	})
	return m
}
