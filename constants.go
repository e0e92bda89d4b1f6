package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModePan
	ModeLabel
)

type ExportKind int

const (
	ExportPNG ExportKind = iota
	ExportText
)

const (
	defaultNodeWidth    = 12
	defaultNodeHeight   = 3
	childGap            = 4
	doubleClickInterval = 400 * time.Millisecond
	curveSamples        = 48
	statusHeight        = 1
	minZoom             = 0.25
	maxZoom             = 4
)

// PNG cell metrics, pixels per character.
const (
	charWidth     = 8.0
	charHeight    = 16.0
	exportPadding = 2
	fontSize      = 12.0
)
