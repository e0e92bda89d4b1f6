package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flowcanvas/editor"
)

var (
	configPath string
	capacity   int
	logLevel   string

	bad = color.New(color.FgRed)

	statusStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "flowcanvas",
		Short:         "flowcanvas - a node and connection editor for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("capacity") {
				cfg.History.Capacity = capacity
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default "+defaultConfigPath()+")")
	cmd.Flags().IntVar(&capacity, "capacity", editor.DefaultHistoryCapacity, "undo history capacity")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error, disable")
	return cmd
}

func run(cfg *Config) error {
	logger, closeLog, err := cfg.newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	p := tea.NewProgram(
		newModel(cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		bad.Fprintf(os.Stderr, "flowcanvas: %v\n", err)
		os.Exit(1)
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	p := m.canvasPoint(msg.X, msg.Y)
	m.cursor = p
	mods := mouseModifiers(msg)
	switch msg.Type {
	case tea.MouseLeft:
		if m.buttons.Has(editor.ButtonLeft) {
			m.canvas.PointerMove(editor.PointerEvent{Position: p, Buttons: m.buttons, Modifiers: mods})
			return
		}
		m.clearMessages()
		m.buttons = editor.ButtonLeft
		m.canvas.PointerDown(editor.PointerEvent{
			Position:   p,
			Buttons:    m.buttons,
			ClickCount: m.clickCount(p),
			Modifiers:  mods,
		})
	case tea.MouseMotion:
		if m.buttons != 0 {
			m.canvas.PointerMove(editor.PointerEvent{Position: p, Buttons: m.buttons, Modifiers: mods})
		}
	case tea.MouseRelease:
		if m.buttons == 0 {
			return
		}
		m.buttons = 0
		m.canvas.PointerUp(editor.PointerEvent{Position: p, Modifiers: mods})
	case tea.MouseWheelUp:
		m.canvas.Viewport().PanBy(0, -1)
	case tea.MouseWheelDown:
		m.canvas.Viewport().PanBy(0, 1)
	}
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.help {
		switch key {
		case "?", "esc", "q":
			m.help = false
		case "j", "down":
			m.helpScroll++
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		}
		return m, nil
	}
	if m.mode == ModeLabel {
		m.handleLabelInput(msg)
		return m, nil
	}

	m.clearMessages()
	if m.handleCanvasKey(keyEvent(msg)) {
		return m, nil
	}

	sel := m.canvas.Selection().Items()
	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case editor.KeyEscape:
		if m.mode == ModePan {
			m.mode = ModeNormal
		} else if m.buttons == 0 {
			m.canvas.Select(nil)
		}
	case "z":
		if m.mode == ModePan {
			m.mode = ModeNormal
		} else {
			m.mode = ModePan
		}
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case "+", "=":
		m.zoomBy(2)
	case "-":
		m.zoomBy(0.5)
	case "0":
		m.resetView()
	case "b":
		m.startLabel(placeAtCursor, nil)
	case "tab":
		if len(sel) != 1 {
			m.errorMessage = "select one node to add a child"
			break
		}
		m.startLabel(placeChild, sel[0])
	case "enter":
		if len(sel) != 1 {
			m.errorMessage = "select one node to add a sibling"
			break
		}
		m.startLabel(placeSibling, sel[0])
	case "d":
		if !m.canvas.DeleteSelected() {
			m.errorMessage = "nothing selected"
		}
	case "a":
		m.connectSelection()
	case "A":
		m.disconnectSelection()
	case "p":
		m.pasteNode()
	case "y":
		if err := m.copyToClipboard(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "copied diagram to clipboard"
		}
	case "S":
		m.export(ExportPNG)
	case "T":
		m.export(ExportText)
	}
	return m, nil
}

func (m *model) startLabel(kind placement, anchor *editor.Node) {
	m.mode = ModeLabel
	m.labelText = ""
	m.labelKind = kind
	m.labelAnchor = anchor
}

func (m *model) handleLabelInput(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
	case tea.KeyEnter:
		m.mode = ModeNormal
		label := strings.TrimSpace(m.labelText)
		if label == "" {
			return
		}
		if _, err := m.placeNode(label, m.labelKind, m.labelAnchor); err != nil {
			m.errorMessage = err.Error()
		}
	case tea.KeyBackspace:
		if r := []rune(m.labelText); len(r) > 0 {
			m.labelText = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.labelText += " "
	case tea.KeyRunes:
		m.labelText += string(msg.Runes)
	}
}

// connectSelection links the first selected node's output to the input of
// every other selected node.
func (m *model) connectSelection() {
	sel := m.canvas.Selection().Items()
	if len(sel) < 2 {
		m.errorMessage = "select two nodes to connect"
		return
	}
	for _, n := range sel[1:] {
		if _, err := m.canvas.Connect(outPin(sel[0]), inPin(n)); err != nil {
			m.errorMessage = err.Error()
			return
		}
	}
	m.successMessage = fmt.Sprintf("connected %d", len(sel)-1)
}

func (m *model) disconnectSelection() {
	sel := m.canvas.Selection()
	removed := 0
	for _, conn := range m.canvas.Graph().Connections() {
		s, t := conn.Source(), conn.Target()
		if s == nil || t == nil || !sel.Contains(s.Node()) || !sel.Contains(t.Node()) {
			continue
		}
		if err := m.canvas.Disconnect(conn); err != nil {
			m.errorMessage = err.Error()
			return
		}
		removed++
	}
	m.successMessage = fmt.Sprintf("removed %d connections", removed)
}

func (m *model) pasteNode() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if text == "" {
		m.errorMessage = "clipboard is empty"
		return
	}
	if _, err := m.placeNode(text, placeAtCursor, nil); err != nil {
		m.errorMessage = err.Error()
	}
}

func (m *model) View() string {
	if m.help {
		return m.helpView()
	}
	height := m.height - statusHeight
	var result strings.Builder
	result.WriteString(strings.Join(Render(m.canvas, m.layer, m.width, height), "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m *model) statusLine() string {
	status := fmt.Sprintf("Mode: %s | %s | Selected: %d | Zoom: %.2f | %s",
		m.modeString(), m.canvas.State(), m.canvas.Selection().Len(),
		m.canvas.Viewport().Zoom(), m.historyStatus())
	switch {
	case m.mode == ModeLabel:
		status = fmt.Sprintf("Mode: %s | Label: %s_ | Enter to add, Esc to cancel", m.modeString(), m.labelText)
	case m.errorMessage != "":
		return statusStyle.Render(status) + " " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + m.successMessage
	default:
		status += " | ? for help | q to quit"
	}
	return statusStyle.Render(status)
}

func (m *model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModePan:
		return "PAN"
	case ModeLabel:
		return "LABEL"
	default:
		return "UNKNOWN"
	}
}

func (m *model) helpView() string {
	helpLines := []string{
		"flowcanvas help",
		"===============",
		"",
		"Mouse:",
		"------",
		"  click            Select the node under the pointer",
		"  shift/ctrl+click Add a node to the selection",
		"  click selected   Remove it from the selection",
		"  double click     Select only that node",
		"  drag             Move the selection, or draw a selection box",
		"  drag % handle    Resize the selection",
		"  drag @ handle    Rotate the selection (when enabled)",
		"  wheel            Scroll the view",
		"",
		"Nodes:",
		"------",
		"  b                New node at the pointer",
		"  tab              New child of the selected node",
		"  enter            New sibling of the selected node",
		"  p                New node labelled with the clipboard text",
		"  d                Delete the selected nodes",
		"  h/j/k/l, arrows  Nudge the selection (shift: 2x)",
		"",
		"Connections:",
		"------------",
		"  a                Connect the first selected node to the others",
		"  A                Remove connections between selected nodes",
		"",
		"View:",
		"-----",
		"  z                Toggle pan mode (h/j/k/l pan the view)",
		"  + / - / 0        Zoom in, zoom out, reset",
		"",
		"Files:",
		"------",
		"  S                Export as PNG",
		"  T                Export as text",
		"  y                Copy the text rendering to the clipboard",
		"",
		"General:",
		"--------",
		"  " + strings.Join(m.config.Keys.Undo, ", ") + "  Undo",
		"  " + strings.Join(m.config.Keys.Redo, ", ") + "  Redo",
		"  delete           Clear the selection",
		"  esc              Clear selection, leave pan mode",
		"  ?                Toggle this help screen",
		"  q/ctrl+c         Quit",
	}
	height := m.height
	if height < 1 {
		height = len(helpLines)
	}
	start := m.helpScroll
	if last := len(helpLines) - height; start > last {
		start = last
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(helpLines) {
		end = len(helpLines)
	}
	return helpStyle.Render(strings.Join(helpLines[start:end], "\n"))
}
