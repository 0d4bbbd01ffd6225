package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/engine"
	"github.com/griddeck/griddeck/pkg/engine/pack"
	"github.com/griddeck/griddeck/pkg/engine/snap"
	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/layoutio"
)

// Editor styles
var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDragged  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleAffected = lipgloss.NewStyle().Foreground(colorYellow)
	styleNormal   = lipgloss.NewStyle().Foreground(colorWhite)
	styleEmpty    = lipgloss.NewStyle().Foreground(colorDim)
	styleStatus   = lipgloss.NewStyle().Foreground(colorGray)
	styleDirty    = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// newEditCmd creates the edit command, an interactive terminal editor
// driving the layout engine.
func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a layout interactively in the terminal",
		Long: `Edit a layout interactively in the terminal. Components are moved
with live magnetic snapping and space-making, exactly as the engine
resolves them.

Keys:
  tab / shift+tab   select component
  enter             pick up / drop the selected component
  arrows            move the picked-up component
  esc               cancel the current drag
  a / r             auto-arrange (preserve order / reading order)
  s                 save the file
  q                 quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runEdit(args[0])
		},
	}
}

func runEdit(path string) error {
	doc, err := layoutio.Import(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	// Engine warnings would tear the alternate screen, so the editor
	// discards them.
	eng, err := engine.New(
		engine.Config{Enabled: true, Grid: doc.GridConfig()},
		engine.WithLogger(charmlog.New(io.Discard)),
	)
	if err != nil {
		return err
	}
	defer eng.Close()

	m := newEditModel(path, doc, eng)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(editModel); ok {
		return fm.err
	}
	return nil
}

// =============================================================================
// editModel - Interactive layout editing
// =============================================================================

// editModel is the bubbletea model for the layout editor.
type editModel struct {
	path string
	name string
	cfg  grid.Config
	eng  *engine.Engine

	// layout is the committed layout; preview is what the engine
	// resolved for the in-flight drag and replaces it on drop.
	layout  []grid.Bounds
	preview []grid.Bounds

	cursor   int
	dragging bool
	dragX    float64
	dragY    float64
	affected map[string]bool
	engaged  int

	dirty  bool
	status string
	err    error
}

// newEditModel creates an editor over the given document.
func newEditModel(path string, doc layoutio.Document, eng *engine.Engine) editModel {
	return editModel{
		path:     path,
		name:     doc.Name,
		cfg:      doc.GridConfig(),
		eng:      eng,
		layout:   doc.Layout(),
		affected: map[string]bool{},
		status:   "ready",
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		if m.dragging {
			m.cancelDrag()
		}
		return m, tea.Quit

	case "tab", "down", "j", "right", "l":
		if !m.dragging {
			m.moveCursor(1)
			return m, nil
		}
	case "shift+tab", "up", "k", "left", "h":
		if !m.dragging {
			m.moveCursor(-1)
			return m, nil
		}

	case "enter", " ":
		if len(m.layout) == 0 {
			return m, nil
		}
		if m.dragging {
			m.drop()
		} else {
			m.beginDrag()
		}
		return m, nil

	case "esc":
		if m.dragging {
			m.cancelDrag()
		}
		return m, nil

	case "a":
		m.arrange(pack.SortPreserve)
		return m, nil
	case "r":
		m.arrange(pack.SortReading)
		return m, nil

	case "s":
		m.save()
		return m, nil
	}

	if m.dragging {
		// Half-cell steps so the magnetic pull toward the guides is
		// visible before the component crosses a cell boundary.
		switch key.String() {
		case "up", "k":
			m.dragBy(0, -m.cfg.RowHeight/2)
		case "down", "j":
			m.dragBy(0, m.cfg.RowHeight/2)
		case "left", "h":
			m.dragBy(-m.cfg.ColWidth()/2, 0)
		case "right", "l":
			m.dragBy(m.cfg.ColWidth()/2, 0)
		}
	}

	return m, nil
}

func (m *editModel) moveCursor(delta int) {
	if len(m.layout) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.layout)) % len(m.layout)
}

func (m *editModel) beginDrag() {
	b := m.layout[m.cursor]
	m.eng.BeginDrag(m.layout, b.ID)
	m.dragging = true
	m.dragX = m.cfg.ColToPx(b.X)
	m.dragY = m.cfg.RowToPx(b.Y)
	m.preview = m.layout
	m.status = fmt.Sprintf("dragging %s", b.ID)
}

func (m *editModel) dragBy(dx, dy float64) {
	m.dragX += dx
	m.dragY += dy
	if m.dragX < 0 {
		m.dragX = 0
	}
	if m.dragY < 0 {
		m.dragY = 0
	}

	b := m.layout[m.cursor]
	res := m.eng.DragMove(m.layout, snap.Proposal{ID: b.ID, X: m.dragX, Y: m.dragY, W: b.W, H: b.H})
	m.preview = res.Layout
	m.engaged = len(res.Engaged)
	m.affected = map[string]bool{}
	for _, d := range res.Affected {
		m.affected[d.ID] = true
	}
}

func (m *editModel) drop() {
	b := m.layout[m.cursor]
	res := m.eng.Drop(m.layout, snap.Proposal{ID: b.ID, X: m.dragX, Y: m.dragY, W: b.W, H: b.H})
	m.layout = res.Layout
	m.endDrag()
	m.dirty = true
	m.status = fmt.Sprintf("dropped %s", b.ID)
}

func (m *editModel) cancelDrag() {
	m.eng.CancelDrag()
	m.endDrag()
	m.status = "drag cancelled"
}

func (m *editModel) endDrag() {
	m.dragging = false
	m.preview = nil
	m.engaged = 0
	m.affected = map[string]bool{}
}

func (m *editModel) arrange(order pack.SortOrder) {
	if m.dragging {
		m.cancelDrag()
	}
	res, err := m.eng.AutoArrange(m.layout, engine.ArrangeOptions{SortOrder: order})
	if err != nil {
		m.status = err.Error()
		return
	}
	m.layout = res.Layout
	m.dirty = true
	m.status = fmt.Sprintf("arranged (%s)", order)
}

func (m *editModel) save() {
	if m.dragging {
		m.cancelDrag()
	}
	doc := layoutio.FromLayout(m.name, m.cfg, m.layout)
	if err := layoutio.Export(m.path, doc); err != nil {
		m.status = err.Error()
		return
	}
	m.dirty = false
	m.status = fmt.Sprintf("saved %s", m.path)
}

// =============================================================================
// View
// =============================================================================

func (m editModel) View() string {
	var b strings.Builder

	title := m.name
	if title == "" {
		title = m.path
	}
	b.WriteString(styleTitle.Render("griddeck · " + title))
	if m.dirty {
		b.WriteString(styleDirty.Render(" *"))
	}
	b.WriteString("\n")
	b.WriteString(styleEmpty.Render("tab select  ⏎ pick up/drop  arrows move  a/r arrange  s save  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	status := m.status
	if m.dragging {
		status = fmt.Sprintf("%s  ·  %d guides engaged", status, m.engaged)
		if len(m.affected) > 0 {
			status = fmt.Sprintf("%s  ·  pushing %d", status, len(m.affected))
		}
	}
	b.WriteString(styleStatus.Render(status))
	b.WriteString("\n")

	return b.String()
}

// renderGrid draws the layout as a character grid, two columns of text
// per grid cell.
func (m editModel) renderGrid() string {
	layout := m.layout
	if m.dragging && m.preview != nil {
		layout = m.preview
	}

	rows := 8
	for _, c := range layout {
		if c.Bottom()+1 > rows {
			rows = c.Bottom() + 1
		}
	}

	// owner[y][x] holds the index into layout covering that cell.
	owner := make([][]int, rows)
	for y := range owner {
		owner[y] = make([]int, m.cfg.Columns)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}
	for i, c := range layout {
		for y := c.Y; y < c.Bottom() && y < rows; y++ {
			for x := c.X; x < c.Right() && x < m.cfg.Columns; x++ {
				if y >= 0 && x >= 0 {
					owner[y][x] = i
				}
			}
		}
	}

	draggedID := ""
	if m.dragging && m.cursor < len(m.layout) {
		draggedID = m.layout[m.cursor].ID
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < m.cfg.Columns; x++ {
			i := owner[y][x]
			if i < 0 {
				b.WriteString(styleEmpty.Render("· "))
				continue
			}
			c := layout[i]
			cell := string([]rune(c.ID)[0]) + " "
			switch {
			case c.ID == draggedID:
				b.WriteString(styleDragged.Render(cell))
			case m.affected[c.ID]:
				b.WriteString(styleAffected.Render(cell))
			case !m.dragging && i == m.cursor:
				b.WriteString(styleSelected.Render(cell))
			default:
				b.WriteString(styleNormal.Render(cell))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
