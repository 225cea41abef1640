package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/lpaez/dosim/internal/config"
	"github.com/lpaez/dosim/internal/dose"
	"github.com/lpaez/dosim/internal/experiment"
	"github.com/lpaez/dosim/internal/kinetics"
	"github.com/lpaez/dosim/internal/report"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var substanceInfo = map[string]string{
	"general":  "baseline first-order kinetics",
	"alcohol":  "slow clearance, sluggish tolerance",
	"nicotine": "fast clearance, rapid tolerance",
	"cannabis": "moderate clearance",
}

type screen int

const (
	screenMenu screen = iota
	screenSetup
	screenResults
)

// field binds one adjustable config value to its tunable range.
type field struct {
	name string
	rng  config.Range
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

type model struct {
	screen screen
	cursor int

	substances []string

	cfg         *config.Config
	bounds      config.Bounds
	fields      []field
	fieldCursor int
	editing     bool
	editBuf     string

	result *experiment.Result
	runErr error

	width  int
	height int
}

func newModel() model {
	m := model{
		screen:     screenMenu,
		substances: config.ListSubstances(),
		bounds:     config.DefaultBounds(),
		cfg:        config.DefaultConfig(),
		width:      80,
		height:     24,
	}
	m.rebuildFields()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenSetup:
		return m.setupKey(msg)
	case screenResults:
		return m.resultsKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.substances)-1 {
			m.cursor++
		}
	case "enter", " ":
		name := m.substances[m.cursor]
		cfg := config.DefaultConfig()
		cfg.Substance = name
		if p, err := config.GetSubstance(name); err == nil {
			cfg.Ke, cfg.Alpha, cfg.Beta = p.Ke, p.Alpha, p.Beta
		}
		m.cfg = cfg
		m.result = nil
		m.runErr = nil
		m.fieldCursor = 0
		m.rebuildFields()
		m.screen = screenSetup
	}
	return m, nil
}

func (m model) setupKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				f := m.fields[m.fieldCursor-1]
				f.set(m.cfg, f.rng.Clamp(val))
			}
			m.editing = false
			m.editBuf = ""
		case "esc", "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc", "escape":
		m.screen = screenMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(m.fields) {
			m.fieldCursor++
		}
	case "enter", " ":
		if m.fieldCursor == 0 {
			m.cycleKind(1)
		} else {
			m.editing = true
			m.editBuf = fmt.Sprintf("%.2f", m.fields[m.fieldCursor-1].get(m.cfg))
		}
	case "left", "h":
		if m.fieldCursor == 0 {
			m.cycleKind(-1)
		} else {
			m.adjust(-1)
		}
	case "right", "l":
		if m.fieldCursor == 0 {
			m.cycleKind(1)
		} else {
			m.adjust(1)
		}
	case "s":
		m.run()
		if m.runErr == nil {
			m.screen = screenResults
			return m, tea.ClearScreen
		}
	}
	return m, nil
}

func (m model) resultsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "escape":
		m.screen = screenMenu
		return m, tea.ClearScreen
	case "c":
		m.screen = screenSetup
		return m, tea.ClearScreen
	case "r":
		m.run()
	case "tab":
		m.fieldCursor = (m.fieldCursor + 1) % (len(m.fields) + 1)
	case "shift+tab":
		m.fieldCursor = (m.fieldCursor + len(m.fields)) % (len(m.fields) + 1)
	case "up", "k", "right", "l":
		m.retune(1)
	case "down", "j", "left", "h":
		m.retune(-1)
	}
	return m, nil
}

// rebuildFields regenerates the setup rows for the selected pattern.
// Row 0 is the pattern selector itself, so field i sits on row i+1.
func (m *model) rebuildFields() {
	b := m.bounds
	fields := []field{
		{"ke", b.Ke,
			func(c *config.Config) float64 { return c.Ke },
			func(c *config.Config, v float64) { c.Ke = v }},
		{"alpha", b.Alpha,
			func(c *config.Config) float64 { return c.Alpha },
			func(c *config.Config, v float64) { c.Alpha = v }},
		{"beta", b.Beta,
			func(c *config.Config) float64 { return c.Beta },
			func(c *config.Config, v float64) { c.Beta = v }},
	}

	switch m.cfg.Pattern.Kind {
	case string(dose.KindConstant):
		fields = append(fields, field{"rate", b.Rate,
			func(c *config.Config) float64 { return c.Pattern.Rate },
			func(c *config.Config, v float64) { c.Pattern.Rate = v }})
	case string(dose.KindLinear):
		fields = append(fields, field{"slope", b.Slope,
			func(c *config.Config) float64 { return c.Pattern.Slope },
			func(c *config.Config, v float64) { c.Pattern.Slope = v }})
	case string(dose.KindPeriodic):
		fields = append(fields,
			field{"dose", b.Dose,
				func(c *config.Config) float64 { return c.Pattern.Dose },
				func(c *config.Config, v float64) { c.Pattern.Dose = v }},
			field{"interval", b.Interval,
				func(c *config.Config) float64 { return c.Pattern.Interval },
				func(c *config.Config, v float64) { c.Pattern.Interval = v }})
	}

	fields = append(fields, field{"horizon", b.Horizon,
		func(c *config.Config) float64 { return c.Horizon },
		func(c *config.Config, v float64) { c.Horizon = v }})

	m.fields = fields
	if m.fieldCursor > len(m.fields) {
		m.fieldCursor = len(m.fields)
	}
}

func (m *model) cycleKind(delta int) {
	kinds := dose.Kinds()
	idx := 0
	for i, k := range kinds {
		if string(k) == m.cfg.Pattern.Kind {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(kinds)) % len(kinds)
	m.cfg.Pattern.Kind = string(kinds[idx])
	m.rebuildFields()
}

func (m *model) adjust(direction int) {
	f := m.fields[m.fieldCursor-1]
	f.set(m.cfg, f.rng.Clamp(f.get(m.cfg)+float64(direction)*f.rng.Step))
}

// retune adjusts the selected parameter from the results screen and
// re-runs the simulation immediately.
func (m *model) retune(direction int) {
	if m.fieldCursor == 0 {
		m.cycleKind(direction)
	} else {
		m.adjust(direction)
	}
	m.run()
}

func (m *model) run() {
	res, err := experiment.Run(context.Background(), m.cfg, m.bounds)
	if err != nil {
		m.runErr = err
		m.result = nil
		return
	}
	m.runErr = nil
	m.result = res
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenSetup:
		return m.viewSetup()
	case screenResults:
		return m.viewResults()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("            " + cyan.Render("d o s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.substances {
		desc := substanceInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m model) viewSetup() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.cfg.Substance) + "  " + dim.Render(substanceInfo[m.cfg.Substance]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 34)) + "\n\n")

	kindVal := fmt.Sprintf("◂ %s ▸", m.cfg.Pattern.Kind)
	if m.fieldCursor == 0 {
		b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", "pattern")) + magenta.Render(kindVal) + "\n")
	} else {
		b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", "pattern")) + dim.Render(kindVal) + "\n")
	}

	for i, f := range m.fields {
		val := fmt.Sprintf("%8.3f", f.get(m.cfg))
		if m.editing && i+1 == m.fieldCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i+1 == m.fieldCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", f.name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", f.name)) + dim.Render(val) + "\n")
		}
	}

	if m.runErr != nil {
		b.WriteString("\n      " + yellow.Render(m.runErr.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s simulate  esc back") + "\n")

	return b.String()
}

func (m model) viewResults() string {
	if m.result == nil {
		if m.runErr != nil {
			return "\n      " + yellow.Render(m.runErr.Error()) + "\n"
		}
		return "\n      " + dim.Render("nothing simulated yet") + "\n"
	}

	res := m.result
	w := m.width - 14
	if w < 40 {
		w = 40
	}
	if w > 110 {
		w = 110
	}

	var b strings.Builder

	b.WriteString("\n   " + green.Render("●") + " " + cyan.Render(res.Label) + "  " + dim.Render(res.Pattern.String()) + "\n")
	b.WriteString("   " + m.tuneStrip() + "\n\n")

	conc := asciigraph.Plot(res.Traj.Component(kinetics.IndexConc),
		asciigraph.Height(8), asciigraph.Width(w), asciigraph.Caption("concentration (mg)"))
	b.WriteString(indent(conc, 3) + "\n\n")

	tol := asciigraph.Plot(res.Traj.Component(kinetics.IndexTol),
		asciigraph.Height(6), asciigraph.Width(w), asciigraph.Caption("tolerance"))
	b.WriteString(indent(tol, 3) + "\n\n")

	var sum strings.Builder
	report.Render(&sum, res.Summary)
	b.WriteString(dim.Render(indent(strings.TrimRight(sum.String(), "\n"), 3)) + "\n")

	b.WriteString("\n" + dim.Render("   tab field  ↑↓ adjust  r rerun  c setup  q menu") + "\n")

	return b.String()
}

// tuneStrip renders the pattern and every tunable value in one row so
// parameters can be nudged without leaving the results screen.
func (m model) tuneStrip() string {
	segs := make([]string, 0, len(m.fields)+1)

	seg := "pattern " + m.cfg.Pattern.Kind
	if m.fieldCursor == 0 {
		segs = append(segs, magenta.Render("▸"+seg))
	} else {
		segs = append(segs, dim.Render(" "+seg))
	}

	for i, f := range m.fields {
		seg := fmt.Sprintf("%s %.2f", f.name, f.get(m.cfg))
		if i+1 == m.fieldCursor {
			segs = append(segs, magenta.Render("▸"+seg))
		} else {
			segs = append(segs, dim.Render(" "+seg))
		}
	}

	return strings.Join(segs, " ")
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

// Run starts the interactive explorer.
func Run() error {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
