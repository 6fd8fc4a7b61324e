package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/pipeline"
	"github.com/matzehuels/perfwall/pkg/session"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// Parameter fields
// =============================================================================

// field is one adjustable row of the configurator.
type field struct {
	label  string
	value  func(p wall.Params) string
	adjust func(p *wall.Params, dir int) // dir is -1 or +1
}

// round3 keeps repeated steps from accumulating float noise.
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func meters(v float64) string { return fmt.Sprintf("%.2f m", v) }

func step(v *float64, dir int, by, lo float64) {
	*v = round3(math.Max(lo, *v+float64(dir)*by))
}

func cycle[T comparable](list []T, cur T, dir int) T {
	i := 0
	for j, v := range list {
		if v == cur {
			i = j
			break
		}
	}
	return list[(i+dir+len(list))%len(list)]
}

var shapeKinds = []wall.ShapeKind{wall.Square, wall.Circle, wall.Polygon}

func configuratorFields() []field {
	return []field{
		{"Wall width", func(p wall.Params) string { return meters(p.WallWidth) },
			func(p *wall.Params, d int) { step(&p.WallWidth, d, 0.1, 0.1) }},
		{"Wall height", func(p wall.Params) string { return meters(p.WallHeight) },
			func(p *wall.Params, d int) { step(&p.WallHeight, d, 0.1, 0.1) }},
		{"Panel width", func(p wall.Params) string { return meters(p.PanelWidth) },
			func(p *wall.Params, d int) { step(&p.PanelWidth, d, 0.05, 0.05) }},
		{"Panel gap", func(p wall.Params) string { return fmt.Sprintf("%.0f mm", p.PanelGap*1000) },
			func(p *wall.Params, d int) { step(&p.PanelGap, d, 0.005, 0) }},
		{"Rows", func(p wall.Params) string { return fmt.Sprint(p.VerticalPanelDivision) },
			func(p *wall.Params, d int) { p.VerticalPanelDivision = max(1, p.VerticalPanelDivision+d) }},
		{"Cell size", func(p wall.Params) string { return fmt.Sprintf("%.0f mm", p.CellSize*1000) },
			func(p *wall.Params, d int) { step(&p.CellSize, d, 0.005, 0.005) }},
		{"Max cell scale", func(p wall.Params) string { return fmt.Sprintf("%.2f", p.MaxCellScale) },
			func(p *wall.Params, d int) {
				step(&p.MaxCellScale, d, 0.05, wall.MinCellScale)
				p.MaxCellScale = math.Min(p.MaxCellScale, 1)
			}},
		{"Shape", func(p wall.Params) string { return p.Shape.Name() },
			func(p *wall.Params, d int) { p.Shape.Kind = cycle(shapeKinds, p.Shape.Kind, d) }},
		{"Polygon sides", func(p wall.Params) string { return fmt.Sprint(p.Shape.Sides) },
			func(p *wall.Params, d int) { p.Shape.Sides = max(wall.MinPolygonSides, p.Shape.Sides+d) }},
		{"Rotation", func(p wall.Params) string { return fmt.Sprintf("%g°", p.CellRotation) },
			func(p *wall.Params, d int) { p.CellRotation = math.Mod(p.CellRotation+float64(d)*5, 360) }},
		{"Invert", func(p wall.Params) string { return fmt.Sprint(p.Invert) },
			func(p *wall.Params, _ int) { p.Invert = !p.Invert }},
		{"Material", func(p wall.Params) string { return p.Material() },
			func(p *wall.Params, d int) { p.PanelMaterial = cycle(cost.Keys(), p.Material(), d) }},
		{"Edge offset", func(p wall.Params) string { return fmt.Sprintf("%.1f cells", p.OffsetFromEdges) },
			func(p *wall.Params, d int) { step(&p.OffsetFromEdges, d, 0.1, 0) }},
	}
}

// =============================================================================
// ConfiguratorModel - Interactive wall configurator
// =============================================================================

// computedMsg carries the result of a background Compute. seq matches the
// edit that triggered it so stale results are dropped.
type computedMsg struct {
	seq int
	res *session.Result
	err error
}

type savedMsg struct{ err error }

// ConfiguratorModel is the bubbletea model for `perfwall tui`.
type ConfiguratorModel struct {
	Session *session.Session
	Store   session.Store // nil disables saving

	fields []field
	cursor int
	seq    int
	result *session.Result
	err    error
	status string
}

// NewConfiguratorModel creates a configurator for s.
func NewConfiguratorModel(s *session.Session, store session.Store) ConfiguratorModel {
	return ConfiguratorModel{Session: s, Store: store, fields: configuratorFields()}
}

func (m ConfiguratorModel) Init() tea.Cmd {
	return m.compute()
}

func (m ConfiguratorModel) compute() tea.Cmd {
	s, seq := m.Session, m.seq
	return func() tea.Msg {
		res, err := s.Compute()
		return computedMsg{seq: seq, res: res, err: err}
	}
}

func (m ConfiguratorModel) save() tea.Cmd {
	s, store := m.Session, m.Store
	return func() tea.Msg {
		return savedMsg{err: store.Set(context.Background(), s)}
	}
}

// edit applies fn to the session and schedules a recompute.
func (m ConfiguratorModel) edit(fn func() error) (tea.Model, tea.Cmd) {
	if err := fn(); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = ""
	m.seq++
	return m, m.compute()
}

func (m ConfiguratorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case computedMsg:
		if msg.seq == m.seq {
			m.result, m.err = msg.res, msg.err
		}
	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved session " + m.Session.ID()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.fields)-1 {
				m.cursor++
			}
		case "left", "h", "-":
			return m.adjust(-1)
		case "right", "l", "+", "enter", " ":
			return m.adjust(1)
		case "r":
			return m.edit(m.Session.RotateImage)
		case "x":
			return m.edit(func() error { m.Session.ClearImage(); return nil })
		case "s":
			if m.Store != nil {
				return m, m.save()
			}
		}
	}
	return m, nil
}

func (m ConfiguratorModel) adjust(dir int) (tea.Model, tea.Cmd) {
	p := m.Session.Params()
	m.fields[m.cursor].adjust(&p, dir)
	return m.edit(func() error { return m.Session.SetParams(p) })
}

func (m ConfiguratorModel) View() string {
	p := m.Session.Params()

	var left strings.Builder
	for i, f := range m.fields {
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		if f.label == "Polygon sides" && p.Shape.Kind != wall.Polygon {
			style = listDimStyle
		}
		left.WriteString(style.Render(fmt.Sprintf("%s%-15s %s", cursor, f.label, f.value(p))))
		left.WriteString("\n")
	}

	var right strings.Builder
	switch {
	case m.err != nil:
		right.WriteString(StyleWarning.Render(m.err.Error()))
	case m.result == nil:
		right.WriteString(listDimStyle.Render("computing..."))
	default:
		for _, line := range cost.Summary(m.result.Layout.Params, m.result.Breakdown) {
			key, value, _ := strings.Cut(line, ": ")
			right.WriteString(listDimStyle.Render(fmt.Sprintf("%-16s", key)) + " " + StyleValue.Render(value) + "\n")
		}
		right.WriteString("\n" + StyleNumber.Render(fmt.Sprintf("%d holes", m.result.Layout.TotalHoleCount)))
	}
	if img := m.Session.Image(); img != nil {
		right.WriteString("\n" + listDimStyle.Render(fmt.Sprintf("image %d×%d", img.Width, img.Height)))
	} else {
		right.WriteString("\n" + listDimStyle.Render("no image"))
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Wall Configurator"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ←/→ adjust  r rotate  x clear image  s save  q quit"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(strings.TrimRight(left.String(), "\n")),
		" ",
		panelStyle.Render(right.String())))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleWarning.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// tuiCommand creates the interactive configurator command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		resume     bool
		sessionDir string
	)

	cmd := &cobra.Command{
		Use:   "tui [image]",
		Short: "Configure a wall interactively",
		Long: `Configure a wall interactively.

Every change recomputes the layout and price. Sessions are saved to
~/.config/perfwall/sessions on exit (and with 's'); --resume continues the
most recent one.`,
		Args: cobra.MaximumNArgs(1),
	}
	wf := addWallFlags(cmd)
	cmd.Flags().BoolVar(&resume, "resume", false, "continue the most recent session")
	cmd.Flags().StringVar(&sessionDir, "session-dir", "", "session directory (default: ~/.config/perfwall/sessions)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := session.NewFileStore(sessionDir, 0)
		if err != nil {
			return err
		}

		var sess *session.Session
		if resume {
			if sess, err = store.Latest(ctx); err != nil {
				return err
			}
		} else {
			file, err := wf.load(cmd)
			if err != nil {
				return err
			}
			sess = session.New(file.Wall)
		}

		if image := imageArg(args); image != "" {
			runner, err := c.newRunner(wf.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			loaded, err := runner.LoadImage(ctx, pipeline.Options{
				Image:        image,
				Stdin:        cmd.InOrStdin(),
				MaxImageSize: wf.maxImageSize,
			})
			if err != nil {
				return err
			}
			if err := sess.SetImage(loaded.Image); err != nil {
				return err
			}
		}

		final, err := tea.NewProgram(NewConfiguratorModel(sess, store), tea.WithContext(ctx)).Run()
		if err != nil {
			return err
		}
		m := final.(ConfiguratorModel)

		if err := store.Set(context.WithoutCancel(ctx), m.Session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		printSuccess("Session %s saved", StyleHighlight.Render(m.Session.ID()))
		if m.result != nil {
			printSummary(cost.Summary(m.result.Layout.Params, m.result.Breakdown))
		}
		printNextStep("Continue", "perfwall tui --resume")
		return nil
	}
	return cmd
}
