package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/solverview/internal/report"
	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/tree"
	"github.com/lox/solverview/poker"
)

// View selects what the detail pane shows for the current node.
type View int

const (
	ViewNode View = iota
	ViewStrategy
	ViewMatrix
	ViewEV
)

var viewNames = []string{"Node", "Strategy", "Matrix", "EV"}

func (v View) String() string {
	return viewNames[v]
}

// Entry is one navigable branch below the current node.
type Entry struct {
	Label string
	Path  string
	// Missing is set for listed actions that have no child node.
	Missing bool
}

type frame struct {
	path   string
	cursor int
}

// Model is the Bubble Tea model for browsing a solver tree.
type Model struct {
	sess   *session.Session
	logger *log.Logger

	detail viewport.Model

	path    string
	history []frame
	entries []Entry
	cursor  int
	view    View
	status  string

	width       int
	height      int
	quitting    bool
	initialized bool
}

// NewModel creates a browser positioned at the root of the session's tree.
func NewModel(sess *session.Session, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		sess:   sess,
		logger: logger.WithPrefix("tui"),
		detail: vp,
	}
	m.load("")
	return m
}

// Path returns the path of the current node.
func (m *Model) Path() string {
	return m.path
}

// Entries returns the branches below the current node.
func (m *Model) Entries() []Entry {
	return m.entries
}

// Cursor returns the index of the selected entry.
func (m *Model) Cursor() int {
	return m.cursor
}

// CurrentView returns the active detail view.
func (m *Model) CurrentView() View {
	return m.view
}

// Status returns the last status or error message.
func (m *Model) Status() string {
	return m.status
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// load moves to path and rebuilds the entry list.
func (m *Model) load(path string) bool {
	id, err := m.sess.Resolve(path)
	if err != nil {
		m.status = err.Error()
		m.logger.Warn("Resolve failed", "path", path, "error", err)
		return false
	}

	m.path = path
	m.cursor = 0
	m.status = ""
	m.entries = branchEntries(m.sess.Tree().Node(id), path)
	m.refresh()
	return true
}

func branchEntries(n *tree.Node, path string) []Entry {
	var entries []Entry
	for _, action := range n.Actions {
		e := Entry{Label: action, Path: path + "/" + tree.SegmentChildrens + "/" + action}
		if n.Childrens == nil {
			e.Missing = true
		} else if _, ok := n.Childrens.Get(action); !ok {
			e.Missing = true
		}
		entries = append(entries, e)
	}
	if n.DealCards != nil {
		for _, card := range n.DealCards.Keys() {
			entries = append(entries, Entry{
				Label: poker.FormatCard(card),
				Path:  path + "/" + tree.SegmentDealCards + "/" + card,
			})
		}
	}
	return entries
}

func (m *Model) descend() {
	if len(m.entries) == 0 {
		return
	}
	e := m.entries[m.cursor]
	if e.Missing {
		m.status = fmt.Sprintf("No child node for %s", e.Label)
		return
	}
	back := frame{path: m.path, cursor: m.cursor}
	if m.load(e.Path) {
		m.history = append(m.history, back)
	}
}

func (m *Model) ascend() {
	if len(m.history) == 0 {
		return
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	if m.load(prev.path) {
		m.cursor = min(prev.cursor, max(len(m.entries)-1, 0))
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			m.descend()
		case "backspace", "left", "h":
			m.ascend()
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.entries)-1, 0)
		case "tab":
			m.view = (m.view + 1) % View(len(viewNames))
			m.refresh()
		case "shift+tab":
			m.view = (m.view + View(len(viewNames)) - 1) % View(len(viewNames))
			m.refresh()
		case "1", "2", "3", "4":
			m.view = View(msg.String()[0] - '1')
			m.refresh()
		case "pgup", "b":
			m.detail.HalfPageUp()
		case "pgdown", "f":
			m.detail.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// refresh re-renders the detail pane for the current node and view.
func (m *Model) refresh() {
	content, err := m.renderDetail()
	if err != nil {
		content = ErrorStyle.Render(err.Error())
	}
	m.detail.SetContent(content)
	m.detail.GotoTop()
}

func (m *Model) renderDetail() (string, error) {
	switch m.view {
	case ViewStrategy:
		info, err := m.sess.StrategyInfo(m.path)
		if err != nil {
			return "", err
		}
		return renderStrategy(info), nil
	case ViewMatrix:
		hm, err := m.sess.HandMatrix(m.path)
		if err != nil {
			return "", err
		}
		return RenderMatrix(nil, hm), nil
	case ViewEV:
		ev, err := m.sess.EVAnalysis(m.path)
		if err != nil {
			return "", err
		}
		return renderEV(ev), nil
	case ViewNode:
		info, err := m.sess.NodeInfo(m.path)
		if err != nil {
			return "", err
		}
		return renderNode(info), nil
	}
	return "", errors.New("unknown view")
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render("solverview") + " " + PathStyle.Render(displayPath(m.path))
	footer := m.renderFooter()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-2, 1)

	listWidth := 24
	for _, e := range m.entries {
		listWidth = max(listWidth, lipgloss.Width(e.Label)+4)
	}
	listPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusedBorder).
		Width(listWidth).
		Height(bodyHeight).
		Render(m.renderEntries(bodyHeight))

	detailWidth := max(m.width-listWidth-4, 1)
	m.detail.Width = detailWidth
	m.detail.Height = bodyHeight
	if !m.initialized {
		m.detail.GotoTop()
		m.initialized = true
	}
	detailPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurredBorder).
		Width(detailWidth).
		Height(bodyHeight).
		Render(m.detail.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderEntries(height int) string {
	if len(m.entries) == 0 {
		return InfoStyle.Render("(terminal node)")
	}

	// keep the cursor inside the visible window
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(m.entries))

	var b strings.Builder
	for i := start; i < end; i++ {
		e := m.entries[i]
		line := "  " + e.Label
		switch {
		case i == m.cursor:
			line = SelectedStyle.Render("> " + e.Label)
		case e.Missing:
			line = MissingStyle.Render(line)
		default:
			line = EntryStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if View(i) == m.view {
			tabs[i] = SelectedStyle.Render("[" + label + "]")
		} else {
			tabs[i] = InfoStyle.Render(" " + label + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if m.status != "" {
		line += "  " + ErrorStyle.Render(m.status)
	}
	help := InfoStyle.Render("↑↓ select • Enter descend • Backspace up • Tab view • PgUp/PgDn scroll • q quit")
	return line + "\n" + help
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func renderNode(info report.NodeInfo) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(LabelStyle.Render(label+":") + " " + value + "\n")
	}

	if info.NodeType != nil {
		field("Type", *info.NodeType)
	}
	if info.Player != nil {
		field("Player", fmt.Sprintf("%d", *info.Player))
	}
	if info.Board != nil {
		field("Board", colorCards(*info.Board))
	}
	if info.Pot != nil {
		field("Pot", fmt.Sprintf("%.2f", *info.Pot))
	}
	if info.DealNumber != nil {
		field("Deal number", fmt.Sprintf("%d", *info.DealNumber))
	}
	if info.Actions != nil {
		field("Actions", strings.Join(info.Actions, ", "))
	}
	if info.DealCardsCount != nil {
		field("Deal cards", fmt.Sprintf("%d", *info.DealCardsCount))
	}
	field("Strategy", fmt.Sprintf("%t", info.HasStrategy))
	return b.String()
}

func renderStrategy(info report.StrategyInfo) string {
	if !info.HasStrategy {
		return InfoStyle.Render("No strategy data at this node")
	}

	var b strings.Builder
	b.WriteString(LabelStyle.Render("Board:") + " " + colorCards(info.Board) + "\n")
	if info.Player != nil {
		b.WriteString(LabelStyle.Render("Player:") + fmt.Sprintf(" %d\n", *info.Player))
	}
	if len(info.ActionFrequencies) > 0 {
		b.WriteString("\n" + LabelStyle.Render("Action frequencies") + "\n")
		for i, f := range info.ActionFrequencies {
			swatch := lipgloss.NewStyle().Background(ActionColor(i)).Render("  ")
			b.WriteString(fmt.Sprintf("%s %-12s %5.1f%%\n", swatch, f.Action, f.Percent))
		}
	}
	if c := info.HandComposition; c != nil {
		b.WriteString("\n" + LabelStyle.Render("Hand composition") + "\n")
		b.WriteString(fmt.Sprintf("pairs %d  suited %d  offsuit %d  total %d\n", c.Pairs, c.Suited, c.Offsuit, c.Total))
	}
	if len(info.BoardAnalysis) > 0 {
		b.WriteString("\n" + LabelStyle.Render("Board texture") + "\n")
		for _, line := range info.BoardAnalysis {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func renderEV(ev report.EVAnalysis) string {
	if !ev.HasStrategy {
		return InfoStyle.Render("No strategy data at this node")
	}

	var b strings.Builder
	for _, tip := range ev.Tips {
		b.WriteString(TipStyle.Render("• "+tip) + "\n")
	}
	if len(ev.BoardAnalysis) > 0 {
		b.WriteString("\n" + LabelStyle.Render("Board texture") + "\n")
		for _, line := range ev.BoardAnalysis {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

// colorCards highlights hearts and diamonds in a formatted board.
func colorCards(board string) string {
	parts := strings.Fields(board)
	for i, p := range parts {
		if strings.HasSuffix(p, "♥") || strings.HasSuffix(p, "♦") {
			parts[i] = RedCardStyle.Render(p)
		}
	}
	return strings.Join(parts, " ")
}
