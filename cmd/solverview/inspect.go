package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/lox/solverview/internal/report"
	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/tui"
)

// InspectCmd prints a report for one node
type InspectCmd struct {
	File     string `kong:"arg,type='existingfile',help='Solver tree JSON file'"`
	Path     string `kong:"default='',help='Path of the node to inspect (empty for the root)'"`
	Hand     string `kong:"help='Hand class to break down, e.g. AKo'"`
	NoColor  bool   `kong:"help='Disable colour output'"`
	NoSchema bool   `kong:"help='Skip JSON schema validation'"`
}

func (c *InspectCmd) Run() error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	sess, err := loadSession(c.File, !c.NoSchema, logger)
	if err != nil {
		return err
	}

	r := lipgloss.NewRenderer(os.Stdout)
	if c.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return writeInspect(os.Stdout, r, sess, c.Path, c.Hand)
}

// writeInspect renders the game summary and the reports for the node at
// path to w.
func writeInspect(w io.Writer, r *lipgloss.Renderer, sess *session.Session, path, hand string) error {
	heading := r.NewStyle().Bold(true).Underline(true)
	p := &printer{w: w}

	game := sess.GameInfo()
	p.line(heading.Render("Game"))
	p.field("Type", game.GameType)
	p.field("Position", game.Position)
	p.field("Board", game.Board)
	if game.StartingPot != nil {
		p.field("Starting pot", fmt.Sprintf("%.2f", *game.StartingPot))
	}
	p.field("Decision points", fmt.Sprintf("%d", game.DecisionPoints))

	node, err := sess.NodeInfo(path)
	if err != nil {
		return err
	}
	p.line("")
	p.line(heading.Render("Node " + displayPath(path)))
	if node.NodeType != nil {
		p.field("Type", *node.NodeType)
	}
	if node.Player != nil {
		p.field("Player", fmt.Sprintf("%d", *node.Player))
	}
	if node.Board != nil {
		p.field("Board", *node.Board)
	}
	if node.Pot != nil {
		p.field("Pot", fmt.Sprintf("%.2f", *node.Pot))
	}
	if node.Actions != nil {
		p.field("Actions", strings.Join(node.Actions, ", "))
	}
	if node.DealCardsCount != nil {
		p.field("Deal cards", fmt.Sprintf("%d", *node.DealCardsCount))
	}

	strategy, err := sess.StrategyInfo(path)
	if err != nil {
		return err
	}
	p.line("")
	p.line(heading.Render("Strategy"))
	if !strategy.HasStrategy {
		p.line("No strategy data at this node")
		return p.err
	}
	for _, f := range strategy.ActionFrequencies {
		p.line(fmt.Sprintf("  %-12s %5.1f%%", f.Action, f.Percent))
	}
	if c := strategy.HandComposition; c != nil {
		p.field("Hands", fmt.Sprintf("%d (pairs %d, suited %d, offsuit %d)", c.Total, c.Pairs, c.Suited, c.Offsuit))
	}
	for _, note := range strategy.BoardAnalysis {
		p.line("  " + note)
	}

	ev, err := sess.EVAnalysis(path)
	if err != nil {
		return err
	}
	if ev.HasStrategy {
		for _, tip := range ev.Tips {
			p.line("  * " + tip)
		}
	}

	hm, err := sess.HandMatrix(path)
	if err != nil {
		return err
	}
	p.line("")
	p.line(heading.Render("Hand matrix"))
	p.line(tui.RenderMatrix(r, hm))

	if hand != "" {
		details, err := sess.HandDetails(path, hand)
		if err != nil {
			return err
		}
		writeHandDetails(p, heading, details)
	}
	return p.err
}

func writeHandDetails(p *printer, heading lipgloss.Style, details report.HandDetails) {
	p.line("")
	if !details.HasStrategy {
		p.line(heading.Render("Hand"))
		p.line("No strategy data at this node")
		return
	}

	d := details.HandBreakdown
	p.line(heading.Render("Hand " + d.Hand))
	p.field("Combos", fmt.Sprintf("%d of %d", d.ActualCombos, d.ExpectedCombos))
	for _, c := range d.Combinations {
		p.line(fmt.Sprintf("  %-6s %s", c.Hand, formatPercents(d.Actions, c.Probabilities)))
	}
	if d.ActualCombos > 0 {
		p.field("Average", formatPercents(d.Actions, d.AverageProbabilities))
	}
}

func formatPercents(actions []string, probs []float64) string {
	parts := make([]string, 0, len(probs))
	for i, pct := range probs {
		label := "?"
		if i < len(actions) {
			label = actions[i]
		}
		parts = append(parts, fmt.Sprintf("%s %.1f%%", label, pct))
	}
	return strings.Join(parts, ", ")
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// printer writes lines to w, keeping the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) field(label, value string) {
	p.line(fmt.Sprintf("  %-16s %s", label+":", value))
}
