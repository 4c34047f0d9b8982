package report

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lox/solverview/internal/texture"
	"github.com/lox/solverview/internal/tree"
)

// Tip thresholds, in percent.
const (
	PolarizedTopPercent    = 50
	PolarizedSecondPercent = 30
	StrongFavorPercent     = 70
)

// EVAnalysis pairs a node's aggregate strategy with short reading tips.
type EVAnalysis struct {
	HasStrategy bool `json:"has_strategy"`
	*EVBreakdown
}

// EVBreakdown is the body of EVAnalysis. BoardAnalysis is null when the
// node has no board.
type EVBreakdown struct {
	Actions           []string    `json:"actions"`
	ActionFrequencies Frequencies `json:"action_frequencies"`
	HandComposition   Composition `json:"hand_composition"`
	Tips              []string    `json:"tips"`
	BoardAnalysis     []string    `json:"board_analysis"`
}

// AnalyzeEV builds the EVAnalysis for node id.
func AnalyzeEV(t *tree.Tree, id tree.NodeID) EVAnalysis {
	n := t.Node(id)
	s, ok := fullStrategy(n)
	if !ok {
		return EVAnalysis{}
	}

	freqs := frequencies(s.Actions, s.Hands)
	b := &EVBreakdown{
		Actions:           slices.Clone(s.Actions),
		ActionFrequencies: freqs,
		HandComposition:   composition(s.Hands),
		Tips:              Tips(freqs),
	}
	if n.Board != nil {
		b.BoardAnalysis = texture.AnalyzeBoard(*n.Board)
	}
	return EVAnalysis{HasStrategy: true, EVBreakdown: b}
}

// Tips reads a set of action frequencies: the most frequent action, then a
// note when the strategy is polarized or strongly favors one action.
func Tips(freqs Frequencies) []string {
	tips := []string{}
	if len(freqs) == 0 {
		return tips
	}

	top := freqs[0]
	for _, f := range freqs[1:] {
		if f.Percent > top.Percent {
			top = f
		}
	}
	tips = append(tips, fmt.Sprintf("Most frequent action: %s (%.1f%%)", top.Action, top.Percent))

	if len(freqs) < 2 {
		return tips
	}

	sorted := slices.Clone(freqs)
	slices.SortStableFunc(sorted, func(a, b ActionFrequency) int {
		return cmp.Compare(b.Percent, a.Percent)
	})
	first, second := sorted[0], sorted[1]
	switch {
	case first.Percent > PolarizedTopPercent && second.Percent > PolarizedSecondPercent:
		tips = append(tips, fmt.Sprintf("Strategy is polarized between %s and %s", first.Action, second.Action))
	case first.Percent > StrongFavorPercent:
		tips = append(tips, "Strategy strongly favors "+first.Action)
	}
	return tips
}
