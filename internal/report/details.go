package report

import (
	"slices"

	"github.com/lox/solverview/internal/hands"
	"github.com/lox/solverview/internal/tree"
	"github.com/lox/solverview/poker"
)

// HandDetails breaks a starting-hand class down into the strategy entries
// behind it.
type HandDetails struct {
	HasStrategy bool `json:"has_strategy"`
	*HandBreakdown
}

// HandBreakdown lists every strategy key matching a combination of the
// class. ActualCombos below ExpectedCombos means the table is missing
// combinations of this class.
type HandBreakdown struct {
	Hand                 string        `json:"hand"`
	Actions              []string      `json:"actions"`
	Combinations         []Combination `json:"combinations"`
	AverageProbabilities []float64     `json:"average_probabilities"`
	ExpectedCombos       int           `json:"expected_combos"`
	ActualCombos         int           `json:"actual_combos"`
	Complete             bool          `json:"complete"`
}

// Combination is one matched strategy entry.
type Combination struct {
	Hand          string    `json:"hand"`
	Key           string    `json:"key"`
	Probabilities []float64 `json:"probabilities"`
}

// DescribeHand builds the HandDetails for a class label ("AA", "AKs", "AKo")
// at node id. Labels that do not parse return hands.ErrInvalidHandFormat.
func DescribeHand(t *tree.Tree, id tree.NodeID, label string) (HandDetails, error) {
	class, err := hands.ParseLabel(label)
	if err != nil {
		return HandDetails{}, err
	}

	s, ok := fullStrategy(t.Node(id))
	if !ok {
		return HandDetails{}, nil
	}

	b := &HandBreakdown{
		Hand:                 class.Label,
		Actions:              slices.Clone(s.Actions),
		Combinations:         []Combination{},
		AverageProbabilities: []float64{},
		ExpectedCombos:       class.Kind.ExpectedCombos(),
	}

	keys := s.Hands.Keys()
	sum := make([]float64, len(s.Actions))
	for _, token := range class.SolverHands() {
		// every match counts here, unlike the matrix
		for _, i := range hands.AllMatches(token, keys) {
			probs := s.Hands.At(i)
			b.Combinations = append(b.Combinations, Combination{
				Hand:          poker.FormatHand(keys[i]),
				Key:           keys[i],
				Probabilities: percents(probs),
			})
			averageInto(sum, probs)
		}
	}

	b.ActualCombos = len(b.Combinations)
	b.Complete = b.ActualCombos == b.ExpectedCombos
	if b.ActualCombos > 0 {
		for i := range sum {
			sum[i] /= float64(b.ActualCombos)
		}
		b.AverageProbabilities = percents(sum)
	}
	return HandDetails{HasStrategy: true, HandBreakdown: b}, nil
}
