package report

import (
	"slices"

	"github.com/lox/solverview/internal/hands"
	"github.com/lox/solverview/internal/tree"
	"github.com/lox/solverview/poker"
)

// NoAction marks a matrix cell with no matching strategy entries.
const NoAction = "none"

// HandMatrix is the 13x13 starting-hand view of a node's strategy.
type HandMatrix struct {
	HasStrategy bool `json:"has_strategy"`
	*MatrixGrid
}

// MatrixGrid holds the cells of a HandMatrix in row-major order.
type MatrixGrid struct {
	Actions []string `json:"actions"`
	Ranks   []string `json:"ranks"`
	Cells   []Cell   `json:"cells"`
}

// Cell is one starting-hand class. Probability and Probabilities are
// percentages; a cell without data has Action NoAction and no probabilities.
type Cell struct {
	Row           int            `json:"row"`
	Col           int            `json:"col"`
	Hand          string         `json:"hand"`
	Type          poker.HandKind `json:"type"`
	Action        string         `json:"action"`
	Probability   float64        `json:"probability"`
	Probabilities []float64      `json:"probabilities"`
	Combos        int            `json:"combos"`
}

// At returns the cell at (row, col).
func (g *MatrixGrid) At(row, col int) Cell {
	return g.Cells[row*hands.Size+col]
}

// Matrix builds the hand matrix for node id. Each combination of a class
// takes the first strategy key that matches it; the class reports the mean
// of those vectors.
func Matrix(t *tree.Tree, id tree.NodeID) HandMatrix {
	s, ok := fullStrategy(t.Node(id))
	if !ok {
		return HandMatrix{}
	}

	ranks := make([]string, len(poker.Ranks))
	for i := range poker.Ranks {
		ranks[i] = poker.Ranks[i : i+1]
	}

	grid := &MatrixGrid{
		Actions: slices.Clone(s.Actions),
		Ranks:   ranks,
		Cells:   make([]Cell, 0, hands.Size*hands.Size),
	}
	for _, class := range hands.Grid() {
		grid.Cells = append(grid.Cells, matrixCell(class, s))
	}
	return HandMatrix{HasStrategy: true, MatrixGrid: grid}
}

func matrixCell(class hands.Class, s *tree.Strategy) Cell {
	cell := Cell{
		Row:           class.Row,
		Col:           class.Col,
		Hand:          class.Label,
		Type:          class.Kind,
		Action:        NoAction,
		Probabilities: []float64{},
	}

	keys := s.Hands.Keys()
	sum := make([]float64, len(s.Actions))
	for _, token := range class.SolverHands() {
		i := hands.FirstMatch(token, keys)
		if i < 0 {
			continue
		}
		averageInto(sum, s.Hands.At(i))
		cell.Combos++
	}
	if cell.Combos == 0 || len(sum) == 0 {
		return cell
	}

	best := 0
	for i := range sum {
		sum[i] /= float64(cell.Combos)
		if sum[i] > sum[best] {
			best = i
		}
	}

	cell.Action = s.Actions[best]
	cell.Probability = percent(sum[best])
	cell.Probabilities = percents(sum)
	return cell
}
