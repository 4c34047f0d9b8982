package report

import (
	"slices"

	"github.com/lox/solverview/internal/texture"
	"github.com/lox/solverview/internal/tree"
	"github.com/lox/solverview/poker"
)

// NodeInfo describes a single node. Only fields present on the node appear.
type NodeInfo struct {
	NodeType       *string  `json:"node_type,omitempty"`
	Player         *int     `json:"player,omitempty"`
	Board          *string  `json:"board,omitempty"`
	Pot            *float64 `json:"pot,omitempty"`
	DealNumber     *int     `json:"deal_number,omitempty"`
	Actions        []string `json:"actions,omitzero"`
	DealCardsCount *int     `json:"dealcards_count,omitempty"`
	DealCards      []string `json:"dealcards,omitzero"`
	HasStrategy    bool     `json:"has_strategy"`
	Path           string   `json:"path"`
}

// DescribeNode reports the metadata of node id, reached by path.
func DescribeNode(t *tree.Tree, id tree.NodeID, path string) NodeInfo {
	n := t.Node(id)
	info := NodeInfo{
		NodeType:    n.NodeType,
		Player:      n.Player,
		DealNumber:  n.DealNumber,
		HasStrategy: n.Strategy != nil,
		Path:        path,
	}

	if n.Board != nil {
		board := poker.FormatBoard(*n.Board)
		info.Board = &board
	}
	if pot, ok := n.PotValue(); ok {
		pot = round2(pot)
		info.Pot = &pot
	}
	if n.Actions != nil {
		info.Actions = slices.Clone(n.Actions)
	}
	if n.DealCards != nil {
		count := n.DealCards.Len()
		info.DealCardsCount = &count
		info.DealCards = append([]string{}, n.DealCards.Keys()...)
	}
	return info
}

// StrategyInfo summarises a node's strategy. A node without one reports
// only has_strategy.
type StrategyInfo struct {
	HasStrategy bool `json:"has_strategy"`
	*StrategySummary
}

// StrategySummary is the body of StrategyInfo. Aggregates are only present
// when the strategy carries both actions and a hand table.
type StrategySummary struct {
	NodeType          string       `json:"node_type"`
	Player            *int         `json:"player,omitempty"`
	Board             string       `json:"board"`
	Actions           []string     `json:"actions,omitzero"`
	ActionFrequencies Frequencies  `json:"action_frequencies,omitzero"`
	HandComposition   *Composition `json:"hand_composition,omitempty"`
	HasHandStrategies bool         `json:"has_hand_strategies,omitempty"`
	BoardAnalysis     []string     `json:"board_analysis,omitzero"`
}

// UnknownNodeType stands in for a missing node_type.
const UnknownNodeType = "unknown"

// DescribeStrategy builds the StrategyInfo for node id.
func DescribeStrategy(t *tree.Tree, id tree.NodeID) StrategyInfo {
	n := t.Node(id)
	s := n.Strategy
	if s == nil {
		return StrategyInfo{}
	}

	sum := &StrategySummary{
		NodeType: UnknownNodeType,
		Player:   n.Player,
		Board:    poker.FormatBoard(""),
	}
	if n.NodeType != nil {
		sum.NodeType = *n.NodeType
	}
	if n.Board != nil {
		sum.Board = poker.FormatBoard(*n.Board)
	}
	info := StrategyInfo{HasStrategy: true, StrategySummary: sum}

	if s.Actions == nil {
		return info
	}
	sum.Actions = slices.Clone(s.Actions)

	if s.Hands == nil {
		return info
	}
	comp := composition(s.Hands)
	sum.ActionFrequencies = frequencies(s.Actions, s.Hands)
	sum.HandComposition = &comp
	sum.HasHandStrategies = true
	if n.Board != nil {
		sum.BoardAnalysis = texture.AnalyzeBoard(*n.Board)
	}
	return info
}
