package report

import (
	"github.com/lox/solverview/internal/tree"
	"github.com/lox/solverview/poker"
)

// GameType is the only game solver trees are read as.
const GameType = "No Limit Hold'em"

// Positions of the player to act at the root.
const (
	InPosition    = "In Position"
	OutOfPosition = "Out of Position"
)

// PreflopBoard is reported when the root has no board field.
const PreflopBoard = "None (Preflop)"

// GameInfo summarises a whole tree from its root.
type GameInfo struct {
	GameType       string   `json:"game_type"`
	Position       string   `json:"position"`
	StartingPlayer *int     `json:"starting_player,omitempty"`
	StartingPot    *float64 `json:"starting_pot,omitempty"`
	Board          string   `json:"board"`
	DecisionPoints int      `json:"decision_points"`
}

// DescribeGame builds the GameInfo for a tree. A root without a player is
// treated as player 0.
func DescribeGame(t *tree.Tree) GameInfo {
	root := t.Node(tree.Root)
	info := GameInfo{
		GameType:       GameType,
		Position:       InPosition,
		StartingPlayer: root.Player,
		Board:          PreflopBoard,
		DecisionPoints: t.DecisionPoints(),
	}

	if root.Player != nil && *root.Player != 0 {
		info.Position = OutOfPosition
	}
	if pot, ok := root.PotValue(); ok {
		pot = round2(pot)
		info.StartingPot = &pot
	}
	if root.Board != nil {
		info.Board = poker.FormatBoard(*root.Board)
	}
	return info
}
