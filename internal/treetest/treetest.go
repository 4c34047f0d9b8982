// Package treetest provides sample solver trees for tests.
package treetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/solverview/internal/tree"
)

// Sample is a small flop tree: the out-of-position player checks or bets,
// the in-position player responds, and a turn card is dealt after two
// checks. Strategy keys deliberately include both orderings of AK offsuit.
const Sample = `{
  "node_type": "action_node",
  "player": 1,
  "board": "AhKd7s",
  "pot": 10.456,
  "actions": ["CHECK", "BET 5"],
  "childrens": {
    "CHECK": {
      "node_type": "action_node",
      "player": 0,
      "board": "AhKd7s",
      "potSize": 10,
      "actions": ["CHECK", "BET 5"],
      "childrens": {
        "CHECK": {
          "node_type": "chance_node",
          "deal_number": 2,
          "board": "AhKd7s",
          "dealcards": {
            "2c": {
              "node_type": "action_node",
              "player": 1,
              "board": "AhKd7s2c",
              "actions": ["CHECK"],
              "childrens": {"CHECK": {"node_type": "terminal"}}
            },
            "Qh": {
              "node_type": "action_node",
              "player": 1,
              "board": "AhKd7sQh",
              "actions": ["CHECK"]
            }
          }
        },
        "BET 5": {"node_type": "terminal"}
      },
      "strategy": {
        "actions": ["CHECK", "BET 5"],
        "strategy": {
          "QcQd": [0.25, 0.75]
        }
      }
    },
    "BET 5": {"node_type": "terminal", "pot": 15}
  },
  "strategy": {
    "actions": ["CHECK", "BET 5"],
    "strategy": {
      "AcKd": [0.3, 0.7],
      "AdKc": [0.5, 0.5],
      "AcAd": [1.0, 0.0],
      "KhKs": [0.2, 0.8],
      "7c6c": [0.9, 0.1]
    }
  },
  "meta": {"node_type": "info", "player": 1}
}`

// SampleDecisionPoints is the number of nodes in Sample carrying actions.
const SampleDecisionPoints = 4

// Parse decodes doc or fails the test.
func Parse(t testing.TB, doc string) *tree.Tree {
	t.Helper()
	tr, err := tree.Parse([]byte(doc))
	require.NoError(t, err)
	return tr
}

// Resolve resolves path in tr or fails the test.
func Resolve(t testing.TB, tr *tree.Tree, path string) tree.NodeID {
	t.Helper()
	id, err := tree.Resolve(tr, path)
	require.NoError(t, err, "path %q", path)
	return id
}
