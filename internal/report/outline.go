package report

import (
	"github.com/lox/solverview/internal/tree"
	"github.com/lox/solverview/poker"
)

const (
	// OutlineMaxDepth caps how many levels of the tree an outline renders.
	OutlineMaxDepth = 15
	// OutlineMaxCards caps the cards listed under one deal branch.
	OutlineMaxCards = 10
)

// Outline entry types.
const (
	EntryAction    = "action"
	EntryCards     = "cards"
	EntryCard      = "card"
	EntryMoreCards = "more_cards"
)

// OutlineEntry is one element of the navigation outline. Node entries carry
// node_type, player and children; action, card and marker entries carry a
// name and type. Every entry carries the path that resolves to it.
type OutlineEntry struct {
	Name     string         `json:"name,omitempty"`
	NodeType *string        `json:"node_type,omitempty"`
	Player   *int           `json:"player,omitempty"`
	Path     string         `json:"path"`
	Type     string         `json:"type,omitempty"`
	Suit     string         `json:"suit,omitempty"`
	Children []OutlineEntry `json:"children,omitzero"`
}

// Outline renders the tree from the root for navigation, at most
// OutlineMaxDepth levels deep.
func Outline(t *tree.Tree) OutlineEntry {
	return outlineNode(t, tree.Root, "", 0)
}

func outlineNode(t *tree.Tree, id tree.NodeID, path string, depth int) OutlineEntry {
	if depth > OutlineMaxDepth {
		return OutlineEntry{Name: "... (max depth reached)", Path: path}
	}

	n := t.Node(id)
	entry := OutlineEntry{
		NodeType: n.NodeType,
		Player:   n.Player,
		Path:     path,
		Children: []OutlineEntry{},
	}
	descend := depth < OutlineMaxDepth-1

	for _, action := range n.Actions {
		actionPath := path + "/" + tree.SegmentChildrens + "/" + action
		child := OutlineEntry{Name: action, Path: actionPath, Type: EntryAction}
		if n.Childrens != nil && descend {
			if next, ok := n.Childrens.Get(action); ok {
				child.Children = []OutlineEntry{outlineNode(t, next, actionPath, depth+1)}
			}
		}
		entry.Children = append(entry.Children, child)
	}

	if n.DealCards != nil {
		cardsPath := path + "/" + tree.SegmentDealCards
		group := OutlineEntry{Name: "Cards", Path: cardsPath, Type: EntryCards, Children: []OutlineEntry{}}

		keys := n.DealCards.Keys()
		shown := keys[:min(len(keys), OutlineMaxCards)]
		for _, card := range shown {
			cardPath := cardsPath + "/" + card
			child := OutlineEntry{Name: poker.FormatCard(card), Path: cardPath, Type: EntryCard}
			if len(card) == 2 {
				child.Suit = card[1:]
			}
			if descend {
				next, _ := n.DealCards.Get(card)
				child.Children = []OutlineEntry{outlineNode(t, next, cardPath, depth+1)}
			}
			group.Children = append(group.Children, child)
		}
		if len(keys) > len(shown) {
			group.Children = append(group.Children, OutlineEntry{Name: "... more cards", Path: cardsPath, Type: EntryMoreCards})
		}
		entry.Children = append(entry.Children, group)
	}

	return entry
}
