// Package tree holds a solver game tree in memory and resolves paths into it.
//
// A tree is decoded once into an arena of typed nodes addressed by NodeID.
// Optional JSON fields stay optional: pointer and slice fields are nil when
// the source omitted them, so callers can tell "absent" from a zero value.
// Branch maps and strategy tables keep the order the solver wrote them in.
package tree

// NodeID addresses a node inside a Tree.
type NodeID int32

// Root is the ID of the root node of every tree.
const Root NodeID = 0

// MaxDepth bounds how deeply nodes may nest in a source document.
const MaxDepth = 256

// Node is one point in the game tree: a decision point (has Actions), a
// chance point (has DealCards) or a terminal.
type Node struct {
	NodeType   *string
	Player     *int
	Board      *string
	Pot        *float64
	PotSize    *float64
	DealNumber *int

	Actions   []string
	Childrens *Branches
	DealCards *Branches
	Strategy  *Strategy

	// Fields holds any other object-valued fields, decoded as nodes. For a
	// branch container node it holds the branch entries.
	Fields *Branches
}

// PotValue returns the pot, preferring "pot" over "potSize".
func (n *Node) PotValue() (float64, bool) {
	switch {
	case n.Pot != nil:
		return *n.Pot, true
	case n.PotSize != nil:
		return *n.PotSize, true
	default:
		return 0, false
	}
}

// Branches is an ordered mapping from a label (an action or a card) to a
// child node.
type Branches struct {
	keys      []string
	ids       map[string]NodeID
	container NodeID
}

func newBranches() *Branches {
	return &Branches{ids: make(map[string]NodeID)}
}

// set keeps the first position of a repeated key and its last value.
func (b *Branches) set(key string, id NodeID) {
	if _, ok := b.ids[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.ids[key] = id
}

// Keys returns the labels in source order.
func (b *Branches) Keys() []string {
	return b.keys
}

// Len returns the number of distinct labels.
func (b *Branches) Len() int {
	return len(b.keys)
}

// Get returns the child for a label.
func (b *Branches) Get(key string) (NodeID, bool) {
	id, ok := b.ids[key]
	return id, ok
}

// Container returns the node that stands for the mapping itself.
func (b *Branches) Container() NodeID {
	return b.container
}

// Strategy is a node's mixed strategy: one probability vector per hand key,
// aligned positionally with Actions.
type Strategy struct {
	// Actions is nil when the source had no "actions" entry.
	Actions []string
	// Hands is nil when the source had no "strategy" entry.
	Hands *HandTable
}

// HandTable maps four character hand keys to probability vectors, keeping
// source order.
type HandTable struct {
	keys  []string
	probs [][]float64
	index map[string]int
}

func newHandTable() *HandTable {
	return &HandTable{index: make(map[string]int)}
}

func (h *HandTable) set(key string, probs []float64) {
	if i, ok := h.index[key]; ok {
		h.probs[i] = probs
		return
	}
	h.index[key] = len(h.keys)
	h.keys = append(h.keys, key)
	h.probs = append(h.probs, probs)
}

// Keys returns the hand keys in source order.
func (h *HandTable) Keys() []string {
	return h.keys
}

// Len returns the number of hand keys.
func (h *HandTable) Len() int {
	return len(h.keys)
}

// At returns the probability vector of the i-th key.
func (h *HandTable) At(i int) []float64 {
	return h.probs[i]
}

// Get returns the probability vector for a hand key.
func (h *HandTable) Get(key string) ([]float64, bool) {
	i, ok := h.index[key]
	if !ok {
		return nil, false
	}
	return h.probs[i], true
}

// Tree is an immutable, decoded game tree.
type Tree struct {
	nodes []Node
}

// Node returns the node with the given ID.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Len returns the number of nodes in the arena, branch containers included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) alloc() NodeID {
	t.nodes = append(t.nodes, Node{})
	return NodeID(len(t.nodes) - 1)
}
