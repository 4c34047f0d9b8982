package tree

// DecisionPoints counts the nodes carrying an "actions" field. The walk
// follows childrens only for actions the node lists (and the map holds) and
// every dealcards branch; auxiliary fields are not followed.
func (t *Tree) DecisionPoints() int {
	count := 0
	stack := []NodeID{Root}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Node(id)

		if n.Actions != nil {
			count++
			if n.Childrens != nil {
				for _, action := range n.Actions {
					if child, ok := n.Childrens.Get(action); ok {
						stack = append(stack, child)
					}
				}
			}
		}

		if n.DealCards != nil {
			for _, card := range n.DealCards.Keys() {
				child, _ := n.DealCards.Get(card)
				stack = append(stack, child)
			}
		}
	}

	return count
}

// Stats summarises the shape of a tree.
type Stats struct {
	Nodes     int
	Terminals int
	MaxDepth  int
}

// Stats walks every branch of the tree once.
func (t *Tree) Stats() Stats {
	type frame struct {
		id    NodeID
		depth int
	}

	var s Stats
	stack := []frame{{id: Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Node(f.id)

		s.Nodes++
		s.MaxDepth = max(s.MaxDepth, f.depth)

		children := 0
		for _, br := range []*Branches{n.Childrens, n.DealCards} {
			if br == nil {
				continue
			}
			for _, key := range br.Keys() {
				child, _ := br.Get(key)
				stack = append(stack, frame{id: child, depth: f.depth + 1})
				children++
			}
		}
		if children == 0 {
			s.Terminals++
		}
	}
	return s
}
