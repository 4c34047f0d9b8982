package tree

import (
	"fmt"
	"strings"
)

// Path segments that consume the following segment as a branch label.
const (
	SegmentChildrens = "childrens"
	SegmentDealCards = "dealcards"
)

// SplitPath splits a slash-delimited path, dropping empty segments.
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// Resolve walks a path from the root. "childrens/<action>" and
// "dealcards/<card>" descend into a branch; any other segment names a field
// of the current node (an auxiliary object, or a branch mapping itself).
// Resolution never backtracks and fails with ErrNodeNotFound rather than
// returning a partial result. The empty path is the root.
func Resolve(t *Tree, path string) (NodeID, error) {
	segments := SplitPath(path)
	id := Root

	for i := 0; i < len(segments); {
		n := t.Node(id)
		seg := segments[i]

		if (seg == SegmentChildrens || seg == SegmentDealCards) && i+1 < len(segments) {
			br := n.Childrens
			if seg == SegmentDealCards {
				br = n.DealCards
			}
			if br == nil {
				return 0, notFound(path)
			}
			next, ok := br.Get(segments[i+1])
			if !ok {
				return 0, notFound(path)
			}
			id = next
			i += 2
			continue
		}

		next, ok := n.field(seg)
		if !ok {
			return 0, notFound(path)
		}
		id = next
		i++
	}

	return id, nil
}

// field looks up a node-valued field by name.
func (n *Node) field(name string) (NodeID, bool) {
	switch {
	case name == SegmentChildrens && n.Childrens != nil:
		return n.Childrens.Container(), true
	case name == SegmentDealCards && n.DealCards != nil:
		return n.DealCards.Container(), true
	case n.Fields != nil:
		return n.Fields.Get(name)
	}
	return 0, false
}

func notFound(path string) error {
	return fmt.Errorf("%w at path: %s", ErrNodeNotFound, path)
}
