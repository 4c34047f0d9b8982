package hands

// Match reports whether two hand keys describe the same two cards. The cards
// may be listed in either order, so "AcKd" matches "KdAc" but not "AdKc".
// Keys that are not four characters long never match.
func Match(a, b string) bool {
	if len(a) != 4 || len(b) != 4 {
		return false
	}
	a1, a2 := a[:2], a[2:]
	b1, b2 := b[:2], b[2:]
	return (a1 == b1 && a2 == b2) || (a1 == b2 && a2 == b1)
}

// FirstMatch returns the index of the first key that matches hand, or -1.
func FirstMatch(hand string, keys []string) int {
	for i, key := range keys {
		if Match(hand, key) {
			return i
		}
	}
	return -1
}

// AllMatches returns the indexes of every key that matches hand, in key
// order.
func AllMatches(hand string, keys []string) []int {
	var found []int
	for i, key := range keys {
		if Match(hand, key) {
			found = append(found, i)
		}
	}
	return found
}
