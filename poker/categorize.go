package poker

// HandKind is the structural category of a two card hand.
type HandKind string

const (
	KindPair    HandKind = "pair"
	KindSuited  HandKind = "suited"
	KindOffsuit HandKind = "offsuit"
	KindUnknown HandKind = "unknown"
)

// CategorizeKey classifies a four character hand key by its rank and suit
// symmetry. Equal ranks win over equal suits. Keys of the wrong length are
// KindUnknown.
func CategorizeKey(key string) HandKind {
	if len(key) != 4 {
		return KindUnknown
	}
	switch {
	case key[0] == key[2]:
		return KindPair
	case key[1] == key[3]:
		return KindSuited
	default:
		return KindOffsuit
	}
}

// ExpectedCombos returns how many distinct two card combinations a hand class
// of the given kind contains.
func (k HandKind) ExpectedCombos() int {
	switch k {
	case KindPair:
		return 6
	case KindSuited:
		return 4
	case KindOffsuit:
		return 12
	default:
		return 0
	}
}
