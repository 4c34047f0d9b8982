// Package hands maps the 169 canonical starting-hand classes onto the
// card-specific hand keys stored in solver strategy tables.
package hands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/solverview/poker"
)

// ErrInvalidHandFormat is returned when a hand label is not a pair ("QQ"),
// suited ("AKs") or offsuit ("AKo") class.
var ErrInvalidHandFormat = errors.New("invalid hand format")

// Size is the width and height of the starting-hand grid.
const Size = len(poker.Ranks)

// Class is one cell of the 13x13 starting-hand grid. Pairs sit on the
// diagonal, suited hands above it and offsuit hands below it.
type Class struct {
	Row   int
	Col   int
	Label string
	Kind  poker.HandKind
	// High and Low are the rank characters, High being the stronger rank.
	High byte
	Low  byte
}

// ClassAt returns the class for grid cell (row, col).
func ClassAt(row, col int) Class {
	r1, r2 := poker.Ranks[row], poker.Ranks[col]
	switch {
	case row == col:
		return Class{Row: row, Col: col, Label: string([]byte{r1, r1}), Kind: poker.KindPair, High: r1, Low: r1}
	case row < col:
		return Class{Row: row, Col: col, Label: string([]byte{r1, r2, 's'}), Kind: poker.KindSuited, High: r1, Low: r2}
	default:
		// below the diagonal the column holds the stronger rank
		return Class{Row: row, Col: col, Label: string([]byte{r2, r1, 'o'}), Kind: poker.KindOffsuit, High: r2, Low: r1}
	}
}

// Grid returns all 169 classes in row-major order.
func Grid() []Class {
	classes := make([]Class, 0, Size*Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			classes = append(classes, ClassAt(row, col))
		}
	}
	return classes
}

// ParseLabel parses a class label. The ranks may be given in either order
// ("KAs" is read as "AKs"); the returned class always carries the
// normalised label.
func ParseLabel(label string) (Class, error) {
	if len(label) < 2 || len(label) > 3 {
		return Class{}, fmt.Errorf("%w: %q", ErrInvalidHandFormat, label)
	}

	row := strings.IndexByte(poker.Ranks, label[0])
	col := strings.IndexByte(poker.Ranks, label[1])
	if row < 0 || col < 0 {
		return Class{}, fmt.Errorf("%w: invalid rank in %q", ErrInvalidHandFormat, label)
	}

	if row == col {
		if len(label) == 3 {
			return Class{}, fmt.Errorf("%w: pairs cannot be suited or offsuit: %q", ErrInvalidHandFormat, label)
		}
		return ClassAt(row, col), nil
	}

	if len(label) == 2 {
		return Class{}, fmt.Errorf("%w: missing suited/offsuit modifier: %q", ErrInvalidHandFormat, label)
	}

	strong, weak := min(row, col), max(row, col)
	switch label[2] {
	case 's':
		return ClassAt(strong, weak), nil
	case 'o':
		return ClassAt(weak, strong), nil
	default:
		return Class{}, fmt.Errorf("%w: invalid modifier %q", ErrInvalidHandFormat, label[2])
	}
}

// SolverHands returns the four character keys for every combination in the
// class, in generation order: 6 for a pair, 4 for a suited hand and 12 for an
// offsuit hand. Suits follow solver order (c < d < h < s).
func (c Class) SolverHands() []string {
	const suits = poker.Suits
	hands := make([]string, 0, c.Kind.ExpectedCombos())

	switch c.Kind {
	case poker.KindPair:
		for i := 0; i < len(suits); i++ {
			for j := i + 1; j < len(suits); j++ {
				hands = append(hands, string([]byte{c.High, suits[i], c.High, suits[j]}))
			}
		}
	case poker.KindSuited:
		for i := 0; i < len(suits); i++ {
			hands = append(hands, string([]byte{c.High, suits[i], c.Low, suits[i]}))
		}
	case poker.KindOffsuit:
		for i := 0; i < len(suits); i++ {
			for j := 0; j < len(suits); j++ {
				if i != j {
					hands = append(hands, string([]byte{c.High, suits[i], c.Low, suits[j]}))
				}
			}
		}
	}

	return hands
}
