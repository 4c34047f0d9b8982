// Package poker holds the card primitives shared by the solver tree views:
// rank and suit parsing, display formatting and hand-key classification.
//
// Cards are written the way solver output writes them: a rank character
// followed by a lowercase suit character ("Ah", "Tc"). Boards are flat
// strings of such pairs and hand keys are two cards back to back ("AcKd").
package poker

import (
	"fmt"
	"strings"
)

// Ranks lists every rank from highest to lowest. This is also the row and
// column order of the starting-hand grid.
const Ranks = "AKQJT98765432"

// Suits lists every suit in solver order (c < d < h < s).
const Suits = "cdhs"

// RankValue returns the numeric value of a rank character (2-14), or 0 when
// the character is not a rank.
func RankValue(r byte) int {
	switch r {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return int(r-'0')
	case 'T':
		return 10
	case 'J':
		return 11
	case 'Q':
		return 12
	case 'K':
		return 13
	case 'A':
		return 14
	default:
		return 0
	}
}

// IsRank reports whether r is one of the 13 rank characters.
func IsRank(r byte) bool {
	return RankValue(r) != 0
}

// IsSuit reports whether s is one of the 4 suit characters.
func IsSuit(s byte) bool {
	return strings.IndexByte(Suits, s) >= 0
}

// RankName returns the English name of a broadway rank, or "" for the rest.
func RankName(r byte) string {
	switch r {
	case 'A':
		return "Ace"
	case 'K':
		return "King"
	case 'Q':
		return "Queen"
	case 'J':
		return "Jack"
	case 'T':
		return "Ten"
	default:
		return ""
	}
}

// SuitSymbol returns the unicode symbol for a suit character. Unknown
// characters are returned unchanged.
func SuitSymbol(s byte) string {
	switch s {
	case 'c':
		return "♣"
	case 'd':
		return "♦"
	case 'h':
		return "♥"
	case 's':
		return "♠"
	default:
		return string(s)
	}
}

// Card is a single rank/suit pair as found in solver output.
type Card struct {
	Rank byte
	Suit byte
}

// ParseCard parses a two character card token like "As".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}
	if !IsRank(s[0]) {
		return Card{}, fmt.Errorf("invalid rank: %c", s[0])
	}
	if !IsSuit(s[1]) {
		return Card{}, fmt.Errorf("invalid suit: %c", s[1])
	}
	return Card{Rank: s[0], Suit: s[1]}, nil
}

// String returns the solver token for the card (e.g. "As").
func (c Card) String() string {
	return string([]byte{c.Rank, c.Suit})
}

// Pretty returns the card with its suit symbol (e.g. "A♠").
func (c Card) Pretty() string {
	return string(c.Rank) + SuitSymbol(c.Suit)
}

// Value returns the numeric rank value (2-14), 0 for an unknown rank.
func (c Card) Value() int {
	return RankValue(c.Rank)
}

// ParseBoard splits a flat board string into cards. Whitespace is ignored and
// a trailing unpaired character is dropped. Characters are not validated, so
// unknown ranks come back with a Value of 0.
func ParseBoard(board string) []Card {
	compact := strings.Join(strings.Fields(board), "")
	cards := make([]Card, 0, len(compact)/2)
	for i := 0; i+1 < len(compact); i += 2 {
		cards = append(cards, Card{Rank: compact[i], Suit: compact[i+1]})
	}
	return cards
}

// FormatBoard renders a board for display ("A♥ K♦ 7♠"). An empty board is
// rendered as "None".
func FormatBoard(board string) string {
	cards := ParseBoard(board)
	if len(cards) == 0 {
		return "None"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Pretty()
	}
	return strings.Join(parts, " ")
}

// FormatCard renders a two character token with its suit symbol. Tokens of
// any other length are returned unchanged.
func FormatCard(token string) string {
	if len(token) != 2 {
		return token
	}
	return Card{Rank: token[0], Suit: token[1]}.Pretty()
}

// FormatHand renders a four character hand key with suit symbols
// ("AcKd" -> "A♣K♦"). Keys of any other length are returned unchanged.
func FormatHand(key string) string {
	if len(key) != 4 {
		return key
	}
	return FormatCard(key[:2]) + FormatCard(key[2:])
}
