// Package texture describes community boards in plain language: flush
// potential, pairing, connectivity and the highest broadway card.
package texture

import (
	"fmt"
	"slices"

	"github.com/lox/solverview/poker"
)

// DryBoard is the only observation reported when nothing else applies.
const DryBoard = "Dry board texture"

// maxConnectedSpan is the widest rank spread that still fits in a straight.
const maxConnectedSpan = 4

// AnalyzeBoard returns the observations for a flat board string ("AhKd7s").
// Each check appends independently in a fixed order: flush, pairing,
// connectivity, high card. Boards without a single full card return an
// empty slice.
func AnalyzeBoard(board string) []string {
	cards := poker.ParseBoard(board)
	if len(cards) == 0 {
		return []string{}
	}

	analysis := make([]string, 0, 4)
	analysis = append(analysis, flushNotes(cards)...)
	if note, ok := pairingNote(cards); ok {
		analysis = append(analysis, note)
	}
	if note, ok := connectivityNote(cards); ok {
		analysis = append(analysis, note)
	}
	if note, ok := highCardNote(cards); ok {
		analysis = append(analysis, note)
	}

	if len(analysis) == 0 {
		analysis = append(analysis, DryBoard)
	}
	return analysis
}

// tally counts occurrences keeping first-appearance order.
type tally struct {
	order  []byte
	counts map[byte]int
}

func newTally() *tally {
	return &tally{counts: make(map[byte]int)}
}

func (t *tally) add(b byte) {
	if _, ok := t.counts[b]; !ok {
		t.order = append(t.order, b)
	}
	t.counts[b]++
}

func flushNotes(cards []poker.Card) []string {
	suits := newTally()
	for _, c := range cards {
		suits.add(c.Suit)
	}

	var notes []string
	for _, suit := range suits.order {
		if n := suits.counts[suit]; n >= 3 {
			notes = append(notes, fmt.Sprintf("Flush draw possible (%d %s cards)", n, poker.SuitSymbol(suit)))
		}
	}
	return notes
}

func pairingNote(cards []poker.Card) (string, bool) {
	ranks := newTally()
	for _, c := range cards {
		ranks.add(c.Rank)
	}

	var paired []byte
	for _, r := range ranks.order {
		if ranks.counts[r] >= 2 {
			paired = append(paired, r)
		}
	}
	if len(paired) == 0 {
		return "", false
	}

	// order matters: two ranks are two pair whatever their counts
	switch {
	case len(paired) == 1 && ranks.counts[paired[0]] == 2:
		return fmt.Sprintf("Paired board (%c)", paired[0]), true
	case len(paired) == 1 && ranks.counts[paired[0]] == 3:
		return fmt.Sprintf("Trips on board (%c)", paired[0]), true
	case len(paired) == 2:
		return fmt.Sprintf("Two pair on board (%c and %c)", paired[0], paired[1]), true
	case len(paired) == 1 && ranks.counts[paired[0]] == 4:
		return fmt.Sprintf("Quads on board (%c)", paired[0]), true
	}
	return "", false
}

func connectivityNote(cards []poker.Card) (string, bool) {
	if len(cards) < 3 {
		return "", false
	}

	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = c.Value()
	}
	slices.Sort(values)

	n := len(values)
	switch {
	case values[n-1]-values[0] <= maxConnectedSpan:
		return "Connected board (straight possible)", true
	case values[n-1]-values[1] <= maxConnectedSpan || values[n-2]-values[0] <= maxConnectedSpan:
		return "Semi-connected board", true
	}
	return "", false
}

func highCardNote(cards []poker.Card) (string, bool) {
	var best poker.Card
	for _, c := range cards {
		if poker.RankName(c.Rank) == "" {
			continue
		}
		if c.Value() > best.Value() {
			best = c
		}
	}
	if best.Value() == 0 {
		return "", false
	}
	return "High card: " + poker.RankName(best.Rank), true
}
