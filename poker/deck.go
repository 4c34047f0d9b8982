package poker

// Deck is a standard 52-card deck in a fixed order: suits in solver order,
// ranks from deuce to ace within each suit.
type Deck [52]Card

// NewDeck returns the deck in its fixed order.
func NewDeck() Deck {
	var d Deck
	i := 0
	for s := 0; s < len(Suits); s++ {
		for r := len(Ranks) - 1; r >= 0; r-- {
			d[i] = Card{Rank: Ranks[r], Suit: Suits[s]}
			i++
		}
	}
	return d
}

// Combos returns every unordered two-card hand as a four character key. The
// card dealt earlier in deck order comes first, so each hand appears once.
func (d Deck) Combos() []string {
	combos := make([]string, 0, 1326)
	for i := 0; i < len(d); i++ {
		for j := i + 1; j < len(d); j++ {
			combos = append(combos, d[i].String()+d[j].String())
		}
	}
	return combos
}
