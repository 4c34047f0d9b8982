package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		{name: "ace of spades", input: "As", want: Card{Rank: 'A', Suit: 's'}},
		{name: "two of clubs", input: "2c", want: Card{Rank: '2', Suit: 'c'}},
		{name: "ten of hearts", input: "Th", want: Card{Rank: 'T', Suit: 'h'}},
		{name: "bad rank", input: "1h", wantErr: true},
		{name: "bad suit", input: "Ax", wantErr: true},
		{name: "uppercase suit", input: "AS", wantErr: true},
		{name: "too long", input: "Ahh", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := ParseCard(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, card)
			assert.Equal(t, tt.input, card.String())
		})
	}
}

func TestRankValue(t *testing.T) {
	t.Parallel()
	for i := 0; i < len(Ranks); i++ {
		assert.Equal(t, 14-i, RankValue(Ranks[i]), "rank %c", Ranks[i])
	}
	assert.Equal(t, 0, RankValue('X'))
	assert.Equal(t, 0, RankValue('1'))
}

func TestFormatBoard(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "A♥ K♦ 7♠", FormatBoard("AhKd7s"))
	assert.Equal(t, "A♥ K♦ 7♠", FormatBoard("Ah Kd 7s"))
	assert.Equal(t, "None", FormatBoard(""))
	// trailing half card is dropped
	assert.Equal(t, "Q♣", FormatBoard("QcJ"))
}

func TestFormatHand(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "A♣K♦", FormatHand("AcKd"))
	assert.Equal(t, "AcK", FormatHand("AcK"))
	assert.Equal(t, "T♠", FormatCard("Ts"))
	assert.Equal(t, "T", FormatCard("T"))
}

func TestDeckCombos(t *testing.T) {
	t.Parallel()
	deck := NewDeck()

	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)

	combos := deck.Combos()
	assert.Len(t, combos, 1326)

	unique := make(map[string]bool, len(combos))
	for _, combo := range combos {
		require.Len(t, combo, 4)
		assert.NotEqual(t, combo[:2], combo[2:])
		unique[combo] = true
	}
	assert.Len(t, unique, 1326)
}

func TestCategorizeKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key  string
		want HandKind
	}{
		{"AcAd", KindPair},
		{"AcKc", KindSuited},
		{"AcKd", KindOffsuit},
		{"7h2s", KindOffsuit},
		{"AcK", KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizeKey(tt.key), tt.key)
	}

	assert.Equal(t, 6, KindPair.ExpectedCombos())
	assert.Equal(t, 4, KindSuited.ExpectedCombos())
	assert.Equal(t, 12, KindOffsuit.ExpectedCombos())
	assert.Equal(t, 0, KindUnknown.ExpectedCombos())
}
