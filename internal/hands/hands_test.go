package hands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/solverview/poker"
)

func TestGridLayout(t *testing.T) {
	grid := Grid()
	require.Len(t, grid, 169)

	counts := map[poker.HandKind]int{}
	labels := map[string]bool{}
	for _, c := range grid {
		counts[c.Kind]++
		assert.False(t, labels[c.Label], "duplicate label %s", c.Label)
		labels[c.Label] = true
	}

	assert.Equal(t, 13, counts[poker.KindPair])
	assert.Equal(t, 78, counts[poker.KindSuited])
	assert.Equal(t, 78, counts[poker.KindOffsuit])

	assert.Equal(t, "AA", ClassAt(0, 0).Label)
	assert.Equal(t, "AKs", ClassAt(0, 1).Label)
	assert.Equal(t, "AKo", ClassAt(1, 0).Label)
	assert.Equal(t, "32o", ClassAt(12, 11).Label)
	assert.Equal(t, "22", ClassAt(12, 12).Label)
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label     string
		wantLabel string
		wantKind  poker.HandKind
		wantRow   int
		wantCol   int
	}{
		{"AA", "AA", poker.KindPair, 0, 0},
		{"AKs", "AKs", poker.KindSuited, 0, 1},
		{"KAs", "AKs", poker.KindSuited, 0, 1},
		{"AKo", "AKo", poker.KindOffsuit, 1, 0},
		{"72o", "72o", poker.KindOffsuit, 12, 7},
		{"T9s", "T9s", poker.KindSuited, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			c, err := ParseLabel(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, c.Label)
			assert.Equal(t, tt.wantKind, c.Kind)
			assert.Equal(t, tt.wantRow, c.Row)
			assert.Equal(t, tt.wantCol, c.Col)
		})
	}
}

func TestParseLabelInvalid(t *testing.T) {
	for _, label := range []string{"", "A", "AK", "AAs", "AAo", "AKx", "XKs", "AKso", "akS"} {
		_, err := ParseLabel(label)
		assert.True(t, errors.Is(err, ErrInvalidHandFormat), "label %q: %v", label, err)
	}
}

func TestSolverHands(t *testing.T) {
	pair, _ := ParseLabel("AA")
	assert.Equal(t, []string{"AcAd", "AcAh", "AcAs", "AdAh", "AdAs", "AhAs"}, pair.SolverHands())

	suited, _ := ParseLabel("AKs")
	assert.Equal(t, []string{"AcKc", "AdKd", "AhKh", "AsKs"}, suited.SolverHands())

	offsuit, _ := ParseLabel("AKo")
	hands := offsuit.SolverHands()
	require.Len(t, hands, 12)
	assert.Equal(t, "AcKd", hands[0])
	assert.Equal(t, "AsKh", hands[11])
}

// Every physical two card combination belongs to exactly one grid cell.
func TestGridPartitionsDeck(t *testing.T) {
	combos := poker.NewDeck().Combos()

	total := 0
	for _, c := range Grid() {
		total += len(c.SolverHands())
	}
	assert.Equal(t, 13*6+78*4+78*12, total)
	assert.Equal(t, 1326, total)

	for _, combo := range combos {
		owners := 0
		for _, c := range Grid() {
			for _, hand := range c.SolverHands() {
				if Match(combo, hand) {
					owners++
				}
			}
		}
		require.Equal(t, 1, owners, "combo %s", combo)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"AcKd", "AcKd", true},
		{"AcKd", "KdAc", true},
		{"AcKd", "AdKc", false},
		{"AcAd", "AdAc", true},
		{"AcAd", "AcAh", false},
		{"AcKc", "KcAc", true},
		{"AcKc", "AhKh", false},
		{"AcKc", "AcKd", false},
		{"AcK", "AcK", false},
		{"AcKdx", "AcKdx", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestMatchSymmetric(t *testing.T) {
	var tokens []string
	for _, combo := range poker.NewDeck().Combos() {
		tokens = append(tokens, combo, combo[2:]+combo[:2])
	}
	// a sample of the cross product keeps the test fast
	for i := 0; i < len(tokens); i += 7 {
		for j := 0; j < len(tokens); j += 3 {
			a, b := tokens[i], tokens[j]
			require.Equal(t, Match(a, b), Match(b, a), "%s vs %s", a, b)
		}
	}
}

func TestFirstAndAllMatches(t *testing.T) {
	keys := []string{"KdAc", "AcKd", "AhKh"}
	assert.Equal(t, 0, FirstMatch("AcKd", keys))
	assert.Equal(t, []int{0, 1}, AllMatches("AcKd", keys))
	assert.Equal(t, -1, FirstMatch("AsKs", keys))
	assert.Nil(t, AllMatches("AsKs", keys))
}
