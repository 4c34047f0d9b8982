// Package report projects nodes of a solver tree into the views served to
// clients: node metadata, strategy summaries, the 13x13 hand matrix, per-hand
// breakdowns, EV tips, game info and the navigation outline.
//
// Every function is a pure read of an immutable tree. Fields that the source
// node omitted are omitted from the JSON encoding rather than written as
// null, except where a view documents otherwise.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/lox/solverview/internal/tree"
	"github.com/lox/solverview/poker"
)

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// percent converts a probability to a percentage with one decimal place.
func percent(p float64) float64 {
	return math.Round(p*1000) / 10
}

func percents(probs []float64) []float64 {
	out := make([]float64, len(probs))
	for i, p := range probs {
		out[i] = percent(p)
	}
	return out
}

// ActionFrequency is the mean probability of one action, as a percentage.
type ActionFrequency struct {
	Action  string
	Percent float64
}

// Frequencies lists action frequencies in the order the strategy lists its
// actions. It encodes as a JSON object keyed by action.
type Frequencies []ActionFrequency

// Get returns the frequency of an action.
func (f Frequencies) Get(action string) (float64, bool) {
	for _, af := range f {
		if af.Action == action {
			return af.Percent, true
		}
	}
	return 0, false
}

// MarshalJSON writes the frequencies as an object, keeping action order.
func (f Frequencies) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, af := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(af.Action)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(af.Percent)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of action percentages, keeping key order.
func (f *Frequencies) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("action frequencies: expected object, got %v", tok)
	}

	out := Frequencies{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		action, _ := tok.(string)
		var pct float64
		if err := dec.Decode(&pct); err != nil {
			return fmt.Errorf("action frequencies: %q: %w", action, err)
		}
		out = append(out, ActionFrequency{Action: action, Percent: pct})
	}
	*f = out
	return nil
}

// frequencies averages each action's probability over every hand with an
// entry at that action's index. Repeated action labels share one entry.
func frequencies(actions []string, table *tree.HandTable) Frequencies {
	totals := make(map[string]float64, len(actions))
	counts := make(map[string]int, len(actions))
	for i := 0; i < table.Len(); i++ {
		for j, p := range table.At(i) {
			if j >= len(actions) {
				break
			}
			totals[actions[j]] += p
			counts[actions[j]]++
		}
	}

	freqs := make(Frequencies, 0, len(actions))
	seen := make(map[string]bool, len(actions))
	for _, action := range actions {
		if seen[action] {
			continue
		}
		seen[action] = true

		pct := 0.0
		if n := counts[action]; n > 0 {
			pct = round2(totals[action] / float64(n) * 100)
		}
		freqs = append(freqs, ActionFrequency{Action: action, Percent: pct})
	}
	return freqs
}

// Composition counts the hand keys of a strategy table by kind.
type Composition struct {
	Pairs   int `json:"pairs"`
	Suited  int `json:"suited"`
	Offsuit int `json:"offsuit"`
	Total   int `json:"total"`
}

func composition(table *tree.HandTable) Composition {
	var c Composition
	for _, key := range table.Keys() {
		switch poker.CategorizeKey(key) {
		case poker.KindPair:
			c.Pairs++
		case poker.KindSuited:
			c.Suited++
		case poker.KindOffsuit:
			c.Offsuit++
		}
	}
	c.Total = c.Pairs + c.Suited + c.Offsuit
	return c
}

// fullStrategy returns the strategy of n when it has both an action list and
// a hand table.
func fullStrategy(n *tree.Node) (*tree.Strategy, bool) {
	s := n.Strategy
	if s == nil || s.Actions == nil || s.Hands == nil {
		return nil, false
	}
	return s, true
}

// averageInto adds probs to sum component-wise over len(sum) components.
// Missing components count as zero and extra ones are ignored.
func averageInto(sum, probs []float64) {
	for i := range sum {
		if i < len(probs) {
			sum[i] += probs[i]
		}
	}
}
