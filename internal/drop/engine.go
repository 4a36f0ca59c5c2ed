// Package drop converts a resolved item catalog into a normalized drop
// probability distribution and projects it onto the time axis.
package drop

import (
	"errors"
	"fmt"

	"github.com/tuxkoh/rng-backend/internal/catalog"
)

var (
	// ErrNotFound reports a target name absent from the distribution.
	ErrNotFound = errors.New("item not in distribution")
	// ErrInvalidCertainty reports a certainty target outside [0, 1).
	ErrInvalidCertainty = errors.New("certainty must be in [0, 1)")
)

// Odds holds one item's share of a distribution.
type Odds struct {
	Probability     float64 // normalized share across the working set; sums to 1
	Individual      float64 // 1/EffectiveChance, independent of the rest of the set
	EffectiveChance float64 // post-luck "1 in N" denominator
	Chance          float64 // nominal denominator
	Raw             bool
	Blacklisted     bool
}

// Distribution is the normalized probability distribution over one working
// set. It is immutable once computed; Names preserves the resolver's order.
type Distribution struct {
	items map[string]Odds
	names []string

	// TotalWeight is the sum of individual probabilities, exposed as a
	// diagnostic. It is not itself a probability.
	TotalWeight float64
	// Luck echoes the multiplier the distribution was computed under.
	Luck int
}

// EffectiveChance computes the post-luck denominator for one item:
// raw items keep the nominal value, normal items divide by luck with the
// result floored at 1 so the success probability caps at 100%.
func EffectiveChance(it catalog.Item, luck int) float64 {
	chance := it.Chance
	if chance <= 0 {
		chance = 1
	}
	if it.Class != catalog.ClassRaw {
		if luck < 1 {
			luck = 1
		}
		chance = chance / float64(luck)
	}
	if chance < 1 {
		chance = 1
	}
	return chance
}

// Compute builds the normalized distribution for a working set under the
// given luck multiplier. An empty set yields an empty distribution rather
// than an error; a zero weight sum leaves all shares at zero.
func Compute(set []catalog.Item, luck int) Distribution {
	if luck < 1 {
		luck = 1
	}
	d := Distribution{
		items: make(map[string]Odds, len(set)),
		names: make([]string, 0, len(set)),
		Luck:  luck,
	}

	sum := 0.0
	for _, it := range set {
		eff := EffectiveChance(it, luck)
		ind := 1.0 / eff
		d.items[it.Name] = Odds{
			Individual:      ind,
			EffectiveChance: eff,
			Chance:          it.Chance,
			Raw:             it.Class == catalog.ClassRaw,
			Blacklisted:     it.Blacklisted,
		}
		d.names = append(d.names, it.Name)
		sum += ind
	}
	d.TotalWeight = sum

	if sum > 0 {
		for name, o := range d.items {
			o.Probability = o.Individual / sum
			d.items[name] = o
		}
	}
	return d
}

// Odds returns the entry for name, or ErrNotFound.
func (d Distribution) Odds(name string) (Odds, error) {
	o, ok := d.items[name]
	if !ok {
		return Odds{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return o, nil
}

// Names returns the item names in working-set order.
func (d Distribution) Names() []string {
	return append([]string(nil), d.names...)
}

// Len reports the number of items in the distribution.
func (d Distribution) Len() int { return len(d.names) }
