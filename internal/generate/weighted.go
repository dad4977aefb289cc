package generate

import (
	"errors"
	"math/rand"
)

// ErrNoChoices is returned when a weight table is empty or carries no
// positive weight.
var ErrNoChoices = errors.New("no weighted choices")

// Choice is one entry of a weight table. Weights are relative and need not sum
// to 1.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// WeightedChoice draws a value with probability proportional to its weight.
// Entries with zero weight are never returned. Tables are ordered slices so a
// seeded source always yields the same sequence.
func WeightedChoice[T any](rng *rand.Rand, choices []Choice[T]) (T, error) {
	var zero T
	var total float64
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total <= 0 {
		return zero, ErrNoChoices
	}

	target := rng.Float64() * total
	var cumulative float64
	last := -1
	for i, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		cumulative += c.Weight
		if target < cumulative {
			return c.Value, nil
		}
		last = i
	}
	// Only reachable through floating-point rounding on the final sum.
	return choices[last].Value, nil
}

// mustChoose draws from one of the package's static tables, which are
// non-empty by construction.
func mustChoose[T any](rng *rand.Rand, choices []Choice[T]) T {
	v, err := WeightedChoice(rng, choices)
	if err != nil {
		panic(err)
	}
	return v
}

// sampleDistinct draws up to n distinct values without replacement.
func sampleDistinct[T comparable](rng *rand.Rand, choices []Choice[T], n int) []T {
	remaining := make([]Choice[T], len(choices))
	copy(remaining, choices)

	out := make([]T, 0, n)
	for len(out) < n {
		v, err := WeightedChoice(rng, remaining)
		if err != nil {
			break
		}
		out = append(out, v)
		for i := range remaining {
			if remaining[i].Value == v {
				remaining[i].Weight = 0
			}
		}
	}
	return out
}
