// Package reflectorperm generates every reflector wiring reachable from a
// known-good reflector by exactly n wire swaps, modelling a tampered
// reflector that has had a small number of its solder points re-crossed
//.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package reflectorperm

import (
	"fmt"
	"sort"

	"github.com/coredds/enigma-breaker/internal/alphabet"
)

// Pair is an unordered letter pair, one wire of a reflector's involution.
type Pair [2]rune

func (p Pair) normalize() Pair {
	if p[0] > p[1] {
		return Pair{p[1], p[0]}
	}
	return p
}

// wiringToPairs converts a 26-letter reflector wiring string into its 13
// unique unordered pairs.
func wiringToPairs(wiring string) ([]Pair, error) {
	if len(wiring) != alphabet.Size {
		return nil, fmt.Errorf("reflectorperm: wiring must be %d letters, got %d", alphabet.Size, len(wiring))
	}
	letters := []rune(wiring)
	seen := make([]bool, alphabet.Size)
	var pairs []Pair
	for i, out := range letters {
		j := int(out - 'A')
		if j < 0 || j >= alphabet.Size {
			return nil, fmt.Errorf("reflectorperm: %q contains a non-letter", wiring)
		}
		if seen[i] {
			continue
		}
		if j == i {
			return nil, fmt.Errorf("reflectorperm: letter at index %d maps to itself", i)
		}
		seen[i] = true
		seen[j] = true
		pairs = append(pairs, Pair{rune('A' + i), out}.normalize())
	}
	if len(pairs) != alphabet.Size/2 {
		return nil, fmt.Errorf("reflectorperm: %q is not a 13-pair involution", wiring)
	}
	return pairs, nil
}

// pairsToWiring is the inverse of wiringToPairs: given the full set of 13
// disjoint pairs covering the alphabet, render the 26-letter wiring
// string.
func pairsToWiring(pairs []Pair) string {
	var mapping [alphabet.Size]rune
	for _, p := range pairs {
		a, b := int(p[0]-'A'), int(p[1]-'A')
		mapping[a] = p[1]
		mapping[b] = p[0]
	}
	return string(mapping[:])
}

// combinations4 enumerates every 4-element index subset of [0, n).
func combinations4(n int) [][4]int {
	var out [][4]int
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					out = append(out, [4]int{a, b, c, d})
				}
			}
		}
	}
	return out
}

// partitions3 gives the 3 distinct ways to split a 4-element set into two
// disjoint 2-element couples=6 picks, each
// counted twice by couple order, so 3 distinct partitions).
var partitions3 = [3][2][2]int{
	{{0, 1}, {2, 3}},
	{{0, 2}, {1, 3}},
	{{0, 3}, {1, 2}},
}

// regroupings returns the 2 new ways to re-pair two pairs, excluding the
// original grouping.
func regroupings(p1, p2 Pair) [2][2]Pair {
	a, b := p1[0], p1[1]
	c, d := p2[0], p2[1]
	return [2][2]Pair{
		{Pair{a, c}.normalize(), Pair{b, d}.normalize()},
		{Pair{a, d}.normalize(), Pair{b, c}.normalize()},
	}
}

// GenerateN2 enumerates every distinct reflector wiring reachable from
// wiring by exactly 2 disjoint wire swaps, deduplicated.
// For a 13-pair reflector that is 715 subsets × 3 partitions × 4
// regroupings = 8 580 wirings, all of them distinct.
func GenerateN2(wiring string) ([]string, error) {
	pairs, err := wiringToPairs(wiring)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string

	for _, subsetIdx := range combinations4(len(pairs)) {
		subset := [4]Pair{pairs[subsetIdx[0]], pairs[subsetIdx[1]], pairs[subsetIdx[2]], pairs[subsetIdx[3]]}
		inSubset := map[int]bool{subsetIdx[0]: true, subsetIdx[1]: true, subsetIdx[2]: true, subsetIdx[3]: true}

		unchanged := make([]Pair, 0, len(pairs)-4)
		for i, p := range pairs {
			if !inSubset[i] {
				unchanged = append(unchanged, p)
			}
		}

		for _, part := range partitions3 {
			couple1 := [2]Pair{subset[part[0][0]], subset[part[0][1]]}
			couple2 := [2]Pair{subset[part[1][0]], subset[part[1][1]]}

			regroup1 := regroupings(couple1[0], couple1[1])
			regroup2 := regroupings(couple2[0], couple2[1])

			for _, r1 := range regroup1 {
				for _, r2 := range regroup2 {
					newPairs := make([]Pair, 0, len(pairs))
					newPairs = append(newPairs, unchanged...)
					newPairs = append(newPairs, r1[0], r1[1], r2[0], r2[1])

					w := pairsToWiring(newPairs)
					if !seen[w] {
						seen[w] = true
						out = append(out, w)
					}
				}
			}
		}
	}

	sort.Strings(out)
	return out, nil
}
