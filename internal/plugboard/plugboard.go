// Package plugboard implements the Enigma plugboard (Steckerbrett): a
// partial involution of at most 13 disjoint letter pairs applied before
// and after the rotor stack.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package plugboard

import (
	"fmt"
	"sort"

	"github.com/coredds/enigma-breaker/internal/alphabet"
)

// MaxPairs is the largest number of plugboard pairs a 26-letter alphabet
// admits.
const MaxPairs = alphabet.Size / 2

// Pair is one unordered plugboard lead, e.g. {A, Z}.
type Pair [2]rune

// Normalize returns the pair with its two letters in a canonical
// (lexicographic) order, so equal pairs compare equal regardless of the
// order their letters were given in.
func (p Pair) Normalize() Pair {
	if p[0] > p[1] {
		return Pair{p[1], p[0]}
	}
	return p
}

func (p Pair) String() string {
	n := p.Normalize()
	return string(n[0]) + string(n[1])
}

// Plugboard holds a set of pairwise-disjoint letter pairs and performs
// the reciprocal substitution they describe.
type Plugboard struct {
	mapping [26]int
	wired   [26]bool
	pairs   []Pair
}

// New builds a plugboard from a list of pairs. It rejects self-pairs and
// any letter appearing in more than one pair.
func New(pairs []Pair) (*Plugboard, error) {
	if len(pairs) > MaxPairs {
		return nil, fmt.Errorf("plugboard: %d pairs exceeds maximum of %d", len(pairs), MaxPairs)
	}
	pb := &Plugboard{}
	for i := range pb.mapping {
		pb.mapping[i] = i
	}
	for _, p := range pairs {
		if err := pb.add(p); err != nil {
			return nil, err
		}
	}
	return pb, nil
}

func (pb *Plugboard) add(p Pair) error {
	a, err := alphabet.IndexOf(p[0])
	if err != nil {
		return fmt.Errorf("plugboard: %w", err)
	}
	b, err := alphabet.IndexOf(p[1])
	if err != nil {
		return fmt.Errorf("plugboard: %w", err)
	}
	if a == b {
		return fmt.Errorf("plugboard: %c cannot be paired with itself", p[0])
	}
	if pb.wired[a] {
		return fmt.Errorf("plugboard: %c is already wired", p[0])
	}
	if pb.wired[b] {
		return fmt.Errorf("plugboard: %c is already wired", p[1])
	}
	pb.mapping[a] = b
	pb.mapping[b] = a
	pb.wired[a] = true
	pb.wired[b] = true
	pb.pairs = append(pb.pairs, p.Normalize())
	return nil
}

// Encode applies the plugboard substitution to a letter index. Unwired
// letters pass through unchanged.
func (pb *Plugboard) Encode(c int) int {
	return pb.mapping[c]
}

// Pairs returns the plugboard's pairs, each normalized and the whole
// list sorted, for stable comparison and display.
func (pb *Plugboard) Pairs() []Pair {
	out := make([]Pair, len(pb.pairs))
	copy(out, pb.pairs)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Clone returns an independent copy of the plugboard.
func (pb *Plugboard) Clone() *Plugboard {
	clone := *pb
	clone.pairs = append([]Pair(nil), pb.pairs...)
	return &clone
}

// Validate checks a raw pair list against the plugboard invariants
// (disjoint, no self-pairs, at most MaxPairs) without building a
// Plugboard, for use by callers that only need a yes/no answer (the
// expander validates candidate plug tuples this way before committing
// to a full Configuration).
func Validate(pairs []Pair) error {
	_, err := New(pairs)
	return err
}
