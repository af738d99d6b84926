// Package reflector implements the Enigma reflector: a non-rotating
// wheel whose wiring is a fixed-point-free involution over the alphabet.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package reflector

import (
	"fmt"

	"github.com/coredds/enigma-breaker/internal/alphabet"
)

// Kind identifies one of the hard-coded reflector wiring tables.
type Kind string

const (
	A Kind = "A"
	B Kind = "B"
	C Kind = "C"

	// BThin and CThin are the M4 Naval Enigma thin reflectors, usable
	// only alongside a thin rotor (Beta/Gamma) in the fourth slot. They
	// are recognized by the engine but are never produced by the
	// template expander's "?" wildcard.
	BThin Kind = "B_thin"
	CThin Kind = "C_thin"
)

var wirings = map[Kind]string{
	A:     "EJMZALYXVBWFCRQUONTSPIKHGD",
	B:     "YRUHQSLDPXNGOKMIEBFZCWVJAT",
	C:     "FVPJIAOYEDRZXWGCTKUQSBNMHL",
	BThin: "ENKQAUYWJICOPBLMDXZVFTHRGS",
	CThin: "RDOBJNTKVEHMLFCWZAXGYIPSUQ",
}

// Valid reports whether k names a supported reflector kind.
func Valid(k Kind) bool {
	_, ok := wirings[k]
	return ok
}

// Wildcard lists the reflector kinds the template expander's "?"
// wildcard may propose.
func Wildcard() []Kind {
	return []Kind{A, B, C}
}

// NominalWiring returns the hard-coded factory wiring for a reflector
// kind, independent of any Machine's OverrideReflectorWiring state. The
// tampered-reflector search (pkg/reflectorperm) starts its wire-swap
// enumeration from this value.
func NominalWiring(k Kind) (string, error) {
	w, ok := wirings[k]
	if !ok {
		return "", fmt.Errorf("reflector: unsupported kind %q", k)
	}
	return w, nil
}

// Reflector is a non-rotating element: it reflects a signal using a
// fixed involution and sits at position 0 for the purposes of the
// offset arithmetic shared with rotors.
type Reflector struct {
	kind   Kind
	wiring [26]int
}

// New builds a reflector instance of the given kind.
func New(k Kind) (*Reflector, error) {
	w, ok := wirings[k]
	if !ok {
		return nil, fmt.Errorf("reflector: unsupported kind %q", k)
	}
	return newFromWiring(k, w)
}

// NewFromWiring builds a reflector from an arbitrary 26-letter wiring
// string, bypassing the kind registry. This is how the tampered-
// reflector search substitutes a scrambled wiring discovered by the
// reflector permutation generator (pkg/reflectorperm) while keeping the
// rest of the configuration, including the kind's nominal name, intact.
func NewFromWiring(k Kind, wiring string) (*Reflector, error) {
	return newFromWiring(k, wiring)
}

func newFromWiring(k Kind, wiring string) (*Reflector, error) {
	if len(wiring) != alphabet.Size {
		return nil, fmt.Errorf("reflector: wiring %q must have %d characters", wiring, alphabet.Size)
	}
	var mapping [26]int
	used := make([]bool, alphabet.Size)
	for i, ch := range wiring {
		out, err := alphabet.IndexOf(ch)
		if err != nil {
			return nil, fmt.Errorf("reflector: %w", err)
		}
		if out == i {
			return nil, fmt.Errorf("reflector: %c maps to itself, reflectors have no fixed points", ch)
		}
		if used[out] {
			return nil, fmt.Errorf("reflector: character %c used more than once in wiring", ch)
		}
		used[out] = true
		mapping[i] = out
	}
	for i, out := range mapping {
		if mapping[out] != i {
			return nil, fmt.Errorf("reflector: wiring %q is not an involution (%c->%c but not reciprocal)",
				wiring, alphabet.Letter(i), alphabet.Letter(out))
		}
	}
	return &Reflector{kind: k, wiring: mapping}, nil
}

// Kind returns the nominal reflector kind (preserved even when the
// wiring has been overridden by NewFromWiring for the tampered-
// reflector case).
func (r *Reflector) Kind() Kind { return r.kind }

// Reflect passes a signal through the reflector given the position of
// its right neighbour (the topmost movable or thin rotor). The
// reflector's own position is always 0; non-zero reflector ring settings
// are deliberately unsupported.
func (r *Reflector) Reflect(c, rightNeighbourPosition int) int {
	inputPin := alphabet.Mod(c - rightNeighbourPosition)
	return r.wiring[inputPin]
}

// Wiring renders the reflector's current wiring back to its 26-letter
// string form, e.g. for logging a scrambled reflector alongside a match.
func (r *Reflector) Wiring() string {
	letters := make([]rune, alphabet.Size)
	for i, out := range r.wiring {
		letters[i] = alphabet.Letter(out)
	}
	return string(letters)
}

// Clone returns an independent copy of the reflector.
func (r *Reflector) Clone() *Reflector {
	clone := *r
	return &clone
}
