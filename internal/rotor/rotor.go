// Package rotor implements the Enigma rotor: a fixed forward wiring
// permutation combined with mutable position and an immutable ring
// setting, replicating the standard Enigma I/M3/M4 wiring tables.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package rotor

import (
	"fmt"

	"github.com/coredds/enigma-breaker/internal/alphabet"
)

// Kind identifies one of the fixed, hard-coded rotor wiring tables.
type Kind string

// Movable wheels. These may occupy any of the rightmost three slots and
// advance under the stepping rule.
const (
	I   Kind = "I"
	II  Kind = "II"
	III Kind = "III"
	IV  Kind = "IV"
	V   Kind = "V"
)

// Thin-position wheels. They carry no notch. In a four-rotor
// configuration they occupy the leftmost (fourth) slot, which never
// advances; a three-rotor configuration may place them in any slot, where
// they step under the same rule as any other wheel in that slot.
const (
	Beta  Kind = "Beta"
	Gamma Kind = "Gamma"
)

type table struct {
	wiring string
	notch  rune // 0 if the kind has no notch
}

// tables holds the historical Enigma I/M3/M4 wiring and notch letters.
// These are hard-coded and must not be altered.
var tables = map[Kind]table{
	I:     {wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", notch: 'Q'},
	II:    {wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", notch: 'E'},
	III:   {wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO", notch: 'V'},
	IV:    {wiring: "ESOVPZJAYQUIRHXLNFTGKDCMWB", notch: 'J'},
	V:     {wiring: "VZBRGITYUPSDNHLXAWMJQOFECK", notch: 'Z'},
	Beta:  {wiring: "LEYJVCNIXWPBQMDRTAKZGFUHOS"},
	Gamma: {wiring: "FSOKANUERHMBTIYCWLQPZXVGJD"},
}

// Movable reports whether k is one of the notched wheels I through V, as
// opposed to the thin-position wheels Beta and Gamma.
func Movable(k Kind) bool {
	switch k {
	case I, II, III, IV, V:
		return true
	default:
		return false
	}
}

// Thin reports whether a rotor kind is a thin-position wheel (Beta or
// Gamma), the only kinds config.Validate accepts in the leftmost slot of
// a four-rotor configuration.
func Thin(k Kind) bool {
	switch k {
	case Beta, Gamma:
		return true
	default:
		return false
	}
}

// Valid reports whether k names a supported rotor kind.
func Valid(k Kind) bool {
	_, ok := tables[k]
	return ok
}

// Rotor is a single rotor instance placed in a machine slot: a shared,
// immutable wiring table plus per-instance mutable position and an
// immutable ring setting.
//
// Position is stored pre-adjusted by the ring offset (position = initial
// position − ring setting) so that every downstream offset computation
// needs only the position field, matching the historical machine's
// internal bookkeeping. The notch letter is shifted by the same amount
// at construction so IsAtNotch can compare directly against position.
type Rotor struct {
	kind        Kind
	wiring      [26]int
	inverse     [26]int
	hasNotch    bool
	notchPos    int
	position    int // pre-adjusted by ring setting
	ringSetting int // 0..25, i.e. (ring letter − 1)
}

// New builds a rotor instance of the given kind.
//
// initPosition and ringSetting are both 0..25 (ring setting already
// converted from its 1..26 external form by the caller).
func New(k Kind, initPosition, ringSetting int) (*Rotor, error) {
	t, ok := tables[k]
	if !ok {
		return nil, fmt.Errorf("rotor: unsupported kind %q", k)
	}
	if initPosition < 0 || initPosition > 25 {
		return nil, fmt.Errorf("rotor: position %d out of range [0,25]", initPosition)
	}
	if ringSetting < 0 || ringSetting > 25 {
		return nil, fmt.Errorf("rotor: ring setting %d out of range [0,25]", ringSetting)
	}

	r := &Rotor{
		kind:        k,
		ringSetting: ringSetting,
		position:    alphabet.Mod(initPosition - ringSetting),
	}
	for i, c := range t.wiring {
		out, err := alphabet.IndexOf(c)
		if err != nil {
			return nil, fmt.Errorf("rotor: bad wiring table for %q: %w", k, err)
		}
		r.wiring[i] = out
		r.inverse[out] = i
	}
	if t.notch != 0 {
		r.hasNotch = true
		notchIdx := alphabet.MustIndexOf(t.notch)
		r.notchPos = alphabet.Mod(notchIdx - ringSetting)
	}
	return r, nil
}

// Kind returns the rotor kind.
func (r *Rotor) Kind() Kind { return r.kind }

// Position returns the rotor's current (ring-adjusted) position, 0..25.
func (r *Rotor) Position() int { return r.position }

// RingSetting returns the rotor's ring setting, 0..25.
func (r *Rotor) RingSetting() int { return r.ringSetting }

// IsAtNotch reports whether the rotor is currently sitting at a notch
// position, which causes its left neighbour to step on the next
// keystroke.
func (r *Rotor) IsAtNotch() bool {
	return r.hasNotch && r.position == r.notchPos
}

// Step advances the rotor by one position. It returns whether the
// rotor was at its notch *before* stepping, which callers use to decide
// whether to propagate the step to the next rotor in the double-step
// rule.
func (r *Rotor) Step() bool {
	wasAtNotch := r.IsAtNotch()
	r.position = alphabet.Mod(r.position + 1)
	return wasAtNotch
}

// Forward computes the right-to-left signal path through this rotor
// given the position of its right neighbour (0 for the rightmost
// rotor, which has none).
func (r *Rotor) Forward(c, rightNeighbourPosition int) int {
	offset := r.position - rightNeighbourPosition
	inputPin := alphabet.Mod(c + offset)
	return r.wiring[inputPin]
}

// Backward computes the left-to-right signal path through this rotor
// given the position of its left neighbour.
func (r *Rotor) Backward(c, leftNeighbourPosition int) int {
	offset := r.position - leftNeighbourPosition
	inputPin := alphabet.Mod(c + offset)
	return r.inverse[inputPin]
}

// Clone returns an independent copy of the rotor, sharing no mutable
// state with the original.
func (r *Rotor) Clone() *Rotor {
	clone := *r
	return &clone
}
