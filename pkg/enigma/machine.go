// Package enigma implements the Enigma cipher machine: an exact,
// performant state machine combining rotors, a reflector and a
// plugboard, including the anomalous double-step rotor advance.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package enigma

import (
	"fmt"

	"github.com/coredds/enigma-breaker/internal/alphabet"
	"github.com/coredds/enigma-breaker/internal/plugboard"
	"github.com/coredds/enigma-breaker/internal/reflector"
	"github.com/coredds/enigma-breaker/internal/rotor"
	"github.com/coredds/enigma-breaker/pkg/config"
)

// Machine is a built, ready-to-use Enigma cipher state machine.
// Construction is cheap: wiring tables are looked up by value and a
// fresh Machine is expected to be built per (configuration, offset)
// trial by the search driver.
type Machine struct {
	rotors    []*rotor.Rotor // slot 0 first (rightmost, fastest)
	reflector *reflector.Reflector
	plugboard *plugboard.Plugboard
}

// Build constructs a Machine from an immutable configuration.
func Build(cfg config.Configuration) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{rotors: make([]*rotor.Rotor, len(cfg.Rotors))}
	for i, kind := range cfg.Rotors {
		pos, err := alphabet.IndexOf(cfg.Positions[i])
		if err != nil {
			return nil, fmt.Errorf("enigma: rotor %d position: %w", i, err)
		}
		ring := cfg.Rings[i] - 1 // external 1..26 -> internal 0..25
		r, err := rotor.New(kind, pos, ring)
		if err != nil {
			return nil, fmt.Errorf("enigma: building rotor %d: %w", i, err)
		}
		m.rotors[i] = r
	}

	refl, err := reflector.New(cfg.Reflector)
	if err != nil {
		return nil, fmt.Errorf("enigma: building reflector: %w", err)
	}
	m.reflector = refl

	pb, err := plugboard.New(cfg.Plugs)
	if err != nil {
		return nil, fmt.Errorf("enigma: building plugboard: %w", err)
	}
	m.plugboard = pb

	return m, nil
}

// OverrideReflectorWiring replaces the machine's reflector with one
// using the given raw wiring string while keeping its nominal kind, for
// the tampered-reflector search. It must be called
// before any characters are encoded.
func (m *Machine) OverrideReflectorWiring(wiring string) error {
	r, err := reflector.NewFromWiring(m.reflector.Kind(), wiring)
	if err != nil {
		return fmt.Errorf("enigma: overriding reflector wiring: %w", err)
	}
	m.reflector = r
	return nil
}

// stepRotors advances the rightmost three rotors by one keystroke,
// applying the double-step rule. Slot 0 is always the
// rightmost, fastest rotor regardless of whether the machine has 3 or 4
// rotors; a fourth rotor (slot 3, Beta/Gamma) is a static thin wheel
// sitting to the left of slot 2 and never steps.
func (m *Machine) stepRotors() {
	r0 := m.rotors[0]
	r1 := m.rotors[1]
	r2 := m.rotors[2]

	r0WasAtNotch := r0.Step()
	if r0WasAtNotch || r1.IsAtNotch() {
		r1WasAtNotch := r1.Step()
		if r1WasAtNotch {
			r2.Step()
		}
	}
}

// Advance steps the machine n times without encoding any character,
// applying the full stepping rule at each step. The search driver uses
// this to position the machine at a candidate crib offset before
// evaluating the crib window.
func (m *Machine) Advance(n int) {
	for i := 0; i < n; i++ {
		m.stepRotors()
	}
}

// EncodeChar encodes a single letter, stepping the rotors first. It
// implements the seven-step signal path exactly,
// including the commonly-forgotten stator offset in step 6.
func (m *Machine) EncodeChar(r rune) (rune, error) {
	c, err := alphabet.IndexOf(r)
	if err != nil {
		return 0, fmt.Errorf("enigma: %w", err)
	}

	m.stepRotors()

	c = m.plugboard.Encode(c)

	// Right to left through the movable/thin rotors, then the reflector.
	rightPos := 0
	for _, rt := range m.rotors {
		c = rt.Forward(c, rightPos)
		rightPos = rt.Position()
	}
	c = m.reflector.Reflect(c, rightPos)

	// Left to right back through the movable/thin rotors.
	for i := len(m.rotors) - 1; i >= 0; i-- {
		var leftPos int
		if i == len(m.rotors)-1 {
			leftPos = 0 // reflector sits at position 0
		} else {
			leftPos = m.rotors[i+1].Position()
		}
		c = m.rotors[i].Backward(c, leftPos)
	}

	// Stator offset: the rightmost rotor's position is subtracted one
	// final time against the static input ring.
	c = alphabet.Mod(c - m.rotors[0].Position())

	c = m.plugboard.Encode(c)

	return alphabet.Letter(c), nil
}

// EncodeString folds EncodeChar over the input, carrying rotor position
// across characters. It does not validate input ahead of time so the
// first invalid character is reported with its position.
func (m *Machine) EncodeString(s string) (string, error) {
	out := make([]rune, 0, len(s))
	for i, r := range s {
		enc, err := m.EncodeChar(r)
		if err != nil {
			return "", fmt.Errorf("enigma: invalid character at position %d: %w", i, err)
		}
		out = append(out, enc)
	}
	return string(out), nil
}

// RotorPositions returns the current position (as a letter) of every
// rotor, slot 0 (rightmost) first.
func (m *Machine) RotorPositions() []rune {
	out := make([]rune, len(m.rotors))
	for i, r := range m.rotors {
		out[i] = alphabet.Letter(r.Position())
	}
	return out
}

// ReflectorWiring returns the machine's current reflector wiring, which
// may have been overridden by OverrideReflectorWiring.
func (m *Machine) ReflectorWiring() string {
	return m.reflector.Wiring()
}
