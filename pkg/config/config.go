// Package config implements the immutable Enigma machine configuration
// value type and its textual form:
//
//	<reflector> <rN>-…-<r1>-<r0> <ringN>-…-<ring1>-<ring0> <posN>-…-<pos1>-<pos0> [<plug>-<plug>-…]
//
// The leftmost rotor listed in the string is the slowest, leftmost
// physical slot; internally slot 0 (rightmost, fastest-advancing) is
// stored first, so Parse and String both reverse the three dash-lists.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/coredds/enigma-breaker/internal/plugboard"
	"github.com/coredds/enigma-breaker/internal/reflector"
	"github.com/coredds/enigma-breaker/internal/rotor"
)

// ValidationError reports a malformed or invariant-violating
// configuration.
type ValidationError struct {
	msg string
	err error
}

func (e *ValidationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("config: %s: %v", e.msg, e.err)
	}
	return "config: " + e.msg
}

func (e *ValidationError) Unwrap() error { return e.err }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Configuration is an immutable, fully-specified Enigma machine
// configuration. Rotors, Rings and Positions are all stored in slot
// order: index 0 is the rightmost (fastest) slot.
type Configuration struct {
	Reflector reflector.Kind
	Rotors    []rotor.Kind // len 3 or 4, slot 0 first
	Rings     []int        // 1..26, same order as Rotors
	Positions []rune       // 'A'..'Z', same order as Rotors
	Plugs     []plugboard.Pair
}

// Parse reads the textual configuration form: reflector, rotors, rings,
// positions, and optional plugboard pairs, space-separated. Plug pairs
// may be dash-joined in one field ("HL-MO") or given as separate fields
// ("HL MO").
func Parse(s string) (Configuration, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return Configuration{}, validationErrorf("expected at least 4 fields, got %d in %q", len(fields), s)
	}

	rotorTokens := reverseStrings(strings.Split(fields[1], "-"))
	ringTokens := reverseStrings(strings.Split(fields[2], "-"))
	posTokens := reverseStrings(strings.Split(fields[3], "-"))

	if len(rotorTokens) != len(ringTokens) || len(rotorTokens) != len(posTokens) {
		return Configuration{}, validationErrorf(
			"rotor/ring/position counts must match, got %d/%d/%d",
			len(rotorTokens), len(ringTokens), len(posTokens))
	}

	cfg := Configuration{
		Reflector: reflector.Kind(fields[0]),
		Rotors:    make([]rotor.Kind, len(rotorTokens)),
		Rings:     make([]int, len(ringTokens)),
		Positions: make([]rune, len(posTokens)),
	}

	for i, tok := range rotorTokens {
		cfg.Rotors[i] = rotor.Kind(tok)
	}
	for i, tok := range ringTokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Configuration{}, validationErrorf("ring setting %q is not a number", tok)
		}
		cfg.Rings[i] = n
	}
	for i, tok := range posTokens {
		if len(tok) != 1 {
			return Configuration{}, validationErrorf("position %q must be a single letter", tok)
		}
		cfg.Positions[i] = rune(tok[0])
	}

	for _, field := range fields[4:] {
		for _, tok := range strings.Split(field, "-") {
			if len(tok) != 2 {
				return Configuration{}, validationErrorf("plug %q must be exactly two letters", tok)
			}
			cfg.Plugs = append(cfg.Plugs, plugboard.Pair{rune(tok[0]), rune(tok[1])})
		}
	}

	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its invariants:
// distinct rotor kinds, the Beta/Gamma-in-slot-3 rule for four rotors,
// ring settings in 1..26, and disjoint, self-pair-free plugboard wiring.
// Rotor/reflector kind validity and position range are checked as a side
// effect of building an engine from the configuration (pkg/enigma);
// Validate focuses on the structural invariants the expander must
// enforce during Cartesian product construction.
func (c Configuration) Validate() error {
	if len(c.Rotors) != 3 && len(c.Rotors) != 4 {
		return validationErrorf("expected 3 or 4 rotors, got %d", len(c.Rotors))
	}
	seen := make(map[rotor.Kind]bool, len(c.Rotors))
	for i, k := range c.Rotors {
		if seen[k] {
			return validationErrorf("duplicate rotor kind %q", k)
		}
		seen[k] = true
		if len(c.Rotors) == 4 {
			if i == 3 {
				if !rotor.Thin(k) {
					return validationErrorf("slot 3 (leftmost) of a 4-rotor configuration must be Beta or Gamma, got %q", k)
				}
			} else if rotor.Thin(k) {
				return validationErrorf("%q may only occupy slot 3 of a 4-rotor configuration", k)
			}
		}
	}
	if len(c.Rings) != len(c.Rotors) || len(c.Positions) != len(c.Rotors) {
		return validationErrorf("ring/position count must match rotor count")
	}
	for _, r := range c.Rings {
		if r < 1 || r > 26 {
			return validationErrorf("ring setting %d out of range [1,26]", r)
		}
	}
	if err := plugboard.Validate(c.Plugs); err != nil {
		return &ValidationError{msg: "invalid plugboard", err: err}
	}
	return nil
}

// String renders the configuration back to its textual form.
func (c Configuration) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Reflector))
	sb.WriteByte(' ')
	sb.WriteString(joinReversedKinds(c.Rotors))
	sb.WriteByte(' ')
	sb.WriteString(joinReversedInts(c.Rings))
	sb.WriteByte(' ')
	sb.WriteString(joinReversedRunes(c.Positions))
	for i, p := range c.Plugs {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte('-')
		}
		sb.WriteString(string(p[0]))
		sb.WriteString(string(p[1]))
	}
	return sb.String()
}

// Key returns a canonical string uniquely identifying the configuration
// as a value, with plug pairs normalized and sorted so that equivalent
// plugboard wirings written in a different order collapse to the same
// key. The template expander uses Key to deduplicate its output as a
// set.
func (c Configuration) Key() string {
	plugs := make([]string, len(c.Plugs))
	for i, p := range c.Plugs {
		plugs[i] = p.Normalize().String()
	}
	sort.Strings(plugs)

	var sb strings.Builder
	sb.WriteString(string(c.Reflector))
	sb.WriteByte('|')
	for _, k := range c.Rotors {
		sb.WriteString(string(k))
		sb.WriteByte('-')
	}
	sb.WriteByte('|')
	for _, r := range c.Rings {
		sb.WriteString(strconv.Itoa(r))
		sb.WriteByte('-')
	}
	sb.WriteByte('|')
	for _, p := range c.Positions {
		sb.WriteRune(p)
	}
	sb.WriteByte('|')
	sb.WriteString(strings.Join(plugs, ","))
	return sb.String()
}

// Equal reports whether two configurations describe the same machine
// setup, treating plugboard pair order as insignificant.
func (c Configuration) Equal(other Configuration) bool {
	return c.Key() == other.Key()
}

// jsonConfiguration mirrors Configuration in a form that survives
// encoding/json's string-keyed map and rune-vs-string quirks, for
// serializing discovered configurations alongside search results.
type jsonConfiguration struct {
	Reflector string   `json:"reflector"`
	Rotors    []string `json:"rotors"`
	Rings     []int    `json:"rings"`
	Positions string   `json:"positions"`
	Plugs     []string `json:"plugs"`
}

// MarshalJSON implements json.Marshaler.
func (c Configuration) MarshalJSON() ([]byte, error) {
	jc := jsonConfiguration{
		Reflector: string(c.Reflector),
		Rotors:    make([]string, len(c.Rotors)),
		Rings:     c.Rings,
		Positions: string(c.Positions),
		Plugs:     make([]string, len(c.Plugs)),
	}
	for i, k := range c.Rotors {
		jc.Rotors[i] = string(k)
	}
	for i, p := range c.Plugs {
		jc.Plugs[i] = p.String()
	}
	return json.Marshal(jc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	var jc jsonConfiguration
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}
	c.Reflector = reflector.Kind(jc.Reflector)
	c.Rotors = make([]rotor.Kind, len(jc.Rotors))
	for i, s := range jc.Rotors {
		c.Rotors[i] = rotor.Kind(s)
	}
	c.Rings = jc.Rings
	c.Positions = []rune(jc.Positions)
	c.Plugs = make([]plugboard.Pair, len(jc.Plugs))
	for i, s := range jc.Plugs {
		if len(s) != 2 {
			return fmt.Errorf("config: plug %q must be two letters", s)
		}
		c.Plugs[i] = plugboard.Pair{rune(s[0]), rune(s[1])}
	}
	return nil
}

func reverseStrings(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[len(ss)-1-i] = s
	}
	return out
}

func joinReversedKinds(ks []rotor.Kind) string {
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[len(ks)-1-i] = string(k)
	}
	return strings.Join(parts, "-")
}

func joinReversedInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[len(ns)-1-i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

func joinReversedRunes(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[len(rs)-1-i] = string(r)
	}
	return strings.Join(parts, "-")
}
