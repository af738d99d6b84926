// Package expander parses a partially-specified Enigma configuration
// template — scalar fields replaced by a "?" wildcard or an explicit
// bracketed list of alternatives — into the Cartesian product of every
// concrete, valid config.Configuration it describes.
//
// The parser is deliberately small and strict: list literals accept only
// comma-separated identifiers, integers, or letters inside square
// brackets. It never evaluates arbitrary expressions.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package expander

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coredds/enigma-breaker/internal/alphabet"
	"github.com/coredds/enigma-breaker/internal/plugboard"
	"github.com/coredds/enigma-breaker/internal/reflector"
	"github.com/coredds/enigma-breaker/internal/rotor"
	"github.com/coredds/enigma-breaker/pkg/config"
)

// allRotorKinds is the wildcard candidate set for a rotor slot: every
// movable wheel plus the two thin wheels. For four-rotor tuples, Validate
// rejects those that place a thin wheel outside slot 3.
var allRotorKinds = []rotor.Kind{rotor.I, rotor.II, rotor.III, rotor.IV, rotor.V, rotor.Beta, rotor.Gamma}

// ParseError reports a malformed template. It is a distinct type from
// config.ValidationError because a template error is a syntax problem in
// the wildcard/list grammar, not an invariant violation of a concrete
// configuration.
type ParseError struct {
	msg string
	err error
}

func (e *ParseError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("expander: %s: %v", e.msg, e.err)
	}
	return "expander: " + e.msg
}

func (e *ParseError) Unwrap() error { return e.err }

func parseErrorf(format string, args ...any) error {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// Expand parses template and returns every concrete, valid configuration
// it describes, deduplicated by config.Configuration.Key. Callers with a
// template broad enough to threaten memory (worst case is ≈1.2×10¹⁰
// configurations) should use Stream instead.
func Expand(template string) ([]config.Configuration, error) {
	out := make([]config.Configuration, 0, 64)
	seen := make(map[string]bool)
	err := Stream(template, func(cfg config.Configuration) bool {
		k := cfg.Key()
		if !seen[k] {
			seen[k] = true
			out = append(out, cfg)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Stream parses template and calls emit once per valid concrete
// configuration it generates, in the order four category products are
// generated. It prefers bounded, incremental emission over materialising
// the full product before dispatch, and stops early if emit returns false.
// Stream itself does not deduplicate: a list literal that repeats an
// alternative, or plug pairs that differ only in letter order, yield
// configurations with the same Key, which Expand's visited set removes.
func Stream(template string, emit func(config.Configuration) bool) error {
	fields := strings.Fields(template)
	if len(fields) < 4 {
		return parseErrorf("expected at least 4 fields, got %d in %q", len(fields), template)
	}

	reflectors, err := parseReflectorField(fields[0])
	if err != nil {
		return err
	}

	rotorSlots, err := parseDashList(fields[1], parseRotorToken)
	if err != nil {
		return fmt.Errorf("expander: rotor field: %w", err)
	}
	ringSlots, err := parseDashList(fields[2], parseRingToken)
	if err != nil {
		return fmt.Errorf("expander: ring field: %w", err)
	}
	posSlots, err := parseDashList(fields[3], parsePositionToken)
	if err != nil {
		return fmt.Errorf("expander: position field: %w", err)
	}
	if len(rotorSlots) != len(ringSlots) || len(rotorSlots) != len(posSlots) {
		return parseErrorf("rotor/ring/position slot counts must match, got %d/%d/%d",
			len(rotorSlots), len(ringSlots), len(posSlots))
	}

	plugSlots := make([][]plugboard.Pair, 0, len(fields)-4)
	for _, field := range fields[4:] {
		for _, tok := range strings.Split(field, "-") {
			cands, err := parsePlugToken(tok)
			if err != nil {
				return fmt.Errorf("expander: plug field %q: %w", tok, err)
			}
			plugSlots = append(plugSlots, cands)
		}
	}

	rotorTuples := cartesianRotors(rotorSlots)
	ringTuples := cartesianInts(ringSlots)
	posTuples := cartesianRunes(posSlots)
	plugTuples := cartesianPlugs(plugSlots)

	for _, refl := range reflectors {
		for _, rotors := range rotorTuples {
			for _, rings := range ringTuples {
				for _, positions := range posTuples {
					for _, plugs := range plugTuples {
						cfg := config.Configuration{
							Reflector: refl,
							Rotors:    append([]rotor.Kind(nil), rotors...),
							Rings:     append([]int(nil), rings...),
							Positions: append([]rune(nil), positions...),
							Plugs:     append([]plugboard.Pair(nil), plugs...),
						}
						if err := cfg.Validate(); err != nil {
							continue
						}
						if !emit(cfg) {
							return nil
						}
					}
				}
			}
		}
	}
	return nil
}

// isWildcard reports whether a field token is the bare "?" wildcard.
func isWildcard(tok string) bool { return tok == "?" }

// listLiteral splits a "[X, Y, …]" token into its trimmed elements, or
// reports ok=false if tok isn't bracketed.
func listLiteral(tok string) (elems []string, ok bool) {
	if !strings.HasPrefix(tok, "[") || !strings.HasSuffix(tok, "]") {
		return nil, false
	}
	inner := tok[1 : len(tok)-1]
	if strings.TrimSpace(inner) == "" {
		return nil, true
	}
	parts := strings.Split(inner, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out, true
}

func parseReflectorField(tok string) ([]reflector.Kind, error) {
	if isWildcard(tok) {
		return reflector.Wildcard(), nil
	}
	if elems, ok := listLiteral(tok); ok {
		out := make([]reflector.Kind, len(elems))
		for i, e := range elems {
			k := reflector.Kind(e)
			if !reflector.Valid(k) {
				return nil, parseErrorf("unknown reflector kind %q in list", e)
			}
			out[i] = k
		}
		return out, nil
	}
	k := reflector.Kind(tok)
	if !reflector.Valid(k) {
		return nil, parseErrorf("unknown reflector kind %q", tok)
	}
	return []reflector.Kind{k}, nil
}

// parseDashList splits a dash-separated template field (rotor, ring or
// position) into its per-slot tokens, reversed to match config.Parse's
// slot-0-first internal order, then resolves each slot token to its
// candidate list via resolve.
func parseDashList[T any](field string, resolve func(string) ([]T, error)) ([][]T, error) {
	tokens := strings.Split(field, "-")
	out := make([][]T, len(tokens))
	for i, tok := range tokens {
		cands, err := resolve(tok)
		if err != nil {
			return nil, err
		}
		out[len(tokens)-1-i] = cands
	}
	return out, nil
}

func parseRotorToken(tok string) ([]rotor.Kind, error) {
	if isWildcard(tok) {
		return append([]rotor.Kind(nil), allRotorKinds...), nil
	}
	if elems, ok := listLiteral(tok); ok {
		out := make([]rotor.Kind, len(elems))
		for i, e := range elems {
			k := rotor.Kind(e)
			if !rotor.Valid(k) {
				return nil, parseErrorf("unknown rotor kind %q in list", e)
			}
			out[i] = k
		}
		return out, nil
	}
	k := rotor.Kind(tok)
	if !rotor.Valid(k) {
		return nil, parseErrorf("unknown rotor kind %q", tok)
	}
	return []rotor.Kind{k}, nil
}

func parseRingToken(tok string) ([]int, error) {
	if isWildcard(tok) {
		out := make([]int, 26)
		for i := range out {
			out[i] = i + 1
		}
		return out, nil
	}
	if elems, ok := listLiteral(tok); ok {
		out := make([]int, len(elems))
		for i, e := range elems {
			n, err := strconv.Atoi(e)
			if err != nil {
				return nil, parseErrorf("ring list element %q is not an integer", e)
			}
			out[i] = n
		}
		return out, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, parseErrorf("ring setting %q is not an integer", tok)
	}
	return []int{n}, nil
}

func parsePositionToken(tok string) ([]rune, error) {
	if isWildcard(tok) {
		out := make([]rune, alphabet.Size)
		for i := range out {
			out[i] = alphabet.Letter(i)
		}
		return out, nil
	}
	if elems, ok := listLiteral(tok); ok {
		out := make([]rune, len(elems))
		for i, e := range elems {
			if len(e) != 1 {
				return nil, parseErrorf("position list element %q must be a single letter", e)
			}
			out[i] = rune(e[0])
		}
		return out, nil
	}
	if len(tok) != 1 {
		return nil, parseErrorf("position %q must be a single letter", tok)
	}
	return []rune{rune(tok[0])}, nil
}

// parsePlugToken resolves one plug field token to its candidate pairs.
// "?X" anchors one lead at X and ranges the other over every other
// letter; a list literal gives explicit candidate
// pairs; anything else must be a literal two-letter pair.
func parsePlugToken(tok string) ([]plugboard.Pair, error) {
	if strings.HasPrefix(tok, "?") {
		rest := tok[1:]
		if len(rest) != 1 {
			return nil, parseErrorf("anchored plug wildcard %q must be \"?\" followed by one letter", tok)
		}
		anchor := rune(rest[0])
		if _, err := alphabet.IndexOf(anchor); err != nil {
			return nil, parseErrorf("anchored plug wildcard %q: %v", tok, err)
		}
		out := make([]plugboard.Pair, 0, alphabet.Size-1)
		for i := 0; i < alphabet.Size; i++ {
			other := alphabet.Letter(i)
			if other == anchor {
				continue
			}
			out = append(out, plugboard.Pair{anchor, other})
		}
		return out, nil
	}
	if elems, ok := listLiteral(tok); ok {
		out := make([]plugboard.Pair, len(elems))
		for i, e := range elems {
			p, err := parseLiteralPair(e)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	}
	p, err := parseLiteralPair(tok)
	if err != nil {
		return nil, err
	}
	return []plugboard.Pair{p}, nil
}

func parseLiteralPair(tok string) (plugboard.Pair, error) {
	if len(tok) != 2 {
		return plugboard.Pair{}, parseErrorf("plug %q must be exactly two letters", tok)
	}
	return plugboard.Pair{rune(tok[0]), rune(tok[1])}, nil
}

// cartesianRotors produces the Cartesian product of per-slot rotor
// candidates, dropping any tuple with a duplicate rotor kind.
func cartesianRotors(slots [][]rotor.Kind) [][]rotor.Kind {
	var out [][]rotor.Kind
	var rec func(prefix []rotor.Kind, depth int)
	rec = func(prefix []rotor.Kind, depth int) {
		if depth == len(slots) {
			out = append(out, append([]rotor.Kind(nil), prefix...))
			return
		}
		for _, k := range slots[depth] {
			dup := false
			for _, p := range prefix {
				if p == k {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			rec(append(prefix, k), depth+1)
		}
	}
	rec(nil, 0)
	return out
}

func cartesianInts(slots [][]int) [][]int {
	var out [][]int
	var rec func(prefix []int, depth int)
	rec = func(prefix []int, depth int) {
		if depth == len(slots) {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for _, v := range slots[depth] {
			rec(append(prefix, v), depth+1)
		}
	}
	rec(nil, 0)
	return out
}

func cartesianRunes(slots [][]rune) [][]rune {
	var out [][]rune
	var rec func(prefix []rune, depth int)
	rec = func(prefix []rune, depth int) {
		if depth == len(slots) {
			out = append(out, append([]rune(nil), prefix...))
			return
		}
		for _, v := range slots[depth] {
			rec(append(prefix, v), depth+1)
		}
	}
	rec(nil, 0)
	return out
}

// cartesianPlugs produces the Cartesian product of per-slot plug
// candidates, dropping any tuple whose flattened letters contain a
// duplicate.
func cartesianPlugs(slots [][]plugboard.Pair) [][]plugboard.Pair {
	if len(slots) == 0 {
		return [][]plugboard.Pair{nil}
	}
	var out [][]plugboard.Pair
	var rec func(prefix []plugboard.Pair, used map[rune]bool, depth int)
	rec = func(prefix []plugboard.Pair, used map[rune]bool, depth int) {
		if depth == len(slots) {
			out = append(out, append([]plugboard.Pair(nil), prefix...))
			return
		}
		for _, p := range slots[depth] {
			if used[p[0]] || used[p[1]] {
				continue
			}
			nextUsed := make(map[rune]bool, len(used)+2)
			for k := range used {
				nextUsed[k] = true
			}
			nextUsed[p[0]] = true
			nextUsed[p[1]] = true
			rec(append(prefix, p), nextUsed, depth+1)
		}
	}
	rec(nil, map[rune]bool{}, 0)
	return out
}
