// Package alphabet fixes the 26-letter Latin alphabet used throughout the
// Enigma engine and maps between uppercase runes and their 0..25 index.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package alphabet

import "fmt"

// Size is the number of letters in the supported alphabet.
const Size = 26

// Letters is the alphabet in index order, A=0 .. Z=25.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// IndexOf returns the 0..25 index of an uppercase Latin letter.
func IndexOf(r rune) (int, error) {
	if r < 'A' || r > 'Z' {
		return 0, fmt.Errorf("alphabet: %q is not an uppercase Latin letter", r)
	}
	return int(r - 'A'), nil
}

// MustIndexOf is IndexOf for callers that already validated r; it panics
// on invalid input rather than threading an error through hot paths.
func MustIndexOf(r rune) int {
	idx, err := IndexOf(r)
	if err != nil {
		panic(err)
	}
	return idx
}

// Letter returns the uppercase Latin letter for a 0..25 index, wrapping
// modulo 26 so callers can pass pre-offset arithmetic directly.
func Letter(idx int) rune {
	idx = ((idx % Size) + Size) % Size
	return rune('A' + idx)
}

// ValidateString returns an error naming the first rune in s that is not
// an uppercase Latin letter, or nil if s is entirely valid.
func ValidateString(s string) error {
	for _, r := range s {
		if _, err := IndexOf(r); err != nil {
			return fmt.Errorf("alphabet: invalid character %q in %q", r, s)
		}
	}
	return nil
}

// StringToIndices converts a validated string of uppercase Latin letters
// to their 0..25 index form.
func StringToIndices(s string) ([]int, error) {
	out := make([]int, 0, len(s))
	for _, r := range s {
		idx, err := IndexOf(r)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

// IndicesToString is the inverse of StringToIndices.
func IndicesToString(indices []int) string {
	runes := make([]rune, len(indices))
	for i, idx := range indices {
		runes[i] = Letter(idx)
	}
	return string(runes)
}

// Mod returns n mod Size, normalized to the range [0, Size).
func Mod(n int) int {
	return ((n % Size) + Size) % Size
}
