// Package search implements the crib-based known-plaintext brute-force
// driver: crib-offset pruning, per-trial evaluation, and the
// single-threaded execution shape with sampled ETA estimation.
//
// Copyright (c) 2025 The enigma-breaker Authors
// Licensed under the MIT License
package search

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/coredds/enigma-breaker/pkg/config"
	"github.com/coredds/enigma-breaker/pkg/enigma"
)

// UsageError reports a caller mistake detected before any search work
// begins: an empty crib or a ciphertext shorter than the crib.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return "search: " + e.msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// Trial is one (configuration, crib offset) pair to evaluate, optionally
// carrying a scrambled reflector wiring for the tampered-reflector case
//. An empty ReflectorWiring means "use the configuration's
// own nominal reflector."
type Trial struct {
	Configuration   config.Configuration
	Offset          int
	ReflectorWiring string
}

// Match is a trial whose crib window matched the ciphertext, together
// with the full plaintext recovered by re-running the configuration from
// a fresh engine.
type Match struct {
	Configuration   config.Configuration
	Offset          int
	Plaintext       string
	ReflectorWiring string
}

// CribOffsets returns every zero-based offset at which crib could align
// with ciphertext without Enigma's no-self-encipherment property being
// violated at any position.
func CribOffsets(ciphertext, crib string) ([]int, error) {
	if len(crib) == 0 {
		return nil, usageErrorf("crib must not be empty")
	}
	if len(ciphertext) < len(crib) {
		return nil, usageErrorf("ciphertext (%d letters) is shorter than the crib (%d letters)", len(ciphertext), len(crib))
	}

	cipherRunes := []rune(ciphertext)
	cribRunes := []rune(crib)

	var offsets []int
offsetLoop:
	for offset := 0; offset <= len(cipherRunes)-len(cribRunes); offset++ {
		for i, cr := range cribRunes {
			if cr == cipherRunes[offset+i] {
				continue offsetLoop
			}
		}
		offsets = append(offsets, offset)
	}
	return offsets, nil
}

// BuildTrials expands configs × CribOffsets(ciphertext, crib) into the
// flat trial list the execution shapes iterate over.
func BuildTrials(ciphertext, crib string, configs []config.Configuration) ([]Trial, error) {
	offsets, err := CribOffsets(ciphertext, crib)
	if err != nil {
		return nil, err
	}
	trials := make([]Trial, 0, len(offsets)*len(configs))
	for _, cfg := range configs {
		for _, off := range offsets {
			trials = append(trials, Trial{Configuration: cfg, Offset: off})
		}
	}
	return trials, nil
}

// BuildTamperedTrials is BuildTrials for the tampered-reflector case: it
// additionally crosses every configuration with every candidate scrambled
// reflector wiring.
func BuildTamperedTrials(ciphertext, crib string, configs []config.Configuration, wirings []string) ([]Trial, error) {
	offsets, err := CribOffsets(ciphertext, crib)
	if err != nil {
		return nil, err
	}
	trials := make([]Trial, 0, len(offsets)*len(configs)*len(wirings))
	for _, cfg := range configs {
		for _, w := range wirings {
			for _, off := range offsets {
				trials = append(trials, Trial{Configuration: cfg, Offset: off, ReflectorWiring: w})
			}
		}
	}
	return trials, nil
}

// Evaluate runs the per-trial evaluation: build an
// engine, bulk-advance to the trial's offset, encode the crib character
// by character and abandon on the first mismatch. On a full match it
// builds a fresh engine (the trial engine's rotor positions have already
// advanced through the crib) and decodes the complete ciphertext.
// Distributed workers call this directly per job batch.
func Evaluate(ciphertext, crib string, t Trial) (Match, bool, error) {
	m, err := buildTrialMachine(t)
	if err != nil {
		return Match{}, false, err
	}
	m.Advance(t.Offset)

	cipherRunes := []rune(ciphertext)
	for i, cr := range crib {
		enc, err := m.EncodeChar(cr)
		if err != nil {
			return Match{}, false, fmt.Errorf("search: encoding crib character %d: %w", i, err)
		}
		if enc != cipherRunes[t.Offset+i] {
			return Match{}, false, nil
		}
	}

	fresh, err := buildTrialMachine(t)
	if err != nil {
		return Match{}, false, err
	}
	plaintext, err := fresh.EncodeString(ciphertext)
	if err != nil {
		return Match{}, false, fmt.Errorf("search: decoding full ciphertext: %w", err)
	}

	return Match{
		Configuration:   t.Configuration,
		Offset:          t.Offset,
		Plaintext:       plaintext,
		ReflectorWiring: t.ReflectorWiring,
	}, true, nil
}

func buildTrialMachine(t Trial) (*enigma.Machine, error) {
	m, err := enigma.Build(t.Configuration)
	if err != nil {
		return nil, fmt.Errorf("search: building trial machine: %w", err)
	}
	if t.ReflectorWiring != "" {
		if err := m.OverrideReflectorWiring(t.ReflectorWiring); err != nil {
			return nil, fmt.Errorf("search: overriding reflector wiring: %w", err)
		}
	}
	return m, nil
}

// etaSuppressThreshold is the search-space size below which progress
// estimation is suppressed as noise.
const etaSuppressThreshold = 10_000

// sampleSize is the number of trials measured before the first ETA
// estimate, and the number of trials between later estimates.
const sampleSize = 750

// Progress reports an estimated time-to-completion, sampled periodically
// during Sequential.
type Progress struct {
	Completed int
	Total     int
	ETA       time.Duration
}

// SequentialOption configures Sequential.
type SequentialOption func(*sequentialOptions)

type sequentialOptions struct {
	onProgress func(Progress)
	rng        *rand.Rand
}

// WithProgress registers a callback invoked once after the initial
// sample and periodically thereafter,
// unless the total trial count falls below etaSuppressThreshold.
func WithProgress(fn func(Progress)) SequentialOption {
	return func(o *sequentialOptions) { o.onProgress = fn }
}

// Sequential runs every trial in a single goroutine, shuffling trial
// order first so a timing sample is representative (low-offset trials
// advance fewer rotor steps and are cheaper), and reports periodic ETA
// estimates through WithProgress unless the search space is small
//.
func Sequential(ciphertext, crib string, trials []Trial, opts ...SequentialOption) ([]Match, error) {
	o := &sequentialOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(1))
	}

	shuffled := make([]Trial, len(trials))
	copy(shuffled, trials)
	o.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	var matches []Match
	start := time.Now()
	reportETA := o.onProgress != nil && len(shuffled) >= etaSuppressThreshold

	for i, t := range shuffled {
		m, ok, err := Evaluate(ciphertext, crib, t)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, m)
		}

		if reportETA && (i+1)%sampleSize == 0 {
			elapsed := time.Since(start)
			perTrial := elapsed / time.Duration(i+1)
			remaining := len(shuffled) - (i + 1)
			o.onProgress(Progress{
				Completed: i + 1,
				Total:     len(shuffled),
				ETA:       perTrial * time.Duration(remaining),
			})
		}
	}

	if reportETA && len(shuffled) > sampleSize {
		o.onProgress(Progress{Completed: len(shuffled), Total: len(shuffled), ETA: 0})
	}

	return matches, nil
}
