package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coredds/enigma-breaker/internal/reflector"
	"github.com/coredds/enigma-breaker/pkg/config"
	"github.com/coredds/enigma-breaker/pkg/expander"
	"github.com/coredds/enigma-breaker/pkg/reflectorperm"
)

func mustExpand(t *testing.T, template string) []config.Configuration {
	t.Helper()
	cfgs, err := expander.Expand(template)
	require.NoErrorf(t, err, "expander.Expand(%q)", template)
	return cfgs
}

func TestCribOffsetsNeverExcludesTrueOffset(t *testing.T) {
	offsets, err := CribOffsets("DMEXBMKYCVPNQBEDHXVPZGKMTFFBJRPJTLHLCHOTKOYXGGHZ", "SECRETS")
	require.NoError(t, err)

	found := false
	for _, o := range offsets {
		if o == 36 {
			found = true
		}
	}
	assert.True(t, found, "offset 36 (the true crib position) was pruned; offsets = %v", offsets)
}

func TestCribOffsetsRejectsUsageErrors(t *testing.T) {
	_, err := CribOffsets("SHORT", "LONGERCRIB")
	assert.Error(t, err, "ciphertext shorter than crib")

	_, err = CribOffsets("CIPHERTEXT", "")
	assert.Error(t, err, "empty crib")
}

// TestScenario3 is a mandatory end-to-end scenario: reflector C match.
func TestScenario3(t *testing.T) {
	cfgs := mustExpand(t, "? Beta-Gamma-V 4-2-14 M-J-M KI-XN-FL")
	const ciphertext = "DMEXBMKYCVPNQBEDHXVPZGKMTFFBJRPJTLHLCHOTKOYXGGHZ"
	const crib = "SECRETS"
	const wantPlaintext = "NICEWORKYOUVEMANAGEDTODECODETHEFIRSTSECRETSTRING"

	trials, err := BuildTrials(ciphertext, crib, cfgs)
	require.NoError(t, err)
	matches, err := Sequential(ciphertext, crib, trials)
	require.NoError(t, err)

	found := false
	for _, m := range matches {
		if m.Configuration.Reflector == "C" && m.Plaintext == wantPlaintext {
			found = true
		}
	}
	assert.Truef(t, found, "expected a reflector-C match decoding to %q among %d matches", wantPlaintext, len(matches))
}

// TestScenario4 is a mandatory end-to-end scenario: naval 3-rotor search.
func TestScenario4(t *testing.T) {
	cfgs := mustExpand(t, "B Beta-I-III 23-2-10 ?-?-? VH-PT-ZG-BJ-EY-FS")
	const ciphertext = "CMFSUPKNCBMUYEQVVDYKLRQZTPUFHSWWAKTUGXMPAMYAFITXIJKMH"
	const crib = "UNIVERSITY"
	const wantPlaintext = "IHOPEYOUAREENJOYINGTHEUNIVERSITYOFBATHEXPERIENCESOFAR"

	trials, err := BuildTrials(ciphertext, crib, cfgs)
	require.NoError(t, err)
	matches, err := Parallel(ciphertext, crib, trials, WithWorkers(4), WithBatchSize(32))
	require.NoError(t, err)

	found := false
	for _, m := range matches {
		if string(m.Configuration.Positions) == "GMI" && m.Plaintext == wantPlaintext {
			found = true
		}
	}
	assert.Truef(t, found, "expected positions I-M-G match decoding to %q among %d matches", wantPlaintext, len(matches))
}

// TestScenario5 is a mandatory end-to-end scenario: tampered reflector
// search, crossing every candidate configuration with every 2-wire-swap
// wiring reachable from its nominal reflector.
func TestScenario5(t *testing.T) {
	cfgs := mustExpand(t, "? V-II-IV 6-18-7 A-J-L UG-IE-PO-NX-WT")
	const ciphertext = "HWREISXLGTTBYVXRCWWJAKZDTVZWKBDJPVQYNEQIOTIFX"
	const crib = "INSTAGRAM"
	const wantWiring = "PQUHRSLDYXNGOKMABEFZCWVJIT"
	const wantPlaintext = "YOUCANFOLLOWMYDOGONINSTAGRAMATTALESOFHOFFMANN"

	var trials []Trial
	for _, cfg := range cfgs {
		nominal, err := reflector.NominalWiring(cfg.Reflector)
		require.NoError(t, err)
		wirings, err := reflectorperm.GenerateN2(nominal)
		require.NoError(t, err)
		t2, err := BuildTamperedTrials(ciphertext, crib, []config.Configuration{cfg}, wirings)
		require.NoError(t, err)
		trials = append(trials, t2...)
	}

	matches, err := Sequential(ciphertext, crib, trials)
	require.NoError(t, err)

	found := false
	for _, m := range matches {
		if m.Configuration.Reflector == "B" && m.ReflectorWiring == wantWiring && m.Plaintext == wantPlaintext {
			found = true
		}
	}
	assert.Truef(t, found, "expected reflector-B override %q decoding to %q among %d matches", wantWiring, wantPlaintext, len(matches))
}

func TestSequentialAndParallelAgree(t *testing.T) {
	cfgs := mustExpand(t, "? Beta-Gamma-V 4-2-14 M-J-M KI-XN-FL")
	const ciphertext = "DMEXBMKYCVPNQBEDHXVPZGKMTFFBJRPJTLHLCHOTKOYXGGHZ"
	const crib = "SECRETS"

	trials, err := BuildTrials(ciphertext, crib, cfgs)
	require.NoError(t, err)

	seq, err := Sequential(ciphertext, crib, trials)
	require.NoError(t, err)
	par, err := Parallel(ciphertext, crib, trials, WithWorkers(3), WithBatchSize(10))
	require.NoError(t, err)

	require.Len(t, par, len(seq))
	seqKeys := make(map[string]bool, len(seq))
	for _, m := range seq {
		seqKeys[m.Configuration.Key()] = true
	}
	for _, m := range par {
		assert.Truef(t, seqKeys[m.Configuration.Key()], "parallel match %v missing from sequential result set", m.Configuration)
	}
}
