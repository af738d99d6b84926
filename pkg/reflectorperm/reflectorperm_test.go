package reflectorperm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reflectorBWiring = "YRUHQSLDPXNGOKMIEBFZCWVJAT"

func TestGenerateN2Count(t *testing.T) {
	wirings, err := GenerateN2(reflectorBWiring)
	require.NoError(t, err)
	assert.Len(t, wirings, 4290)
}

func TestGenerateN2ProducesValidInvolutions(t *testing.T) {
	wirings, err := GenerateN2(reflectorBWiring)
	require.NoError(t, err)

	for _, w := range wirings {
		pairs, err := wiringToPairs(w)
		require.NoErrorf(t, err, "wiring %q is not a valid involution", w)
		assert.Lenf(t, pairs, 13, "wiring %q", w)
	}
}

func TestGenerateN2IsDeduplicated(t *testing.T) {
	wirings, err := GenerateN2(reflectorBWiring)
	require.NoError(t, err)

	seen := make(map[string]bool, len(wirings))
	for _, w := range wirings {
		assert.Falsef(t, seen[w], "duplicate wiring %q in output", w)
		seen[w] = true
	}
}

func TestGenerateN2RejectsBadWiring(t *testing.T) {
	_, err := GenerateN2("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	assert.Error(t, err, "identity wiring: every letter is a fixed point")

	_, err = GenerateN2("TOOSHORT")
	assert.Error(t, err, "wrong-length wiring")
}
