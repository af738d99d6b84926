package expander

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coredds/enigma-breaker/pkg/config"
)

func TestExpandLiteralTemplateProducesExactlyOne(t *testing.T) {
	cfgs, err := Expand("B III-II-I 1-1-1 A-A-Z HL-MO-AJ-CX-BZ-SR-NI-YW-DG-PK")
	require.NoError(t, err)
	require.Len(t, cfgs, 1)

	want, err := config.Parse("B III-II-I 1-1-1 A-A-Z HL-MO-AJ-CX-BZ-SR-NI-YW-DG-PK")
	require.NoError(t, err)
	assert.True(t, cfgs[0].Equal(want))
}

func TestExpandReflectorWildcard(t *testing.T) {
	cfgs, err := Expand("? Beta-Gamma-V 4-2-14 M-J-M KI-XN-FL")
	require.NoError(t, err)
	require.Len(t, cfgs, 3, "one per wildcard reflector")

	seen := map[string]bool{}
	for _, c := range cfgs {
		seen[string(c.Reflector)] = true
	}
	for _, want := range []string{"A", "B", "C"} {
		assert.True(t, seen[want], "missing reflector %s among results", want)
	}
}

func TestExpandPositionWildcardDropsInvalidAndRoundTrips(t *testing.T) {
	cfgs, err := Expand("B Beta-I-III 23-2-10 ?-?-? VH-PT-ZG-BJ-EY-FS")
	require.NoError(t, err)
	require.Len(t, cfgs, 26*26*26)

	for _, c := range cfgs {
		reparsed, err := config.Parse(c.String())
		require.NoErrorf(t, err, "round-trip parse of %s", c.String())
		assert.Truef(t, c.Equal(reparsed), "round trip mismatch: %v vs %v", c, reparsed)
	}
}

func TestExpandRotorListDropsDuplicateKinds(t *testing.T) {
	cfgs, err := Expand("B [I,II]-[I,II]-III 1-1-1 A-A-A")
	require.NoError(t, err)
	// Of the 2x2=4 raw rotor tuples for the first two slots, exactly the
	// 2 with distinct kinds (I,II) and (II,I) survive the duplicate filter.
	assert.Len(t, cfgs, 2)
}

func TestExpandAnchoredPlugWildcard(t *testing.T) {
	cfgs, err := Expand("B III-II-I 1-1-1 A-A-A ?K")
	require.NoError(t, err)
	assert.Len(t, cfgs, 25, "K paired with every other letter")
}

func TestExpandRejectsUnknownRotorKind(t *testing.T) {
	_, err := Expand("B VII-II-I 1-1-1 A-A-A")
	assert.Error(t, err)
}

func TestStreamStopsEarly(t *testing.T) {
	count := 0
	err := Stream("? Beta-Gamma-V 4-2-14 M-J-M KI-XN-FL", func(cfg config.Configuration) bool {
		count++
		return count < 2
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count, "emit called exactly twice (stop after second)")
}
