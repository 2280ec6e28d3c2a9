package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/neat/neat"
)

func TestCompatibilityDistance_IdenticalGenomesAreZero(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(2, 1, registry, opts)

	assert.Zero(t, CompatibilityDistance(g, g.Clone(), opts))
}

func TestCompatibilityDistance_WeightDifferenceContributes(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	a := New(1, 1, registry, opts)
	b := a.Clone()
	a.Connections[0].Weight = 1.0
	b.Connections[0].Weight = 1.0 + 10.0

	d := CompatibilityDistance(a, b, opts)
	assert.Greater(t, d, 0.0)
}

func TestCompatibilityDistance_UnmatchedConnectionsContribute(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	a := New(1, 1, registry, opts)
	b := a.Clone()
	applied, err := a.Mutate(MutateAddNode, registry, opts)
	require.NoError(t, err)
	require.True(t, applied)

	d := CompatibilityDistance(a, b, opts)
	assert.Greater(t, d, 0.0)
}

func TestAreCompatible_RespectsThreshold(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.CompatibilityThreshold = 0
	registry := NewInnovationRegistry()
	a := New(1, 1, registry, opts)
	b := a.Clone()
	b.Connections[0].Weight += 1.0

	assert.True(t, AreCompatible(a, a.Clone(), opts))
	assert.False(t, AreCompatible(a, b, opts))
}
