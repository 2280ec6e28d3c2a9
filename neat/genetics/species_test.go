package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/neat/neat"
)

func TestSpeciate_SingleSpeciesWhenAllCompatible(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.CompatibilityThreshold = 100
	registry := NewInnovationRegistry()
	a := New(1, 1, registry, opts)
	b := New(1, 1, registry, opts)

	set := NewSpeciesSet()
	set.Speciate([]*Genome{a, b}, opts)
	assert.Equal(t, 1, set.Size())
}

func TestSpeciate_SplitsIncompatibleGenomes(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.CompatibilityThreshold = 0
	registry := NewInnovationRegistry()
	a := New(1, 1, registry, opts)
	b := New(1, 1, registry, opts)
	b.Connections[0].Weight = a.Connections[0].Weight + 100

	set := NewSpeciesSet()
	set.Speciate([]*Genome{a, b}, opts)
	assert.Equal(t, 2, set.Size())
}

func TestSpeciate_RetiresEmptySpecies(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.CompatibilityThreshold = 0
	registry := NewInnovationRegistry()
	a := New(1, 1, registry, opts)
	b := New(1, 1, registry, opts)
	b.Connections[0].Weight = a.Connections[0].Weight + 100

	set := NewSpeciesSet()
	set.Speciate([]*Genome{a, b}, opts)
	require.Equal(t, 2, set.Size())

	set.Speciate([]*Genome{a}, opts)
	assert.Equal(t, 1, set.Size())
}

func TestSpeciesOf_ReportsAssignment(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.CompatibilityThreshold = 100
	registry := NewInnovationRegistry()
	a := New(1, 1, registry, opts)

	set := NewSpeciesSet()
	set.Speciate([]*Genome{a}, opts)

	sp, ok := set.SpeciesOf(a.ID)
	require.True(t, ok)
	assert.Contains(t, sp.Members, a.ID)
}
