package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/neat/neat"
)

func TestPickMutationKind_WeightedSampling(t *testing.T) {
	opts := neat.DefaultOptions()
	seen := make(map[MutationKind]bool)
	for i := 0; i < 200; i++ {
		kind, ok := PickMutationKind(opts)
		require.True(t, ok)
		seen[kind] = true
	}
	assert.Greater(t, len(seen), 1, "weighted sampling across 200 draws should hit more than one kind")
}

func TestPickMutationKind_EmptyTable(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.MutationKinds = nil
	_, ok := PickMutationKind(opts)
	assert.False(t, ok)
}

func TestMutateAddNode_SplitsConnectionAndAssignsInnovation(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(1, 1, registry, opts)

	applied, err := g.Mutate(MutateAddNode, registry, opts)
	require.NoError(t, err)
	require.True(t, applied)

	require.Len(t, g.Nodes, 3)
	hidden := g.Nodes[2]
	assert.Equal(t, Hidden, hidden.Kind)
	assert.NotZero(t, hidden.Innovation)

	var disabledCount, toHidden, fromHidden int
	for _, c := range g.Connections {
		if c.Disabled {
			disabledCount++
		}
		if c.To == 2 {
			toHidden++
		}
		if c.From == 2 {
			fromHidden++
		}
	}
	assert.Equal(t, 1, disabledCount)
	assert.Equal(t, 1, toHidden)
	assert.Equal(t, 1, fromHidden)
}

func TestMutateAddConnection_NoOpWhenFullyConnected(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(1, 1, registry, opts)

	applied, err := g.Mutate(MutateAddConnection, registry, opts)
	assert.False(t, applied)
	assert.Error(t, err)
}

func TestMutateAddConnection_ReEnablesExistingDisabledGene(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(2, 1, registry, opts)
	g.Connections[0].Disabled = true // 0 -> 2, leaving 1 -> 2 as the only enabled edge

	before := len(g.Connections)
	applied, err := g.Mutate(MutateAddConnection, registry, opts)
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, before, len(g.Connections), "re-enabling should not add a new gene")
	assert.False(t, g.Connections[0].Disabled)
}

func TestMutateWeightPerturb_ChangesWeight(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.WeightPerturbStdDev = 1.0
	registry := NewInnovationRegistry()
	g := New(1, 1, registry, opts)
	before := g.Connections[0].Weight

	applied, err := g.Mutate(MutateWeightPerturb, registry, opts)
	require.NoError(t, err)
	require.True(t, applied)
	assert.NotEqual(t, before, g.Connections[0].Weight)
}

func TestMutateToggleConnection_DisablesOneEnabledGene(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(1, 1, registry, opts)

	applied, err := g.Mutate(MutateToggleConnection, registry, opts)
	require.NoError(t, err)
	require.True(t, applied)
	assert.True(t, g.Connections[0].Disabled)

	applied, err = g.Mutate(MutateToggleConnection, registry, opts)
	assert.False(t, applied)
	assert.Error(t, err)
}

func TestMutateChangeActivation_SkipsInputNodes(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(1, 1, registry, opts)
	inputBefore := g.Nodes[0]

	applied, err := g.Mutate(MutateChangeActivation, registry, opts)
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, inputBefore, g.Nodes[0], "the input node must not be a mutation target")
}
