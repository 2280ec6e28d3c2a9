package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/neat/neat"
)

func TestNew_FullyConnectedNoHidden(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(3, 2, registry, opts)

	assert.Len(t, g.Nodes, 5)
	assert.Len(t, g.Connections, 6)
	for _, c := range g.Connections {
		assert.False(t, c.Disabled)
	}
}

func TestNew_ConnectionsAreCanonicallyOrdered(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(2, 2, registry, opts)

	for i := 1; i < len(g.Connections); i++ {
		prev, cur := g.Connections[i-1], g.Connections[i]
		assert.True(t, prev.From < cur.From || (prev.From == cur.From && prev.To < cur.To))
	}
}

func TestClone_SharesNoBackingArray(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(2, 1, registry, opts)

	c := g.Clone()
	require.Equal(t, g.ID, c.ID)
	c.Connections[0].Weight = 999
	assert.NotEqual(t, g.Connections[0].Weight, c.Connections[0].Weight)
}

func TestCloneAsNew_AssignsFreshID(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(2, 1, registry, opts)

	c := g.CloneAsNew()
	assert.NotEqual(t, g.ID, c.ID)
}

func TestCanConnect_RejectsOutputAsSource(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(1, 2, registry, opts)

	assert.False(t, g.CanConnect(1, 2))
}

func TestCanConnect_RejectsInputAsDestination(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(2, 1, registry, opts)

	assert.False(t, g.CanConnect(2, 0))
}

func TestCanConnect_RejectsCycleAndRedundantPath(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(1, 1, registry, opts)
	applied, err := g.Mutate(MutateAddNode, registry, opts)
	require.NoError(t, err)
	require.True(t, applied)

	hidden := 2
	output := 1
	assert.False(t, g.CanConnect(output, hidden), "would introduce a cycle")

	input := 0
	assert.False(t, g.CanConnect(input, output), "already transitively projects to output via hidden node")
}

func TestIsProjecting_TransitiveReachability(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(1, 1, registry, opts)
	_, err := g.Mutate(MutateAddNode, registry, opts)
	require.NoError(t, err)

	assert.True(t, g.IsProjecting(0, 1))
	assert.True(t, g.IsProjecting(0, 2))
	assert.False(t, g.IsProjecting(1, 0))
}

func TestNodeOrder_DetectsCycle(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(1, 1, registry, opts)

	_, ok := g.NodeOrder([]ConnectionGene{{From: 1, To: 0}})
	assert.False(t, ok)
}

func TestNodeOrder_InputsFirst(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := NewInnovationRegistry()
	g := New(2, 2, registry, opts)

	order, ok := g.NodeOrder(nil)
	require.True(t, ok)
	assert.ElementsMatch(t, []int{0, 1}, order[:2])
}
