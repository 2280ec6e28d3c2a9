package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidlabs/neat/neat"
	"github.com/corvidlabs/neat/neat/genetics"
	neatmath "github.com/corvidlabs/neat/neat/math"
)

func TestBuildAndForwardPass_FullyConnected(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := genetics.NewInnovationRegistry()
	g := genetics.New(2, 1, registry, opts)
	for i := range g.Connections {
		g.Connections[i].Weight = 1.0
	}
	g.Nodes[2].Bias = 0
	g.Nodes[2].Activation = neatmath.IdentityActivation
	g.Nodes[2].Aggregation = neatmath.SumAggregation

	net, err := Build(g)
	require.NoError(t, err)
	assert.Equal(t, 3, net.NodeCount())
	assert.Equal(t, 2, net.LinkCount())

	out, err := net.ForwardPass([]float64{1, 2})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.InDelta(t, 3.0, out[0], 1e-9)
}

func TestForwardPass_WrongInputCount(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := genetics.NewInnovationRegistry()
	g := genetics.New(2, 1, registry, opts)
	net, err := Build(g)
	require.NoError(t, err)

	_, err = net.ForwardPass([]float64{1})
	assert.Error(t, err)
}

func TestForwardPass_DisabledConnectionIgnored(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := genetics.NewInnovationRegistry()
	g := genetics.New(2, 1, registry, opts)
	g.Connections[0].Weight = 5.0
	g.Connections[1].Weight = 5.0
	g.Connections[1].Disabled = true
	g.Nodes[2].Bias = 0
	g.Nodes[2].Activation = neatmath.IdentityActivation
	g.Nodes[2].Aggregation = neatmath.SumAggregation

	net, err := Build(g)
	require.NoError(t, err)
	out, err := net.ForwardPass([]float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, out[0], 1e-9)
}

func TestBuild_HiddenNodeSplit(t *testing.T) {
	opts := neat.DefaultOptions()
	registry := genetics.NewInnovationRegistry()
	g := genetics.New(1, 1, registry, opts)
	applied, err := g.Mutate(genetics.MutateAddNode, registry, opts)
	require.NoError(t, err)
	require.True(t, applied)

	net, err := Build(g)
	require.NoError(t, err)
	assert.Equal(t, 3, net.NodeCount())

	_, err = net.ForwardPass([]float64{0.5})
	require.NoError(t, err)
}
