// Package network implements the phenotype a Genome decodes into: a feedforward graph of nodes
// and weighted connections that can be evaluated against an input vector.
package network

import (
	"fmt"

	"github.com/corvidlabs/neat/neat/genetics"
	neatmath "github.com/corvidlabs/neat/neat/math"
)

// node is one unit of the built network: its bias, its activation/aggregation tags, and the
// weighted incoming edges it aggregates before activating.
type node struct {
	bias        float64
	activation  neatmath.ActivationType
	aggregation neatmath.AggregationType
	incoming    []edge
}

type edge struct {
	from   int
	weight float64
}

// Network is the phenotype built from a Genome: a fixed evaluation order over its nodes, caching
// the topological order computed once at Build time so ForwardPass never needs to recompute it.
type Network struct {
	inputs  int
	outputs int

	nodes []node
	order []int

	inputIdx  []int
	outputIdx []int
}

// Solver is satisfied by Network; defined so callers can depend on the behavior without
// depending on the concrete type, matching this module's other component interfaces.
type Solver interface {
	ForwardPass(inputs []float64) ([]float64, error)
	NodeCount() int
	LinkCount() int
}

// Build decodes a genome into a Network. Fails only if the genome's enabled connections are not
// acyclic, which should never happen for a genome produced by this module's mutation and
// crossover operators - Build returns an error rather than panicking so a caller evaluating
// untrusted or hand-built genomes can recover.
func Build(g *genetics.Genome) (*Network, error) {
	order, ok := g.NodeOrder(nil)
	if !ok {
		return nil, fmt.Errorf("network: genome %d contains a cycle in its enabled connections", g.ID)
	}

	n := &Network{
		inputs:  g.Inputs,
		outputs: g.Outputs,
		nodes:   make([]node, len(g.Nodes)),
		order:   order,
	}

	for i, ng := range g.Nodes {
		n.nodes[i] = node{
			bias:        ng.Bias,
			activation:  ng.Activation,
			aggregation: ng.Aggregation,
		}
		switch ng.Kind {
		case genetics.Input:
			n.inputIdx = append(n.inputIdx, i)
		case genetics.Output:
			n.outputIdx = append(n.outputIdx, i)
		}
	}

	for _, c := range g.Connections {
		if c.Disabled {
			continue
		}
		n.nodes[c.To].incoming = append(n.nodes[c.To].incoming, edge{from: c.From, weight: c.Weight})
	}

	return n, nil
}

// ForwardPass evaluates the network against inputs, one value per input node in input-node
// order, and returns one value per output node in output-node order. A single pass over the
// cached topological order suffices since the underlying graph is always acyclic.
func (n *Network) ForwardPass(inputs []float64) ([]float64, error) {
	if len(inputs) != n.inputs {
		return nil, fmt.Errorf("network: expected %d inputs, got %d", n.inputs, len(inputs))
	}

	values := make([]float64, len(n.nodes))
	for i, idx := range n.inputIdx {
		values[idx] = inputs[i]
	}

	inputSet := make(map[int]bool, len(n.inputIdx))
	for _, idx := range n.inputIdx {
		inputSet[idx] = true
	}

	for _, i := range n.order {
		if inputSet[i] {
			continue
		}
		nd := n.nodes[i]
		terms := make([]float64, len(nd.incoming))
		for j, e := range nd.incoming {
			terms[j] = values[e.from] * e.weight
		}
		aggregated, err := neatmath.Aggregate(nd.aggregation, terms)
		if err != nil {
			return nil, err
		}
		activated, err := neatmath.Activate(nd.activation, aggregated+nd.bias)
		if err != nil {
			return nil, err
		}
		values[i] = activated
	}

	out := make([]float64, len(n.outputIdx))
	for i, idx := range n.outputIdx {
		out[i] = values[idx]
	}
	return out, nil
}

// NodeCount returns the total number of nodes in the network.
func (n *Network) NodeCount() int {
	return len(n.nodes)
}

// LinkCount returns the total number of enabled connections in the network.
func (n *Network) LinkCount() int {
	count := 0
	for _, nd := range n.nodes {
		count += len(nd.incoming)
	}
	return count
}

// ConnectionWeights flattens every enabled connection's weight into a single slice, node order
// then incoming-edge order - a stable, if arbitrary, serialization used to export a winning
// network's weights for external inspection.
func (n *Network) ConnectionWeights() []float64 {
	weights := make([]float64, 0, n.LinkCount())
	for _, nd := range n.nodes {
		for _, e := range nd.incoming {
			weights = append(weights, e.weight)
		}
	}
	return weights
}
