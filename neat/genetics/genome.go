// Package genetics implements the genotype at the core of the NEAT engine: the Genome and its
// node/connection genes, the structural queries mutation and crossover depend on, the Mutation
// Catalog, Crossover, compatibility distance, and the Genome Bank / Species Set that track
// fitness and speciation across generations.
package genetics

import (
	"sort"
	"sync/atomic"

	"github.com/corvidlabs/neat/neat"
	neatmath "github.com/corvidlabs/neat/neat/math"
)

var nextGenomeID uint64

// GenomeID is a process-unique, monotonically assigned genome identity - stable across Clone.
type GenomeID uint64

func newGenomeID() GenomeID {
	return GenomeID(atomic.AddUint64(&nextGenomeID, 1))
}

// Genome is the genotype: a fixed input/output count, an ordered list of node genes, and an
// ordered list of connection genes kept in canonical order (From ascending, then To).
//
// Invariants maintained by every exported mutator on this type:
//  1. The subgraph induced by enabled connections is a DAG.
//  2. Every enabled connection's endpoints are valid node indices; From is never Output, To is
//     never Input.
//  3. At most one connection gene exists per (From, To) ordered pair.
//  4. Inputs and Outputs never change after construction.
type Genome struct {
	ID      GenomeID
	Inputs  int
	Outputs int

	Nodes       []NodeGene
	Connections []ConnectionGene
}

// New constructs a minimal genome: Inputs fully connected to Outputs, no hidden nodes. Weights
// and biases are drawn from the configured initial distribution; connections each receive a
// fresh innovation number from registry.
func New(inputs, outputs int, registry *InnovationRegistry, opts *neat.Options) *Genome {
	g := &Genome{
		ID:      newGenomeID(),
		Inputs:  inputs,
		Outputs: outputs,
		Nodes:   make([]NodeGene, 0, inputs+outputs),
	}
	for i := 0; i < inputs; i++ {
		g.Nodes = append(g.Nodes, NodeGene{Kind: Input, Activation: neatmath.IdentityActivation, Aggregation: neatmath.SumAggregation})
	}
	for i := 0; i < outputs; i++ {
		g.Nodes = append(g.Nodes, NodeGene{
			Kind:        Output,
			Bias:        neatmath.SampleGaussian(opts.InitialBiasMean, opts.InitialBiasStdDev),
			Activation:  opts.DefaultActivation,
			Aggregation: opts.DefaultAggregation,
		})
	}
	for i := 0; i < inputs; i++ {
		for o := inputs; o < inputs+outputs; o++ {
			innov := registry.ConnectionInnovation(i, o)
			g.Connections = append(g.Connections, ConnectionGene{
				From:          i,
				To:            o,
				Weight:        neatmath.SampleGaussian(opts.InitialWeightMean, opts.InitialWeightStdDev),
				InnovationNum: innov,
			})
		}
	}
	g.sortConnections()
	return g
}

// Clone returns a deep copy that shares no backing arrays with g, preserving ID - used when
// carrying an elite unchanged into the next generation.
func (g *Genome) Clone() *Genome {
	c := &Genome{
		ID:      g.ID,
		Inputs:  g.Inputs,
		Outputs: g.Outputs,
	}
	c.Nodes = append([]NodeGene(nil), g.Nodes...)
	c.Connections = append([]ConnectionGene(nil), g.Connections...)
	return c
}

// CloneAsNew is like Clone but assigns a fresh GenomeID - used by the driver when crossover yields
// no child, so a copy of the first parent stands in for the child (the result is a new genome,
// not the parent carried forward).
func (g *Genome) CloneAsNew() *Genome {
	c := g.Clone()
	c.ID = newGenomeID()
	return c
}

func (g *Genome) sortConnections() {
	sort.Slice(g.Connections, func(i, j int) bool {
		if g.Connections[i].From != g.Connections[j].From {
			return g.Connections[i].From < g.Connections[j].From
		}
		return g.Connections[i].To < g.Connections[j].To
	})
}

// inputIndices and outputIndices return the node indices of each kind, derived from the explicit
// Kind tag rather than a positional convention - see NodeKind's doc comment.
func (g *Genome) inputIndices() []int {
	idx := make([]int, 0, g.Inputs)
	for i, n := range g.Nodes {
		if n.Kind == Input {
			idx = append(idx, i)
		}
	}
	return idx
}

func (g *Genome) outputIndices() []int {
	idx := make([]int, 0, g.Outputs)
	for i, n := range g.Nodes {
		if n.Kind == Output {
			idx = append(idx, i)
		}
	}
	return idx
}

// enabledEdges returns (from, to) pairs for every enabled connection, plus any extra candidate
// edges appended - used by NodeOrder to test a prospective mutation without applying it.
func (g *Genome) enabledEdges(extra []ConnectionGene) []ConnectionGene {
	edges := make([]ConnectionGene, 0, len(g.Connections)+len(extra))
	for _, c := range g.Connections {
		if !c.Disabled {
			edges = append(edges, c)
		}
	}
	edges = append(edges, extra...)
	return edges
}

// NodeOrder returns a topological order of all node indices over enabled connections plus any
// extra edges, or false if no such order exists (the edge set contains a cycle).
//
// Inputs without incoming edges are seeded as visited; repeatedly, every unvisited node whose
// predecessors are all visited is visited, until no progress is made. The order is valid iff every
// node was visited.
func (g *Genome) NodeOrder(extra []ConnectionGene) ([]int, bool) {
	edges := g.enabledEdges(extra)

	predecessors := make(map[int][]int)
	for _, e := range edges {
		predecessors[e.To] = append(predecessors[e.To], e.From)
	}

	visited := make(map[int]bool, len(g.Nodes))
	order := make([]int, 0, len(g.Nodes))
	for _, i := range g.inputIndices() {
		if len(predecessors[i]) > 0 {
			continue
		}
		visited[i] = true
		order = append(order, i)
	}

	for {
		progressed := false
		for i := range g.Nodes {
			if visited[i] {
				continue
			}
			ready := true
			for _, p := range predecessors[i] {
				if !visited[p] {
					ready = false
					break
				}
			}
			if ready {
				visited[i] = true
				order = append(order, i)
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	if len(order) != len(g.Nodes) {
		return nil, false
	}
	return order, true
}

// IsProjecting reports whether dst is reachable from src by a path of enabled connections,
// including the trivial direct edge. A breadth-first search over successors, tracking which
// nodes have already had their outgoing edges expanded so no node is expanded twice.
func (g *Genome) IsProjecting(src, dst int) bool {
	adjacency := make(map[int][]int)
	for _, c := range g.Connections {
		if !c.Disabled {
			adjacency[c.From] = append(adjacency[c.From], c.To)
		}
	}

	expanded := make(map[int]bool)
	queue := []int{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if expanded[cur] {
			continue
		}
		expanded[cur] = true
		for _, next := range adjacency[cur] {
			if next == dst {
				return true
			}
			if !expanded[next] {
				queue = append(queue, next)
			}
		}
	}
	return false
}

// CanConnect reports whether a fresh edge from -> to may be added: from is not an Output, to is
// not an Input, the edge would not create a cycle, and from does not already (transitively)
// project to to.
func (g *Genome) CanConnect(from, to int) bool {
	if from < 0 || from >= len(g.Nodes) || to < 0 || to >= len(g.Nodes) {
		return false
	}
	if g.Nodes[from].Kind == Output || g.Nodes[to].Kind == Input {
		return false
	}
	if _, ok := g.NodeOrder([]ConnectionGene{{From: from, To: to}}); !ok {
		return false
	}
	return !g.IsProjecting(from, to)
}

// connectionIndex returns the index of the connection gene between from and to, if any.
func (g *Genome) connectionIndex(from, to int) (int, bool) {
	for i, c := range g.Connections {
		if c.From == from && c.To == to {
			return i, true
		}
	}
	return -1, false
}

// hasDirectEdge reports whether an enabled connection exists directly between from and to.
func (g *Genome) hasDirectEdge(from, to int) bool {
	i, ok := g.connectionIndex(from, to)
	return ok && !g.Connections[i].Disabled
}
