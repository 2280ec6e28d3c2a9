package genetics

import (
	"fmt"

	neatmath "github.com/corvidlabs/neat/neat/math"
)

// NodeKind classifies a node gene's role in the network. Stored explicitly on every NodeGene
// rather than inferred from position, so a genome's input/output index lists survive mutation
// without relying on the "first I, last O" convention.
type NodeKind byte

const (
	// Input nodes receive the network's external inputs and are never mutation targets for bias,
	// activation, or aggregation.
	Input NodeKind = iota + 1
	// Hidden nodes are introduced by the AddNode mutation.
	Hidden
	// Output nodes produce the network's result vector.
	Output
)

func (k NodeKind) String() string {
	switch k {
	case Input:
		return "input"
	case Hidden:
		return "hidden"
	case Output:
		return "output"
	default:
		return "unknown"
	}
}

// NodeGene is one node in a genome: its role, its bias, and the activation/aggregation tags its
// phenotype counterpart will use.
//
// Innovation is the node-innovation number assigned when a hidden node is introduced by the
// AddNode mutation (zero for the Input/Output nodes present from Genome construction); it
// identifies the node across genomes descending from the same split, for future identity-aligned
// comparisons (see DESIGN.md for why compatibility distance itself still aligns positionally).
type NodeGene struct {
	Kind        NodeKind
	Bias        float64
	Activation  neatmath.ActivationType
	Aggregation neatmath.AggregationType
	Innovation  int64
}

func (n NodeGene) String() string {
	return fmt.Sprintf("[%s bias=%.3f act=%d agg=%d]", n.Kind, n.Bias, n.Activation, n.Aggregation)
}

// ConnectionGene is one edge in a genome. Two connection genes are the same gene iff their
// InnovationNum is equal - From/To identify the edge's endpoints in the owning genome's node
// list, which is only meaningful alongside that genome.
type ConnectionGene struct {
	From          int
	To            int
	Weight        float64
	Disabled      bool
	InnovationNum int64
}

func (c ConnectionGene) String() string {
	enabled := ""
	if c.Disabled {
		enabled = " -DISABLED-"
	}
	return fmt.Sprintf("[%d -> %d] weight=%.3f innov=%d%s", c.From, c.To, c.Weight, c.InnovationNum, enabled)
}
