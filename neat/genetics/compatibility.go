package genetics

import (
	"math"

	"github.com/corvidlabs/neat/neat"
)

// CompatibilityDistance measures how different two genomes are, for speciation. Connection genes
// are aligned by innovation number: D counts genes present in only one genome (disjoint and
// excess are not distinguished - both simply fail to match), and W is the summed absolute weight
// difference of genes present in both. Node genes are aligned positionally (both genomes share
// the same Inputs/Outputs prefix; beyond that, position i in one genome is compared with position
// i in the other, up to the shorter genome's length) and contribute a bias difference plus a
// mismatch count for activation and aggregation tags.
//
// distance = (c1*D + c2*W + c3*M)/N + c4*biasDiffSum + c5*actMismatch + c6*aggMismatch
//
// where N is max(len(a.Connections), len(b.Connections), 1) and M counts matching connection
// pairs whose Disabled flags differ. The node-gene terms are raw, unnormalized sums/counts - they
// are not divided by node count.
func CompatibilityDistance(a, b *Genome, opts *neat.Options) float64 {
	aByInnov := make(map[int64]ConnectionGene, len(a.Connections))
	for _, c := range a.Connections {
		aByInnov[c.InnovationNum] = c
	}
	bByInnov := make(map[int64]ConnectionGene, len(b.Connections))
	for _, c := range b.Connections {
		bByInnov[c.InnovationNum] = c
	}

	var unmatched, flipped float64
	var weightDiffSum float64

	for innov, ac := range aByInnov {
		if bc, ok := bByInnov[innov]; ok {
			weightDiffSum += math.Abs(ac.Weight - bc.Weight)
			if ac.Disabled != bc.Disabled {
				flipped++
			}
		} else {
			unmatched++
		}
	}
	for innov := range bByInnov {
		if _, ok := aByInnov[innov]; !ok {
			unmatched++
		}
	}

	n := float64(len(a.Connections))
	if len(b.Connections) > len(a.Connections) {
		n = float64(len(b.Connections))
	}
	if n < 1 {
		n = 1
	}

	shorter := len(a.Nodes)
	if len(b.Nodes) < shorter {
		shorter = len(b.Nodes)
	}

	var biasDiffSum, actMismatch, aggMismatch float64
	for i := 0; i < shorter; i++ {
		biasDiffSum += math.Abs(a.Nodes[i].Bias - b.Nodes[i].Bias)
		if a.Nodes[i].Activation != b.Nodes[i].Activation {
			actMismatch++
		}
		if a.Nodes[i].Aggregation != b.Nodes[i].Aggregation {
			aggMismatch++
		}
	}

	return (opts.DistConnectionDisjointCoeff*unmatched+
		opts.DistConnectionWeightCoeff*weightDiffSum+
		opts.DistConnectionDisabledCoeff*flipped)/n +
		opts.DistNodeBiasCoeff*biasDiffSum +
		opts.DistNodeActivationCoeff*actMismatch +
		opts.DistNodeAggregationCoeff*aggMismatch
}

// AreCompatible reports whether a and b belong in the same species under opts's
// CompatibilityThreshold.
func AreCompatible(a, b *Genome, opts *neat.Options) bool {
	return CompatibilityDistance(a, b, opts) <= opts.CompatibilityThreshold
}
