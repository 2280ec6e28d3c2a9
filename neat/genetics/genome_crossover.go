package genetics

import (
	"math/rand"

	"github.com/corvidlabs/neat/neat"
)

// Crossover breeds a child genome from two parents, aligning connection genes by innovation
// number. Matching genes are inherited from a uniformly random parent; unmatched genes
// (disjoint or excess, by innovation number) are inherited from the fitter parent, or - on a
// fitness tie - with probability 0.5 from either parent, so a tie never systematically drops the
// weaker parent's novel structure.
//
// Returns ErrIncompatibleParents if a and b do not share the same input/output counts. If the
// resulting connection set would introduce a cycle (possible when both parents carry unmatched
// connections that are individually acyclic but jointly are not), Crossover repairs the child with
// repairAcyclic, dropping connection genes from the end of canonical (From, To) order until the
// rest is acyclic, rather than returning a malformed child. An empty connection set is always
// acyclic, so the repair always yields a child.
func Crossover(a *Genome, fitnessA float64, b *Genome, fitnessB float64) (*Genome, error) {
	if a.Inputs != b.Inputs || a.Outputs != b.Outputs {
		return nil, neat.ErrIncompatibleParents
	}

	fitter, weaker := a, b
	tied := fitnessA == fitnessB
	if fitnessB > fitnessA {
		fitter, weaker = b, a
	}

	child := &Genome{
		ID:      newGenomeID(),
		Inputs:  a.Inputs,
		Outputs: a.Outputs,
	}
	child.Nodes = inheritNodes(fitter, weaker)

	byInnov := make(map[int64]ConnectionGene)
	order := make([]int64, 0, len(fitter.Connections)+len(weaker.Connections))

	weakerByInnov := make(map[int64]ConnectionGene, len(weaker.Connections))
	for _, c := range weaker.Connections {
		weakerByInnov[c.InnovationNum] = c
	}

	for _, fc := range fitter.Connections {
		wc, matched := weakerByInnov[fc.InnovationNum]
		gene := fc
		switch {
		case matched:
			if rand.Intn(2) == 0 {
				gene = wc
			}
			if fc.Disabled || wc.Disabled {
				gene.Disabled = rand.Float64() < 0.75
			}
		case tied && rand.Float64() < 0.5:
			// Unmatched gene on a fitness tie: keep it with probability 0.5 even though it comes
			// from the "fitter" slot here (fitter == a arbitrarily when tied).
		case !tied:
			// Unmatched gene from the strictly fitter parent: always kept.
		default:
			continue
		}
		byInnov[fc.InnovationNum] = gene
		order = append(order, fc.InnovationNum)
	}

	if tied {
		fitterByInnov := make(map[int64]bool, len(fitter.Connections))
		for _, c := range fitter.Connections {
			fitterByInnov[c.InnovationNum] = true
		}
		for _, wc := range weaker.Connections {
			if fitterByInnov[wc.InnovationNum] {
				continue
			}
			if rand.Float64() < 0.5 {
				byInnov[wc.InnovationNum] = wc
				order = append(order, wc.InnovationNum)
			}
		}
	}

	for _, innov := range order {
		c := byInnov[innov]
		if c.From >= len(child.Nodes) || c.To >= len(child.Nodes) {
			continue
		}
		child.Connections = append(child.Connections, c)
	}
	child.sortConnections()

	if _, ok := child.NodeOrder(nil); !ok {
		if repaired, ok := repairAcyclic(child); ok {
			return repaired, nil
		}
		return nil, neat.ErrCycleIntroduced
	}
	return child, nil
}

// inheritNodes aligns node genes by position: both parents share the same Inputs/Outputs counts
// by construction, so the positional input/output prefix always aligns. The child's total node
// count is sampled uniformly from [min(|fitter.Nodes|,|weaker.Nodes|), max(|fitter.Nodes|,
// |weaker.Nodes|)] rather than always taking the longer parent's count, so a child can inherit
// fewer hidden nodes than either parent alone suggests. Within that count, each position is taken
// from whichever parent has a node there, chosen at random when both do.
func inheritNodes(fitter, weaker *Genome) []NodeGene {
	longer, shorter := fitter, weaker
	if len(weaker.Nodes) > len(fitter.Nodes) {
		longer, shorter = weaker, fitter
	}

	lo, hi := len(shorter.Nodes), len(longer.Nodes)
	target := lo
	if hi > lo {
		target = lo + rand.Intn(hi-lo+1)
	}

	nodes := make([]NodeGene, target)
	for i := 0; i < target; i++ {
		if i < len(shorter.Nodes) && rand.Intn(2) == 0 {
			nodes[i] = shorter.Nodes[i]
		} else {
			nodes[i] = longer.Nodes[i]
		}
	}
	return nodes
}

// repairAcyclic drops connection genes from the end of canonical (From, To) order until the
// remaining edge set is acyclic or none are left.
func repairAcyclic(child *Genome) (*Genome, bool) {
	candidate := child.Clone()
	candidate.ID = child.ID
	for len(candidate.Connections) > 0 {
		if _, ok := candidate.NodeOrder(nil); ok {
			return candidate, true
		}
		candidate.Connections = candidate.Connections[:len(candidate.Connections)-1]
	}
	_, ok := candidate.NodeOrder(nil)
	return candidate, ok
}
