package genetics

import (
	"math/rand"

	"github.com/corvidlabs/neat/neat"
	neatmath "github.com/corvidlabs/neat/neat/math"
)

// MutationKind names one operator in the Mutation Catalog. The string values match the "kind"
// field of neat.MutationKindWeight entries in an Options.MutationKinds table.
type MutationKind string

const (
	MutateAddConnection     MutationKind = "add_connection"
	MutateAddNode           MutationKind = "add_node"
	MutateWeightPerturb     MutationKind = "weight_perturb"
	MutateWeightReplace     MutationKind = "weight_replace"
	MutateBiasPerturb       MutationKind = "bias_perturb"
	MutateBiasReplace       MutationKind = "bias_replace"
	MutateToggleConnection  MutationKind = "toggle_connection"
	MutateChangeActivation  MutationKind = "change_activation"
	MutateChangeAggregation MutationKind = "change_aggregation"
)

// PickMutationKind samples a mutation kind from opts.MutationKinds using roulette-wheel
// selection weighted by each entry's Weight. Returns false if the table is empty or every
// weight is zero.
func PickMutationKind(opts *neat.Options) (MutationKind, bool) {
	weights := make([]float64, len(opts.MutationKinds))
	for i, k := range opts.MutationKinds {
		weights[i] = k.Weight
	}
	idx := neatmath.SingleRouletteThrow(weights)
	if idx < 0 {
		return "", false
	}
	return MutationKind(opts.MutationKinds[idx].Kind), true
}

// Mutate applies the named operator to g. Every operator is best-effort: if no valid target
// exists, it is a no-op and applied is false - per spec, this is never a reported error to the
// caller, just an absorbed local failure (the returned error is only ever a sentinel describing
// why, useful for logging).
func (g *Genome) Mutate(kind MutationKind, registry *InnovationRegistry, opts *neat.Options) (applied bool, err error) {
	switch kind {
	case MutateAddConnection:
		return g.mutateAddConnection(registry, opts)
	case MutateAddNode:
		return g.mutateAddNode(registry, opts)
	case MutateWeightPerturb:
		return g.mutateWeightPerturb(opts)
	case MutateWeightReplace:
		return g.mutateWeightReplace(opts)
	case MutateBiasPerturb:
		return g.mutateBiasPerturb(opts)
	case MutateBiasReplace:
		return g.mutateBiasReplace(opts)
	case MutateToggleConnection:
		return g.mutateDisableConnection()
	case MutateChangeActivation:
		return g.mutateChangeActivation()
	case MutateChangeAggregation:
		return g.mutateChangeAggregation()
	default:
		return false, neat.ErrNoValidMutationTarget
	}
}

// mutateAddConnection samples (from, to) uniformly among node pairs that are not already
// directly (and enabled) connected, then adds the first sampled pair that CanConnect accepts. If
// a disabled gene already exists for the chosen pair, it is re-enabled rather than duplicated.
func (g *Genome) mutateAddConnection(registry *InnovationRegistry, opts *neat.Options) (bool, error) {
	candidates := make([][2]int, 0)
	for from := range g.Nodes {
		if g.Nodes[from].Kind == Output {
			continue
		}
		for to := range g.Nodes {
			if g.Nodes[to].Kind == Input || from == to {
				continue
			}
			if g.hasDirectEdge(from, to) {
				continue
			}
			candidates = append(candidates, [2]int{from, to})
		}
	}
	rand.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	for _, pair := range candidates {
		from, to := pair[0], pair[1]
		if !g.CanConnect(from, to) {
			continue
		}
		if idx, ok := g.connectionIndex(from, to); ok {
			g.Connections[idx].Disabled = false
			return true, nil
		}
		innov := registry.ConnectionInnovation(from, to)
		g.Connections = append(g.Connections, ConnectionGene{
			From:          from,
			To:            to,
			Weight:        neatmath.SampleGaussian(opts.InitialWeightMean, opts.InitialWeightStdDev),
			InnovationNum: innov,
		})
		g.sortConnections()
		return true, nil
	}
	return false, neat.ErrNoValidMutationTarget
}

// mutateAddNode splits a randomly chosen enabled connection (u -> v, weight w): disables it,
// inserts a new hidden node h, and adds u -> h (weight 1) and h -> v (weight w), each with a
// fresh innovation number.
func (g *Genome) mutateAddNode(registry *InnovationRegistry, opts *neat.Options) (bool, error) {
	enabled := make([]int, 0, len(g.Connections))
	for i, c := range g.Connections {
		if !c.Disabled {
			enabled = append(enabled, i)
		}
	}
	if len(enabled) == 0 {
		return false, neat.ErrNoValidMutationTarget
	}

	idx := enabled[rand.Intn(len(enabled))]
	u, v, w := g.Connections[idx].From, g.Connections[idx].To, g.Connections[idx].Weight
	g.Connections[idx].Disabled = true

	h := len(g.Nodes)
	g.Nodes = append(g.Nodes, NodeGene{
		Kind:        Hidden,
		Bias:        neatmath.SampleGaussian(opts.InitialBiasMean, opts.InitialBiasStdDev),
		Activation:  opts.DefaultActivation,
		Aggregation: opts.DefaultAggregation,
		Innovation:  registry.NodeInnovation(u, v),
	})

	g.Connections = append(g.Connections,
		ConnectionGene{From: u, To: h, Weight: 1.0, InnovationNum: registry.ConnectionInnovation(u, h)},
		ConnectionGene{From: h, To: v, Weight: w, InnovationNum: registry.ConnectionInnovation(h, v)},
	)
	g.sortConnections()
	return true, nil
}

func (g *Genome) mutateWeightPerturb(opts *neat.Options) (bool, error) {
	if len(g.Connections) == 0 {
		return false, neat.ErrNoValidMutationTarget
	}
	idx := rand.Intn(len(g.Connections))
	g.Connections[idx].Weight += neatmath.SampleGaussian(0, opts.WeightPerturbStdDev)
	return true, nil
}

func (g *Genome) mutateWeightReplace(opts *neat.Options) (bool, error) {
	if len(g.Connections) == 0 {
		return false, neat.ErrNoValidMutationTarget
	}
	idx := rand.Intn(len(g.Connections))
	g.Connections[idx].Weight = neatmath.SampleGaussian(opts.InitialWeightMean, opts.InitialWeightStdDev)
	return true, nil
}

// nonInputNodeIndices returns node indices eligible for bias/activation/aggregation mutation -
// every node except inputs, which carry no bias and never aggregate or activate.
func (g *Genome) nonInputNodeIndices() []int {
	idx := make([]int, 0, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.Kind != Input {
			idx = append(idx, i)
		}
	}
	return idx
}

func (g *Genome) mutateBiasPerturb(opts *neat.Options) (bool, error) {
	targets := g.nonInputNodeIndices()
	if len(targets) == 0 {
		return false, neat.ErrNoValidMutationTarget
	}
	i := targets[rand.Intn(len(targets))]
	g.Nodes[i].Bias += neatmath.SampleGaussian(0, opts.BiasPerturbStdDev)
	return true, nil
}

func (g *Genome) mutateBiasReplace(opts *neat.Options) (bool, error) {
	targets := g.nonInputNodeIndices()
	if len(targets) == 0 {
		return false, neat.ErrNoValidMutationTarget
	}
	i := targets[rand.Intn(len(targets))]
	g.Nodes[i].Bias = neatmath.SampleGaussian(opts.InitialBiasMean, opts.InitialBiasStdDev)
	return true, nil
}

func (g *Genome) mutateDisableConnection() (bool, error) {
	enabled := make([]int, 0, len(g.Connections))
	for i, c := range g.Connections {
		if !c.Disabled {
			enabled = append(enabled, i)
		}
	}
	if len(enabled) == 0 {
		return false, neat.ErrNoValidMutationTarget
	}
	g.Connections[enabled[rand.Intn(len(enabled))]].Disabled = true
	return true, nil
}

func (g *Genome) mutateChangeActivation() (bool, error) {
	targets := g.nonInputNodeIndices()
	if len(targets) == 0 {
		return false, neat.ErrNoValidMutationTarget
	}
	i := targets[rand.Intn(len(targets))]
	g.Nodes[i].Activation = neatmath.AllActivationTypes[rand.Intn(len(neatmath.AllActivationTypes))]
	return true, nil
}

func (g *Genome) mutateChangeAggregation() (bool, error) {
	targets := g.nonInputNodeIndices()
	if len(targets) == 0 {
		return false, neat.ErrNoValidMutationTarget
	}
	i := targets[rand.Intn(len(targets))]
	g.Nodes[i].Aggregation = neatmath.AllAggregationTypes[rand.Intn(len(neatmath.AllAggregationTypes))]
	return true, nil
}
