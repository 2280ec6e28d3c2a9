// Package driver runs the NEAT generational loop: evaluate, speciate, rank, select, reproduce,
// repeat - until a fitness goal is met or a generation cap is reached.
package driver

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/corvidlabs/neat/neat"
	"github.com/corvidlabs/neat/neat/genetics"
	"github.com/corvidlabs/neat/neat/network"
)

// FitnessFunc scores a genome's phenotype. Errors are treated as a fitness of 0 for that genome -
// a task's own evaluation failures (e.g. a malformed network) should not abort the run.
type FitnessFunc func(net *network.Network) (float64, error)

// Driver owns one run's population state and orchestrates its evolution.
type Driver struct {
	opts     *neat.Options
	inputs   int
	outputs  int
	fitness  FitnessFunc
	registry *genetics.InnovationRegistry
	bank     *genetics.Bank
	species  *genetics.SpeciesSet
	hooks    []hookEntry
}

// NewDriver constructs a Driver for a network with the given input/output counts, scored by
// fitness, configured by opts. opts is validated; an invalid configuration is returned as an
// error rather than discovered partway through a run.
func NewDriver(opts *neat.Options, inputs, outputs int, fitness FitnessFunc) (*Driver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Driver{
		opts:     opts,
		inputs:   inputs,
		outputs:  outputs,
		fitness:  fitness,
		registry: genetics.NewInnovationRegistry(),
		bank:     genetics.NewBank(),
		species:  genetics.NewSpeciesSet(),
	}, nil
}

type evaluated struct {
	genome *genetics.Genome
	raw    float64
}

// Start runs the generational loop until ctx is cancelled, a genome's raw fitness meets
// opts.FitnessGoal, or opts.MaxGenerations elapses. It returns the best genome's built network,
// that genome's raw fitness, and any fatal error encountered (ErrEmptySurvivorPool if a
// generation leaves nothing to reproduce from).
func (d *Driver) Start(ctx context.Context) (*network.Network, float64, error) {
	ctx = neat.NewContext(ctx, d.opts)

	population := make([]*genetics.Genome, d.opts.PopSize)
	for i := range population {
		g := genetics.New(d.inputs, d.outputs, d.registry, d.opts)
		d.bank.AddGenome(g)
		population[i] = g
	}

	var best *genetics.Genome
	var bestFitness float64

	for gen := 1; gen <= d.opts.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			return d.buildBest(best, bestFitness, err)
		}

		results := d.evaluateParallel(population)
		for _, r := range results {
			d.bank.MarkFitness(r.genome.ID, r.raw)
			if best == nil || r.raw > bestFitness {
				best, bestFitness = r.genome, r.raw
			}
		}

		d.species.Speciate(population, d.opts)
		neat.InfoLog("generation complete")

		if d.opts.FitnessGoal != nil && bestFitness >= *d.opts.FitnessGoal {
			snap := d.report(gen, results)
			d.fireHooks(snap)
			return d.buildBest(best, bestFitness, nil)
		}

		ranked, err := d.rank(results)
		if err != nil {
			return d.buildBest(best, bestFitness, err)
		}

		snap := d.report(gen, results)
		d.fireHooks(snap)

		if gen == d.opts.MaxGenerations {
			break
		}

		population, err = d.reproduce(ctx, ranked)
		if err != nil {
			return d.buildBest(best, bestFitness, err)
		}

		d.bank.Clear()
		for _, g := range population {
			d.bank.AddGenome(g)
		}
	}

	return d.buildBest(best, bestFitness, nil)
}

func (d *Driver) buildBest(best *genetics.Genome, fitness float64, err error) (*network.Network, float64, error) {
	if best == nil {
		return nil, 0, err
	}
	net, buildErr := network.Build(best)
	if buildErr != nil && err == nil {
		err = buildErr
	}
	return net, fitness, err
}

// evaluateParallel scores every genome in population, fanning work out across a worker pool
// bounded by runtime.GOMAXPROCS(0) so evaluation of one generation never oversubscribes the host.
func (d *Driver) evaluateParallel(population []*genetics.Genome) []evaluated {
	results := make([]evaluated, len(population))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup

	for i, g := range population {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, g *genetics.Genome) {
			defer wg.Done()
			defer func() { <-sem }()

			net, err := network.Build(g)
			if err != nil {
				neat.WarnLog("genome failed to build into a network, scoring 0")
				results[i] = evaluated{genome: g, raw: 0}
				return
			}
			raw, err := d.fitness(net)
			if err != nil {
				neat.WarnLog("fitness evaluation failed, scoring 0")
				raw = 0
			}
			results[i] = evaluated{genome: g, raw: raw}
		}(i, g)
	}
	wg.Wait()
	return results
}

type rankedGenome struct {
	genome    *genetics.Genome
	adjusted  float64
}

// rank computes each genome's fitness-shared adjusted score and returns the population sorted
// descending by it.
func (d *Driver) rank(results []evaluated) ([]rankedGenome, error) {
	ranked := make([]rankedGenome, 0, len(results))
	for _, r := range results {
		sp, ok := d.species.SpeciesOf(r.genome.ID)
		size := 1
		if ok {
			size = len(sp.Members)
		}
		adjusted, err := d.bank.AdjustedFitness(r.genome.ID, size, d.opts.NodeCost, d.opts.ConnectionCost)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, rankedGenome{genome: r.genome, adjusted: adjusted})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].adjusted > ranked[j].adjusted })
	return ranked, nil
}

// reproduce builds the next generation: the top Elitism fraction of ranked survives unchanged -
// same genome id, same genes, via Clone - and the remainder is filled by crossing pairs drawn
// from the top SurvivalRatio fraction, each child mutated with probability opts.MutationRate.
// Options are pulled from ctx (set once by Start) rather than threaded as a parameter, matching
// this module's context-carried-configuration convention (see neat.NewContext/FromContext). Both
// crossover and mutation are fanned out across a worker pool bounded by runtime.GOMAXPROCS(0).
func (d *Driver) reproduce(ctx context.Context, ranked []rankedGenome) ([]*genetics.Genome, error) {
	opts, ok := neat.FromContext(ctx)
	if !ok {
		opts = d.opts
	}

	survivorCount := int(float64(len(ranked)) * opts.SurvivalRatio)
	if survivorCount == 0 {
		return nil, errors.Wrap(neat.ErrEmptySurvivorPool, "generation produced no survivors")
	}
	survivors := ranked[:survivorCount]

	eliteCount := int(float64(len(ranked)) * opts.Elitism)
	children := make([]*genetics.Genome, len(ranked))

	for i := 0; i < eliteCount && i < len(ranked); i++ {
		children[i] = ranked[i].genome.Clone()
	}

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i := eliteCount; i < len(children); i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			parentA := survivors[randIndex(len(survivors))]
			parentB := survivors[randIndex(len(survivors))]
			child, err := genetics.Crossover(parentA.genome, parentA.adjusted, parentB.genome, parentB.adjusted)
			if err != nil || child == nil {
				child = parentA.genome.CloneAsNew()
			}
			if randFloat() < opts.MutationRate {
				kind, ok := genetics.PickMutationKind(opts)
				if ok {
					_, _ = child.Mutate(kind, d.registry, opts)
				}
			}
			children[i] = child
		}(i)
	}
	wg.Wait()

	return children, nil
}

func (d *Driver) report(gen int, results []evaluated) Snapshot {
	raw := make([]float64, len(results))
	var bestNodes, bestConns int
	var bestRaw float64
	for i, r := range results {
		raw[i] = r.raw
		if i == 0 || r.raw > bestRaw {
			bestRaw = r.raw
			bestNodes = len(r.genome.Nodes)
			bestConns = len(r.genome.Connections)
		}
	}
	return summarize(gen, raw, d.species.Size(), bestNodes, bestConns)
}
