// Package neat implements the ambient scaffolding shared by the rest of this module: the
// process-wide Options configuration, its loaders, leveled logging, and the context plumbing used
// to carry an immutable Options snapshot through a run without a lock on every read.
package neat

import (
	"github.com/pkg/errors"

	neatmath "github.com/corvidlabs/neat/neat/math"
)

// MutationKindWeight pairs a mutation operator tag with its selection weight in the Mutation
// Catalog's weighted sampling table.
type MutationKindWeight struct {
	Kind   string  `yaml:"kind"`
	Weight float64 `yaml:"weight"`
}

// Options holds every tunable of a NEAT run. It is loaded once, validated, and then treated as an
// immutable snapshot for the lifetime of a Driver.Start call - see neat.NewContext/FromContext.
type Options struct {
	// PopSize is the number of genomes per generation.
	PopSize int `yaml:"pop_size"`
	// MaxGenerations is the hard cap on generations run.
	MaxGenerations int `yaml:"max_generations"`
	// FitnessGoal, if set, ends the run early once any genome's raw fitness meets it.
	FitnessGoal *float64 `yaml:"fitness_goal"`

	// SurvivalRatio is the fraction of the ranked population eligible to reproduce.
	SurvivalRatio float64 `yaml:"survival_ratio"`
	// Elitism is the fraction of the ranked population copied unchanged into the next generation.
	Elitism float64 `yaml:"elitism"`
	// MutationRate is the probability a freshly bred child is mutated.
	MutationRate float64 `yaml:"mutation_rate"`
	// MutationKinds is the weighted sampling table for the Mutation Catalog.
	MutationKinds []MutationKindWeight `yaml:"mutation_kinds"`

	// NodeCost and ConnectionCost are penalties subtracted from raw fitness before ranking.
	NodeCost       float64 `yaml:"node_cost"`
	ConnectionCost float64 `yaml:"connection_cost"`

	// CompatibilityThreshold is the maximal compatibility distance for two genomes to be
	// considered the same species.
	CompatibilityThreshold float64 `yaml:"compatibility_threshold"`
	// DistConnectionDisjointCoeff weighs unmatched (disjoint/excess) connection innovations.
	DistConnectionDisjointCoeff float64 `yaml:"dist_connection_disjoint_coeff"`
	// DistConnectionWeightCoeff weighs the summed absolute weight difference of matching
	// connections.
	DistConnectionWeightCoeff float64 `yaml:"dist_connection_weight_coeff"`
	// DistConnectionDisabledCoeff weighs matching connection pairs with differing disabled flags.
	DistConnectionDisabledCoeff float64 `yaml:"dist_connection_disabled_coeff"`
	// DistNodeBiasCoeff weighs aligned node bias differences.
	DistNodeBiasCoeff float64 `yaml:"dist_node_bias_coeff"`
	// DistNodeActivationCoeff weighs aligned node activation-tag mismatches.
	DistNodeActivationCoeff float64 `yaml:"dist_node_activation_coeff"`
	// DistNodeAggregationCoeff weighs aligned node aggregation-tag mismatches.
	DistNodeAggregationCoeff float64 `yaml:"dist_node_aggregation_coeff"`

	// InitialWeightMean/StdDev parametrize the distribution new connection weights are drawn
	// from (InitialBiasMean/StdDev likewise for biases), and WeightPerturbStdDev/BiasPerturbStdDev
	// the Gaussian perturbation sigmas used by the weight and bias perturbation mutations.
	InitialWeightMean    float64 `yaml:"initial_weight_mean"`
	InitialWeightStdDev  float64 `yaml:"initial_weight_std_dev"`
	InitialBiasMean      float64 `yaml:"initial_bias_mean"`
	InitialBiasStdDev    float64 `yaml:"initial_bias_std_dev"`
	WeightPerturbStdDev  float64 `yaml:"weight_perturb_std_dev"`
	BiasPerturbStdDev    float64 `yaml:"bias_perturb_std_dev"`

	// ReportEvery sets the hook invocation cadence in generations.
	ReportEvery int `yaml:"report_every"`

	// DefaultActivation and DefaultAggregation seed every freshly created node (inputs excepted,
	// which are always Identity/Sum since they have no incoming connections to aggregate).
	DefaultActivation   neatmath.ActivationType  `yaml:"-"`
	DefaultAggregation  neatmath.AggregationType `yaml:"-"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultOptions returns an Options value with the coefficients and probabilities used
// throughout this module's tests and examples - a reasonable starting point for small topologies
// such as the XOR scenario.
func DefaultOptions() *Options {
	return &Options{
		PopSize:        150,
		MaxGenerations: 100,

		SurvivalRatio: 0.2,
		Elitism:       0.05,
		MutationRate:  0.25,
		MutationKinds: []MutationKindWeight{
			{Kind: "add_connection", Weight: 1.0},
			{Kind: "add_node", Weight: 0.3},
			{Kind: "weight_perturb", Weight: 4.0},
			{Kind: "weight_replace", Weight: 0.5},
			{Kind: "bias_perturb", Weight: 2.0},
			{Kind: "bias_replace", Weight: 0.3},
			{Kind: "toggle_connection", Weight: 0.2},
			{Kind: "change_activation", Weight: 0.2},
			{Kind: "change_aggregation", Weight: 0.1},
		},

		NodeCost:       0.0,
		ConnectionCost: 0.0,

		CompatibilityThreshold:      3.0,
		DistConnectionDisjointCoeff: 1.0,
		DistConnectionWeightCoeff:   0.5,
		DistConnectionDisabledCoeff: 0.2,
		DistNodeBiasCoeff:           0.5,
		DistNodeActivationCoeff:     1.0,
		DistNodeAggregationCoeff:    1.0,

		InitialWeightMean:   0.0,
		InitialWeightStdDev: 1.0,
		InitialBiasMean:     0.0,
		InitialBiasStdDev:   1.0,
		WeightPerturbStdDev: 0.5,
		BiasPerturbStdDev:   0.5,

		ReportEvery: 1,

		DefaultActivation:  neatmath.SigmoidActivation,
		DefaultAggregation: neatmath.SumAggregation,

		LogLevel: "info",
	}
}

// Validate checks that the options describe a runnable population, returning an error naming the
// first offending field.
func (o *Options) Validate() error {
	if o.PopSize <= 0 {
		return errors.New("pop_size must be positive")
	}
	if o.MaxGenerations <= 0 {
		return errors.New("max_generations must be positive")
	}
	if o.SurvivalRatio <= 0 || o.SurvivalRatio > 1 {
		return errors.New("survival_ratio must be in (0, 1]")
	}
	if o.Elitism < 0 || o.Elitism > 1 {
		return errors.New("elitism must be in [0, 1]")
	}
	if o.Elitism > o.SurvivalRatio {
		return errors.New("elitism cannot exceed survival_ratio")
	}
	if o.MutationRate < 0 || o.MutationRate > 1 {
		return errors.New("mutation_rate must be in [0, 1]")
	}
	if len(o.MutationKinds) == 0 {
		return errors.New("mutation_kinds must not be empty")
	}
	if o.NodeCost < 0 || o.ConnectionCost < 0 {
		return errors.New("node_cost and connection_cost must be non-negative")
	}
	if o.CompatibilityThreshold < 0 {
		return errors.New("compatibility_threshold must be non-negative")
	}
	if o.ReportEvery <= 0 {
		o.ReportEvery = 1
	}
	if survived := int(float64(o.PopSize) * o.SurvivalRatio); survived == 0 {
		return errors.Wrap(ErrEmptySurvivorPool, "configured survival_ratio leaves no survivors for this pop_size")
	}
	return nil
}
