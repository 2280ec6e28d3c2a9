package driver

import (
	"gonum.org/v1/gonum/stat"
)

// Snapshot reports population-level statistics at the end of one generation, handed to every
// registered Hook.
type Snapshot struct {
	Generation     int
	PopulationSize int
	SpeciesCount   int

	BestRawFitness  float64
	MeanRawFitness  float64
	StdDevFitness   float64
	BestGenomeNodes int
	BestGenomeConns int
}

// summarize computes a Snapshot's fitness statistics from a generation's raw fitness values using
// gonum/stat, rather than hand-rolled mean/variance accumulation.
func summarize(generation int, raw []float64, speciesCount, bestNodes, bestConns int) Snapshot {
	mean, stddev := 0.0, 0.0
	if len(raw) > 0 {
		mean = stat.Mean(raw, nil)
		stddev = stat.StdDev(raw, nil)
	}
	best := 0.0
	for i, f := range raw {
		if i == 0 || f > best {
			best = f
		}
	}
	return Snapshot{
		Generation:      generation,
		PopulationSize:  len(raw),
		SpeciesCount:    speciesCount,
		BestRawFitness:  best,
		MeanRawFitness:  mean,
		StdDevFitness:   stddev,
		BestGenomeNodes: bestNodes,
		BestGenomeConns: bestConns,
	}
}
