package neat

import "github.com/pkg/errors"

// Sentinel errors for the failure kinds the engine distinguishes between fatal
// (propagated to the caller) and local (absorbed at the call site, treated as a no-op).
var (
	// ErrIncompatibleParents is returned by Crossover when the two parent genomes do not
	// share the same input/output counts. Fatal.
	ErrIncompatibleParents = errors.New("neat: cannot cross genomes with different inputs or outputs")

	// ErrUntestedGenome is returned when adjusted fitness is requested for a genome that has
	// not yet had its raw fitness recorded. Fatal - indicates a driver bug.
	ErrUntestedGenome = errors.New("neat: fitness of genome not marked")

	// ErrCycleIntroduced is returned by a mutation or crossover candidate that would violate
	// the acyclicity invariant. Local - the caller drops the candidate.
	ErrCycleIntroduced = errors.New("neat: candidate change would introduce a cycle")

	// ErrNoValidMutationTarget is returned by a mutation operator that found nothing to act
	// on. Local - the operator becomes a no-op for this genome.
	ErrNoValidMutationTarget = errors.New("neat: no valid mutation target")

	// ErrEmptySurvivorPool is returned by the driver when survival_ratio or population_size
	// leave no genomes to reproduce from. Fatal.
	ErrEmptySurvivorPool = errors.New("neat: survivor pool is empty")
)
