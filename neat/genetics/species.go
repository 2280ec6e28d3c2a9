package genetics

import (
	"github.com/corvidlabs/neat/neat"
)

// SpeciesID is a stable identity for a species, assigned once at first formation and carried
// forward across generations for as long as the species survives - unlike genome IDs, it never
// changes even as the species' representative genome is replaced.
type SpeciesID uint64

// Species is a cluster of genomes compatible with a shared representative, within
// opts.CompatibilityThreshold.
type Species struct {
	ID             SpeciesID
	Representative *Genome
	Members        []GenomeID
}

// SpeciesSet partitions a generation's genomes into species, carrying representatives forward
// across Speciate calls so a species' identity survives as long as a compatible descendant does.
type SpeciesSet struct {
	nextID  SpeciesID
	species []*Species
}

// NewSpeciesSet returns an empty SpeciesSet.
func NewSpeciesSet() *SpeciesSet {
	return &SpeciesSet{}
}

// Speciate assigns every genome in genomes to a species: each genome joins the first existing
// species (in id order, i.e. oldest first) whose representative it is compatible with; if none
// match, it founds a new species with itself as representative. Species with no surviving member
// from the previous round are dropped entirely - their id is retired, not reused.
//
// Must be called once per generation, with the full genome population; it replaces the prior
// Members lists. Compatibility is judged against each species' Representative as left by the
// previous call (a genome from last generation, so a fixed point, not a representative that itself
// just moved into the species); once every genome is placed, each surviving species'
// Representative is reset to its first member from this call.
func (s *SpeciesSet) Speciate(genomes []*Genome, opts *neat.Options) {
	for _, sp := range s.species {
		sp.Members = sp.Members[:0]
	}

	var surviving []*Species
	for _, g := range genomes {
		placed := false
		for _, sp := range s.species {
			if sp.Representative == nil {
				continue
			}
			if AreCompatible(g, sp.Representative, opts) {
				sp.Members = append(sp.Members, g.ID)
				placed = true
				break
			}
		}
		if !placed {
			s.nextID++
			s.species = append(s.species, &Species{
				ID:             s.nextID,
				Representative: g,
				Members:        []GenomeID{g.ID},
			})
		}
	}

	for _, sp := range s.species {
		if len(sp.Members) > 0 {
			surviving = append(surviving, sp)
		}
	}
	s.species = surviving

	for _, sp := range s.species {
		for _, g := range genomes {
			if g.ID == sp.Members[0] {
				sp.Representative = g
				break
			}
		}
	}
}

// All returns every current species, oldest first.
func (s *SpeciesSet) All() []*Species {
	return s.species
}

// SpeciesOf returns the species a genome id was placed into by the last Speciate call, or false
// if it was not part of that call.
func (s *SpeciesSet) SpeciesOf(id GenomeID) (*Species, bool) {
	for _, sp := range s.species {
		for _, m := range sp.Members {
			if m == id {
				return sp, true
			}
		}
	}
	return nil, false
}

// Size returns the number of distinct species.
func (s *SpeciesSet) Size() int {
	return len(s.species)
}
