package matching

import (
	"slices"

	"rfqengine/cmd/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Candidate is a supplier offering a price for one material.
type Candidate struct {
	Supplier *entity.Supplier
	Price    decimal.Decimal
}

// ScoredCandidate is a ranked candidate with its distance to the client.
type ScoredCandidate struct {
	Candidate
	Distance int
}

// Rank orders candidates by proximity to the client and then by price.
// Exact ties keep their input order. The input slice is left untouched.
func Rank(candidates []Candidate, client entity.District) []ScoredCandidate {
	ranked := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		ranked[i] = ScoredCandidate{Candidate: c, Distance: distanceOf(c, client)}
	}

	slices.SortStableFunc(ranked, func(a, b ScoredCandidate) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return a.Price.Cmp(b.Price)
	})
	return ranked
}

// Best returns the top ranked candidate, false when there is none.
func Best(candidates []Candidate, client entity.District) (ScoredCandidate, bool) {
	if len(candidates) == 0 {
		return ScoredCandidate{}, false
	}
	return Rank(candidates, client)[0], true
}

func distanceOf(c Candidate, client entity.District) int {
	if c.Supplier == nil {
		return UnknownLocationPenalty
	}
	return Proximity(client, c.Supplier.District)
}
