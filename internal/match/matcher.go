// Package match selects the predefined plan closest to an arbitrary requested
// coverage/term pair, for use as the pricing basis when no exact plan matches.
package match

import (
	"github.com/shopspring/decimal"

	"github.com/tbecker/insurate/internal/apperr"
	"github.com/tbecker/insurate/internal/domain"
)

// DefaultTermWeight is the distance weight on a one-year term difference,
// measured in coverage units. Coverage deviation is expected to dominate
// perceived risk difference, so term differences of a few years should rarely
// override a close coverage match. A tuning constant, kept overridable.
var DefaultTermWeight = decimal.NewFromInt(10000)

// Matcher finds the nearest plan by weighted coverage/term distance
type Matcher struct {
	TermWeight decimal.Decimal
}

// NewMatcher creates a matcher with the default term weight
func NewMatcher() *Matcher {
	return &Matcher{TermWeight: DefaultTermWeight}
}

// Distance computes |plan.coverage - targetCoverage| + |plan.term - targetTerm| x TermWeight
func (m *Matcher) Distance(plan *domain.Plan, targetCoverage decimal.Decimal, targetTerm int) decimal.Decimal {
	coverageDiff := plan.CoverageAmount.Sub(targetCoverage).Abs()
	termDiff := decimal.NewFromInt(int64(plan.TermYears - targetTerm)).Abs()
	return coverageDiff.Add(termDiff.Mul(m.TermWeight))
}

// FindClosest returns the candidate with minimum distance to the requested
// coverage/term pair. Ties are broken by first-encountered order. The result
// is always a member of the candidate set, never a synthesized plan.
func (m *Matcher) FindClosest(plans []domain.Plan, targetCoverage decimal.Decimal, targetTerm int) (*domain.Plan, error) {
	if len(plans) == 0 {
		return nil, apperr.NewNoPlansAvailable("")
	}

	best := 0
	bestDistance := m.Distance(&plans[0], targetCoverage, targetTerm)
	for i := 1; i < len(plans); i++ {
		if d := m.Distance(&plans[i], targetCoverage, targetTerm); d.LessThan(bestDistance) {
			best = i
			bestDistance = d
		}
	}

	return &plans[best], nil
}
