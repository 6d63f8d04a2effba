package rating

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tbecker/insurate/internal/apperr"
	"github.com/tbecker/insurate/internal/domain"
	"github.com/tbecker/insurate/internal/match"
)

// Calculator combines a rating table, an applicant profile and an optional
// coverage/term override into an annualized premium plus the breakdown of the
// factors applied. It is a pure function over its inputs: identical inputs
// always produce identical results, and calculations may run concurrently
// without coordination.
type Calculator struct {
	Matcher *match.Matcher
	Logger  Logger
}

// NewCalculator creates a premium calculator with the default plan matcher
func NewCalculator() *Calculator {
	return &Calculator{
		Matcher: match.NewMatcher(),
		Logger:  NopLogger{},
	}
}

// SetLogger replaces the calculator's logger; nil restores the no-op logger
func (c *Calculator) SetLogger(l Logger) {
	if l == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = l
}

// Calculate returns the annualized premium for the profile against the table:
// baseAnnualPremium x age x gender x health x occupation. The applicant age
// must fall within the plan's [MinAge, MaxAge] bounds.
func (c *Calculator) Calculate(table Table, profile domain.RatingProfile) (decimal.Decimal, domain.FactorBreakdown, error) {
	return c.calculate(table, profile, table.BaseAnnualPremium())
}

// CalculateCustom prices a coverage/term request that matches no predefined
// plan. The nearest plan supplies the risk-adjusted base rate, scaled linearly
// by requestedCoverage / matchedPlan.coverage before the four factors apply.
// Returns the matched plan alongside the premium so callers can disclose the
// pricing basis.
func (c *Calculator) CalculateCustom(
	plans []domain.Plan,
	profile domain.RatingProfile,
	coverage decimal.Decimal,
	termYears int,
) (decimal.Decimal, domain.FactorBreakdown, *domain.Plan, error) {

	var breakdown domain.FactorBreakdown

	if coverage.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, breakdown, nil,
			apperr.NewComputation(fmt.Sprintf("requested coverage must be positive, got %s", coverage))
	}
	if termYears <= 0 {
		return decimal.Zero, breakdown, nil,
			apperr.NewComputation(fmt.Sprintf("requested term must be positive, got %d years", termYears))
	}

	matched, err := c.Matcher.FindClosest(plans, coverage, termYears)
	if err != nil {
		return decimal.Zero, breakdown, nil, err
	}

	c.Logger.Debugf("custom request %s/%dy matched plan %s (%s/%dy)",
		coverage, termYears, matched.ID, matched.CoverageAmount, matched.TermYears)

	// Validate guarantees positive coverage, but a raw plan may not have been
	// validated yet.
	if matched.CoverageAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, breakdown, nil,
			apperr.NewComputation(fmt.Sprintf("matched plan %s has non-positive coverage", matched.ID))
	}

	scale := coverage.Div(matched.CoverageAmount)
	base := NewTable(matched).BaseAnnualPremium().Mul(scale)

	premium, breakdown, err := c.calculate(NewTable(matched), profile, base)
	if err != nil {
		return decimal.Zero, breakdown, nil, err
	}
	return premium, breakdown, matched, nil
}

func (c *Calculator) calculate(table Table, profile domain.RatingProfile, base decimal.Decimal) (decimal.Decimal, domain.FactorBreakdown, error) {
	profile = profile.Normalized()

	var breakdown domain.FactorBreakdown

	if profile.Age < table.MinAge() || profile.Age > table.MaxAge() {
		return decimal.Zero, breakdown, apperr.NewAgeOutOfRange(profile.Age, table.MinAge(), table.MaxAge())
	}

	ageFactor, err := table.AgeFactor(profile.Age)
	if err != nil {
		return decimal.Zero, breakdown, apperr.NewValidation(apperr.KeyAgeOutOfRange, err.Error())
	}
	genderFactor, err := table.GenderFactor(profile.Gender)
	if err != nil {
		return decimal.Zero, breakdown, apperr.NewValidation(apperr.KeyInvalidProfile, err.Error())
	}
	healthFactor, err := table.HealthFactor(profile.HealthStatus)
	if err != nil {
		return decimal.Zero, breakdown, apperr.NewValidation(apperr.KeyInvalidProfile, err.Error())
	}
	occupationFactor, err := table.OccupationFactor(profile.OccupationRisk)
	if err != nil {
		return decimal.Zero, breakdown, apperr.NewValidation(apperr.KeyInvalidProfile, err.Error())
	}

	breakdown = domain.FactorBreakdown{
		AgeMultiplier:        ageFactor,
		GenderMultiplier:     genderFactor,
		HealthMultiplier:     healthFactor,
		OccupationMultiplier: occupationFactor,
	}

	premium := base.Mul(breakdown.Product()).Round(2)

	c.Logger.Debugf("premium %s = base %s x age %s x gender %s x health %s x occupation %s",
		premium, base, ageFactor, genderFactor, healthFactor, occupationFactor)

	return premium, breakdown, nil
}
