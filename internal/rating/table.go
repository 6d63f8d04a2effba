package rating

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tbecker/insurate/internal/domain"
)

// Table is a read-only pricing view over a single plan's rating configuration.
// It exposes the base premium and the four factor lookups; it never mutates
// the plan.
type Table struct {
	plan *domain.Plan
}

// NewTable wraps a plan in a rating table
func NewTable(plan *domain.Plan) Table {
	return Table{plan: plan}
}

// Plan returns the underlying plan
func (t Table) Plan() *domain.Plan {
	return t.plan
}

// MinAge returns the plan's lower applicant age bound
func (t Table) MinAge() int {
	return t.plan.MinAge
}

// MaxAge returns the plan's upper applicant age bound
func (t Table) MaxAge() int {
	return t.plan.MaxAge
}

// BaseAnnualPremium returns the plan's annualized base for the annual cadence,
// the baseline every calculation starts from
func (t Table) BaseAnnualPremium() decimal.Decimal {
	return t.plan.BasePremiums.Annual
}

// BasePremium returns the independently configured base for a cadence
func (t Table) BasePremium(freq domain.PaymentFrequency) (decimal.Decimal, error) {
	return t.plan.BasePremiums.ForFrequency(freq)
}

// AgeFactor returns the multiplier for the band containing age. Callers should
// validate the plan's [MinAge, MaxAge] bounds first; an age outside the band
// partition is an error, never a silent clamp.
func (t Table) AgeFactor(age int) (decimal.Decimal, error) {
	for _, band := range t.plan.AgeBands {
		if band.Contains(age) {
			return band.Multiplier, nil
		}
	}
	return decimal.Zero, fmt.Errorf("no age band covers age %d (bands span [%d,%d])",
		age, domain.RatedAgeFloor, domain.RatedAgeCeiling)
}

// GenderFactor returns the multiplier for the given gender
func (t Table) GenderFactor(gender domain.Gender) (decimal.Decimal, error) {
	switch gender {
	case domain.GenderMale:
		return t.plan.GenderMultipliers.Male, nil
	case domain.GenderFemale:
		return t.plan.GenderMultipliers.Female, nil
	}
	return decimal.Zero, fmt.Errorf("unknown gender %q", gender)
}

// HealthFactor returns the multiplier for the given health status
func (t Table) HealthFactor(status domain.HealthStatus) (decimal.Decimal, error) {
	switch status {
	case domain.HealthExcellent:
		return t.plan.HealthMultipliers.Excellent, nil
	case domain.HealthGood:
		return t.plan.HealthMultipliers.Good, nil
	case domain.HealthFair:
		return t.plan.HealthMultipliers.Fair, nil
	case domain.HealthPoor:
		return t.plan.HealthMultipliers.Poor, nil
	}
	return decimal.Zero, fmt.Errorf("unknown health status %q", status)
}

// OccupationFactor returns the multiplier for the given occupation risk
func (t Table) OccupationFactor(risk domain.OccupationRisk) (decimal.Decimal, error) {
	switch risk {
	case domain.OccupationLow:
		return t.plan.OccupationMultipliers.Low, nil
	case domain.OccupationMedium:
		return t.plan.OccupationMultipliers.Medium, nil
	case domain.OccupationHigh:
		return t.plan.OccupationMultipliers.High, nil
	}
	return decimal.Zero, fmt.Errorf("unknown occupation risk %q", risk)
}
