package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RatedAgeFloor and RatedAgeCeiling bound the age range the multiplier bands
// must cover without gaps or overlaps.
const (
	RatedAgeFloor   = 18
	RatedAgeCeiling = 65
)

// AgeBand is one age interval with its rating multiplier
type AgeBand struct {
	MinAge     int             `yaml:"min_age" json:"minAge"`
	MaxAge     int             `yaml:"max_age" json:"maxAge"`
	Multiplier decimal.Decimal `yaml:"multiplier" json:"multiplier"`
}

// Contains reports whether age falls inside the band (inclusive)
func (b AgeBand) Contains(age int) bool {
	return age >= b.MinAge && age <= b.MaxAge
}

// BasePremiums holds one independently configured annualized base value per
// supported cadence. These are not derived from each other: real products may
// round or adjust each cadence's base separately.
type BasePremiums struct {
	Monthly    decimal.Decimal `yaml:"monthly" json:"monthly"`
	Quarterly  decimal.Decimal `yaml:"quarterly" json:"quarterly"`
	SemiAnnual decimal.Decimal `yaml:"semi_annual" json:"semiAnnual"`
	Annual     decimal.Decimal `yaml:"annual" json:"annual"`
	LumpSum    decimal.Decimal `yaml:"lump_sum" json:"lumpSum"`
}

// ForFrequency returns the configured base for the given cadence
func (bp BasePremiums) ForFrequency(freq PaymentFrequency) (decimal.Decimal, error) {
	switch freq {
	case FrequencyMonthly:
		return bp.Monthly, nil
	case FrequencyQuarterly:
		return bp.Quarterly, nil
	case FrequencySemiAnnual:
		return bp.SemiAnnual, nil
	case FrequencyAnnual:
		return bp.Annual, nil
	case FrequencyLumpSum:
		return bp.LumpSum, nil
	}
	return decimal.Zero, fmt.Errorf("no base premium configured for frequency %q", freq)
}

// GenderMultipliers holds the per-gender rating factors
type GenderMultipliers struct {
	Male   decimal.Decimal `yaml:"male" json:"male"`
	Female decimal.Decimal `yaml:"female" json:"female"`
}

// HealthMultipliers holds the per-health-status rating factors
type HealthMultipliers struct {
	Excellent decimal.Decimal `yaml:"excellent" json:"excellent"`
	Good      decimal.Decimal `yaml:"good" json:"good"`
	Fair      decimal.Decimal `yaml:"fair" json:"fair"`
	Poor      decimal.Decimal `yaml:"poor" json:"poor"`
}

// OccupationMultipliers holds the per-occupation-risk rating factors
type OccupationMultipliers struct {
	Low    decimal.Decimal `yaml:"low" json:"low"`
	Medium decimal.Decimal `yaml:"medium" json:"medium"`
	High   decimal.Decimal `yaml:"high" json:"high"`
}

// Fees are the one-time charges applied at policy issuance. They are not
// recurring and do not vary with payment cadence.
type Fees struct {
	Processing     decimal.Decimal `yaml:"processing" json:"processing"`
	Issuance       decimal.Decimal `yaml:"issuance" json:"issuance"`
	MedicalCheckup decimal.Decimal `yaml:"medical_checkup" json:"medicalCheckup"`
	Admin          decimal.Decimal `yaml:"admin" json:"admin"`
}

// Total sums all one-time fees
func (f Fees) Total() decimal.Decimal {
	return f.Processing.Add(f.Issuance).Add(f.MedicalCheckup).Add(f.Admin)
}

// Plan is one offered configuration of an insurance product
type Plan struct {
	ID        string `yaml:"id" json:"id"`
	ProductID string `yaml:"product_id" json:"productId"`
	Code      string `yaml:"code" json:"code"`
	Name      string `yaml:"name" json:"name"`

	CoverageAmount decimal.Decimal `yaml:"coverage_amount" json:"coverageAmount"`
	TermYears      int             `yaml:"term_years" json:"termYears"`
	MinAge         int             `yaml:"min_age" json:"minAge"`
	MaxAge         int             `yaml:"max_age" json:"maxAge"`

	BasePremiums          BasePremiums          `yaml:"base_premiums" json:"basePremiums"`
	AgeBands              []AgeBand             `yaml:"age_bands" json:"ageBands"`
	GenderMultipliers     GenderMultipliers     `yaml:"gender_multipliers" json:"genderMultipliers"`
	HealthMultipliers     HealthMultipliers     `yaml:"health_multipliers" json:"healthMultipliers"`
	OccupationMultipliers OccupationMultipliers `yaml:"occupation_multipliers" json:"occupationMultipliers"`

	// Supplementary benefit amounts (accidental death, disability, critical
	// illness, ...) carried through to quotes but not part of the formula.
	Benefits map[string]decimal.Decimal `yaml:"benefits,omitempty" json:"benefits,omitempty"`

	Fees Fees `yaml:"fees" json:"fees"`

	RequiresMedicalExam bool `yaml:"requires_medical_exam" json:"requiresMedicalExam"`
	IsFeatured          bool `yaml:"is_featured" json:"isFeatured"`
	IsPopular           bool `yaml:"is_popular" json:"isPopular"`
	IsActive            bool `yaml:"is_active" json:"isActive"`
}

// Validate checks the plan's pricing configuration invariants
func (p *Plan) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("plan id is required")
	}
	if p.CoverageAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("coverage amount must be positive, got %s", p.CoverageAmount)
	}
	if p.TermYears <= 0 {
		return fmt.Errorf("term years must be positive, got %d", p.TermYears)
	}
	if p.MinAge > p.MaxAge {
		return fmt.Errorf("min age %d cannot exceed max age %d", p.MinAge, p.MaxAge)
	}

	if err := p.validateAgeBands(); err != nil {
		return err
	}

	for _, bp := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"monthly", p.BasePremiums.Monthly},
		{"quarterly", p.BasePremiums.Quarterly},
		{"semi_annual", p.BasePremiums.SemiAnnual},
		{"annual", p.BasePremiums.Annual},
		{"lump_sum", p.BasePremiums.LumpSum},
	} {
		if bp.value.IsNegative() {
			return fmt.Errorf("%s base premium cannot be negative", bp.name)
		}
	}

	for _, m := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"male", p.GenderMultipliers.Male},
		{"female", p.GenderMultipliers.Female},
		{"health excellent", p.HealthMultipliers.Excellent},
		{"health good", p.HealthMultipliers.Good},
		{"health fair", p.HealthMultipliers.Fair},
		{"health poor", p.HealthMultipliers.Poor},
		{"occupation low", p.OccupationMultipliers.Low},
		{"occupation medium", p.OccupationMultipliers.Medium},
		{"occupation high", p.OccupationMultipliers.High},
	} {
		if m.value.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%s multiplier must be positive", m.name)
		}
	}

	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"processing", p.Fees.Processing},
		{"issuance", p.Fees.Issuance},
		{"medical_checkup", p.Fees.MedicalCheckup},
		{"admin", p.Fees.Admin},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%s fee cannot be negative", f.name)
		}
	}

	return nil
}

// validateAgeBands enforces that the bands partition [RatedAgeFloor, RatedAgeCeiling]
// in ascending order with no gaps or overlaps
func (p *Plan) validateAgeBands() error {
	if len(p.AgeBands) == 0 {
		return fmt.Errorf("at least one age band is required")
	}

	if first := p.AgeBands[0].MinAge; first != RatedAgeFloor {
		return fmt.Errorf("first age band must start at %d, got %d", RatedAgeFloor, first)
	}

	for i, band := range p.AgeBands {
		if band.MinAge > band.MaxAge {
			return fmt.Errorf("age band %d: min age %d exceeds max age %d", i, band.MinAge, band.MaxAge)
		}
		if band.Multiplier.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("age band %d: multiplier must be positive", i)
		}
		if i > 0 {
			prev := p.AgeBands[i-1]
			if band.MinAge != prev.MaxAge+1 {
				return fmt.Errorf("age band %d: starts at %d but previous band ends at %d (bands must partition [%d,%d])",
					i, band.MinAge, prev.MaxAge, RatedAgeFloor, RatedAgeCeiling)
			}
		}
	}

	if last := p.AgeBands[len(p.AgeBands)-1].MaxAge; last != RatedAgeCeiling {
		return fmt.Errorf("last age band must end at %d, got %d", RatedAgeCeiling, last)
	}

	return nil
}
