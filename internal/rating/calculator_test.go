package rating

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbecker/insurate/internal/apperr"
	"github.com/tbecker/insurate/internal/domain"
)

// testPlan mirrors the documented worked example: $1000 annual base with all
// multipliers at 1.0 for a 30-year-old male in good health and low-risk work.
func testPlan() domain.Plan {
	return domain.Plan{
		ID:             "tl-100k-10y",
		ProductID:      "term-life",
		Code:           "TL-100-10",
		Name:           "Term Life 100K / 10y",
		CoverageAmount: decimal.NewFromInt(100000),
		TermYears:      10,
		MinAge:         18,
		MaxAge:         65,
		BasePremiums: domain.BasePremiums{
			Monthly:    decimal.NewFromInt(1044),
			Quarterly:  decimal.NewFromInt(1032),
			SemiAnnual: decimal.NewFromInt(1020),
			Annual:     decimal.NewFromInt(1000),
			LumpSum:    decimal.NewFromInt(9200),
		},
		AgeBands: []domain.AgeBand{
			{MinAge: 18, MaxAge: 25, Multiplier: decimal.NewFromFloat(0.9)},
			{MinAge: 26, MaxAge: 35, Multiplier: decimal.NewFromFloat(1.0)},
			{MinAge: 36, MaxAge: 45, Multiplier: decimal.NewFromFloat(1.25)},
			{MinAge: 46, MaxAge: 55, Multiplier: decimal.NewFromFloat(1.6)},
			{MinAge: 56, MaxAge: 65, Multiplier: decimal.NewFromFloat(2.1)},
		},
		GenderMultipliers: domain.GenderMultipliers{
			Male:   decimal.NewFromFloat(1.0),
			Female: decimal.NewFromFloat(0.92),
		},
		HealthMultipliers: domain.HealthMultipliers{
			Excellent: decimal.NewFromFloat(0.9),
			Good:      decimal.NewFromFloat(1.0),
			Fair:      decimal.NewFromFloat(1.25),
			Poor:      decimal.NewFromFloat(1.6),
		},
		OccupationMultipliers: domain.OccupationMultipliers{
			Low:    decimal.NewFromFloat(1.0),
			Medium: decimal.NewFromFloat(1.15),
			High:   decimal.NewFromFloat(1.45),
		},
		Fees: domain.Fees{
			Processing:     decimal.NewFromInt(25),
			Issuance:       decimal.NewFromInt(15),
			MedicalCheckup: decimal.NewFromInt(60),
			Admin:          decimal.NewFromInt(10),
		},
		IsActive: true,
	}
}

func baselineProfile() domain.RatingProfile {
	return domain.RatingProfile{
		Age:            30,
		Gender:         domain.GenderMale,
		HealthStatus:   domain.HealthGood,
		OccupationRisk: domain.OccupationLow,
	}
}

func TestCalculateWorkedExample(t *testing.T) {
	calc := NewCalculator()
	plan := testPlan()

	premium, breakdown, err := calc.Calculate(NewTable(&plan), baselineProfile())
	require.NoError(t, err)

	assert.Equal(t, "1000.00", premium.StringFixed(2), "All-1.0 factors should leave the base unchanged")
	assert.Equal(t, "1.0000", breakdown.AgeMultiplier.StringFixed(4))
	assert.Equal(t, "1.0000", breakdown.GenderMultiplier.StringFixed(4))
	assert.Equal(t, "1.0000", breakdown.HealthMultiplier.StringFixed(4))
	assert.Equal(t, "1.0000", breakdown.OccupationMultiplier.StringFixed(4))
}

func TestCalculateAppliesAllFactors(t *testing.T) {
	calc := NewCalculator()
	plan := testPlan()

	profile := domain.RatingProfile{
		Age:            40, // band multiplier 1.25
		Gender:         domain.GenderFemale,
		HealthStatus:   domain.HealthFair,
		OccupationRisk: domain.OccupationHigh,
	}

	premium, breakdown, err := calc.Calculate(NewTable(&plan), profile)
	require.NoError(t, err)

	// 1000 x 1.25 x 0.92 x 1.25 x 1.45
	assert.Equal(t, "2084.38", premium.StringFixed(2))
	assert.Equal(t, "1.25", breakdown.AgeMultiplier.String())
	assert.Equal(t, "0.92", breakdown.GenderMultiplier.String())
	assert.Equal(t, "1.25", breakdown.HealthMultiplier.String())
	assert.Equal(t, "1.45", breakdown.OccupationMultiplier.String())
}

func TestCalculateDefaultsAbsentFields(t *testing.T) {
	calc := NewCalculator()
	plan := testPlan()

	explicit, _, err := calc.Calculate(NewTable(&plan), baselineProfile())
	require.NoError(t, err)

	defaulted, _, err := calc.Calculate(NewTable(&plan), domain.RatingProfile{Age: 30, Gender: domain.GenderMale})
	require.NoError(t, err)

	assert.True(t, explicit.Equal(defaulted),
		"A profile with absent optional fields should price like one with the documented defaults")
}

func TestCalculateIsDeterministic(t *testing.T) {
	calc := NewCalculator()
	plan := testPlan()
	profile := domain.RatingProfile{
		Age:            52,
		Gender:         domain.GenderFemale,
		HealthStatus:   domain.HealthFair,
		OccupationRisk: domain.OccupationMedium,
	}

	first, _, err := calc.Calculate(NewTable(&plan), profile)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		premium, _, err := calc.Calculate(NewTable(&plan), profile)
		require.NoError(t, err)
		assert.True(t, first.Equal(premium), "Repeated calls must return identical premiums")
	}
}

func TestCalculateOccupationMonotonicity(t *testing.T) {
	calc := NewCalculator()
	plan := testPlan()

	profile := baselineProfile()
	previous := decimal.Zero
	for _, risk := range []domain.OccupationRisk{domain.OccupationLow, domain.OccupationMedium, domain.OccupationHigh} {
		profile.OccupationRisk = risk
		premium, _, err := calc.Calculate(NewTable(&plan), profile)
		require.NoError(t, err)
		assert.True(t, premium.GreaterThanOrEqual(previous),
			"Premium must not decrease as occupation risk rises (got %s after %s)", premium, previous)
		previous = premium
	}
}

func TestCalculateAgeBoundaries(t *testing.T) {
	calc := NewCalculator()
	plan := testPlan()
	plan.MinAge = 25
	plan.MaxAge = 55

	profile := baselineProfile()

	for _, age := range []int{25, 55} {
		profile.Age = age
		_, _, err := calc.Calculate(NewTable(&plan), profile)
		assert.NoError(t, err, "Age %d is inside the inclusive bounds", age)
	}

	for _, age := range []int{24, 56} {
		profile.Age = age
		_, _, err := calc.Calculate(NewTable(&plan), profile)
		require.Error(t, err, "Age %d is outside the bounds", age)

		appErr, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, apperr.KeyAgeOutOfRange, appErr.Key)
		assert.Equal(t, 25, appErr.Extras["min_age"], "Error should carry the allowed range")
		assert.Equal(t, 55, appErr.Extras["max_age"])
	}
}

func TestCalculateCustomScalesBase(t *testing.T) {
	calc := NewCalculator()
	plan := testPlan()

	// Twice the matched plan's coverage doubles the base before factors apply.
	premium, _, matched, err := calc.CalculateCustom(
		[]domain.Plan{plan}, baselineProfile(), decimal.NewFromInt(200000), 10)
	require.NoError(t, err)
	require.Equal(t, "tl-100k-10y", matched.ID)
	assert.Equal(t, "2000.00", premium.StringFixed(2))
}

func TestCalculateCustomDegenerateInputs(t *testing.T) {
	calc := NewCalculator()
	plan := testPlan()
	plans := []domain.Plan{plan}

	_, _, _, err := calc.CalculateCustom(plans, baselineProfile(), decimal.Zero, 10)
	require.Error(t, err)
	assert.True(t, apperr.IsCategory(err, apperr.CategoryComputation), "Zero coverage should be a computation error")

	_, _, _, err = calc.CalculateCustom(plans, baselineProfile(), decimal.NewFromInt(100000), 0)
	require.Error(t, err)
	assert.True(t, apperr.IsCategory(err, apperr.CategoryComputation), "Zero term should be a computation error")

	_, _, _, err = calc.CalculateCustom(plans, baselineProfile(), decimal.NewFromInt(-5), 10)
	assert.Error(t, err, "Negative coverage should be rejected")
}

func TestCalculateCustomEmptyPlanSet(t *testing.T) {
	calc := NewCalculator()

	_, _, _, err := calc.CalculateCustom(nil, baselineProfile(), decimal.NewFromInt(100000), 10)
	require.Error(t, err)
	assert.True(t, apperr.IsCategory(err, apperr.CategoryNoPlans))
}
