package rating

import (
	"github.com/shopspring/decimal"

	"github.com/tbecker/insurate/internal/apperr"
	"github.com/tbecker/insurate/internal/domain"
)

// Frequency adjustment rates are policy constants, not derived from risk data.
// They live here so every caller (instant estimate, authoritative calculation,
// comparison) agrees on the same numbers. Annual is the baseline.
var (
	adjustmentMonthly    = decimal.NewFromFloat(0.05)
	adjustmentQuarterly  = decimal.NewFromFloat(0.03)
	adjustmentSemiAnnual = decimal.NewFromFloat(0.02)
	adjustmentAnnual     = decimal.Zero
	adjustmentLumpSum    = decimal.NewFromFloat(-0.08)
)

// Converter maps an annualized premium into the amounts due for a chosen
// cadence. It is stateless; any number of conversions may run concurrently.
type Converter struct{}

// NewConverter creates a payment frequency converter
func NewConverter() *Converter {
	return &Converter{}
}

// Adjustment returns the surcharge (positive) or discount (negative) rate for
// a cadence
func (cv *Converter) Adjustment(freq domain.PaymentFrequency) (decimal.Decimal, error) {
	switch freq {
	case domain.FrequencyMonthly:
		return adjustmentMonthly, nil
	case domain.FrequencyQuarterly:
		return adjustmentQuarterly, nil
	case domain.FrequencySemiAnnual:
		return adjustmentSemiAnnual, nil
	case domain.FrequencyAnnual:
		return adjustmentAnnual, nil
	case domain.FrequencyLumpSum:
		return adjustmentLumpSum, nil
	}
	return decimal.Zero, apperr.NewValidation(apperr.KeyUnknownFrequency,
		"unsupported payment frequency \""+string(freq)+"\"")
}

// Payments returns the number of payments per year for a cadence. Lump sum is
// a single payment covering the full term.
func (cv *Converter) Payments(freq domain.PaymentFrequency) (int, error) {
	switch freq {
	case domain.FrequencyMonthly:
		return 12, nil
	case domain.FrequencyQuarterly:
		return 4, nil
	case domain.FrequencySemiAnnual:
		return 2, nil
	case domain.FrequencyAnnual, domain.FrequencyLumpSum:
		return 1, nil
	}
	return 0, apperr.NewValidation(apperr.KeyUnknownFrequency,
		"unsupported payment frequency \""+string(freq)+"\"")
}

// Total returns the adjusted premium for a full cycle of the cadence:
// annualPremium x (1 + adjustment). For lump sum this is the single payment
// covering the whole coverage term.
func (cv *Converter) Total(annualPremium decimal.Decimal, freq domain.PaymentFrequency) (decimal.Decimal, error) {
	adj, err := cv.Adjustment(freq)
	if err != nil {
		return decimal.Zero, err
	}
	return annualPremium.Mul(decimal.NewFromInt(1).Add(adj)).Round(2), nil
}

// PerPeriod returns the amount due each payment period: the adjusted total
// divided by the payments per year. Lump sum is never divided.
func (cv *Converter) PerPeriod(annualPremium decimal.Decimal, freq domain.PaymentFrequency) (decimal.Decimal, error) {
	total, err := cv.Total(annualPremium, freq)
	if err != nil {
		return decimal.Zero, err
	}
	if freq == domain.FrequencyLumpSum {
		return total, nil
	}
	payments, err := cv.Payments(freq)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Div(decimal.NewFromInt(int64(payments))).Round(2), nil
}
