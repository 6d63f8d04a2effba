package domain

import (
	"github.com/shopspring/decimal"
)

// FactorBreakdown names each multiplier applied to a base premium so any quoted
// number can be reconstructed from its factors. This traceability is a hard
// requirement for audit and support, not cosmetic output.
type FactorBreakdown struct {
	AgeMultiplier        decimal.Decimal `yaml:"age_multiplier" json:"ageMultiplier"`
	GenderMultiplier     decimal.Decimal `yaml:"gender_multiplier" json:"genderMultiplier"`
	HealthMultiplier     decimal.Decimal `yaml:"health_multiplier" json:"healthMultiplier"`
	OccupationMultiplier decimal.Decimal `yaml:"occupation_multiplier" json:"occupationMultiplier"`
}

// Product returns the combined multiplier
func (f FactorBreakdown) Product() decimal.Decimal {
	return f.AgeMultiplier.
		Mul(f.GenderMultiplier).
		Mul(f.HealthMultiplier).
		Mul(f.OccupationMultiplier)
}

// QuoteResult is the output of one single-cadence premium calculation
type QuoteResult struct {
	PlanID    string `json:"planId"`
	PlanCode  string `json:"planCode"`
	PlanName  string `json:"planName"`
	ProductID string `json:"productId"`

	Frequency         PaymentFrequency `json:"paymentFrequency"`
	AnnualPremium     decimal.Decimal  `json:"annualPremium"`
	CalculatedPremium decimal.Decimal  `json:"calculatedPremium"`
	NumberOfPayments  int              `json:"numberOfPayments"`

	Factors  FactorBreakdown            `json:"appliedFactors"`
	Benefits map[string]decimal.Decimal `json:"benefits,omitempty"`
}

// FrequencyQuote is one per-cadence entry in a quote comparison
type FrequencyQuote struct {
	Frequency        PaymentFrequency `json:"paymentFrequency"`
	TotalPremium     decimal.Decimal  `json:"totalPremium"`
	PaymentPerPeriod decimal.Decimal  `json:"paymentPerPeriod"`
	NumberOfPayments int              `json:"numberOfPayments"`
	OneTimeFees      decimal.Decimal  `json:"oneTimeFees"`

	// GrandTotal is the first-cycle payment plus the one-time fees due at
	// policy issuance.
	GrandTotal decimal.Decimal `json:"grandTotal"`

	SavingsVsMonthly    decimal.Decimal `json:"savingsVsMonthly"`
	SavingsPctVsMonthly decimal.Decimal `json:"savingsPercentageVsMonthly"`
	IsRecommended       bool            `json:"isRecommended"`
}

// QuoteComparison is the full five-cadence comparison for one plan and profile
type QuoteComparison struct {
	PlanID    string `json:"planId"`
	PlanCode  string `json:"planCode"`
	PlanName  string `json:"planName"`
	ProductID string `json:"productId"`

	AnnualPremium decimal.Decimal `json:"annualPremium"`
	Factors       FactorBreakdown `json:"appliedFactors"`

	Options      []FrequencyQuote           `json:"options"`
	FeeBreakdown Fees                       `json:"feeBreakdown"`
	Benefits     map[string]decimal.Decimal `json:"benefits,omitempty"`
}

// Recommended returns the option flagged as recommended, or nil
func (qc *QuoteComparison) Recommended() *FrequencyQuote {
	for i := range qc.Options {
		if qc.Options[i].IsRecommended {
			return &qc.Options[i]
		}
	}
	return nil
}

// Option returns the entry for the given cadence, or nil
func (qc *QuoteComparison) Option(freq PaymentFrequency) *FrequencyQuote {
	for i := range qc.Options {
		if qc.Options[i].Frequency == freq {
			return &qc.Options[i]
		}
	}
	return nil
}
