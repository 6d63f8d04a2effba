// Package quote orchestrates the rating calculator, the payment frequency
// converter and the plan matcher into full quote responses: a single-cadence
// result or a side-by-side comparison across every supported cadence.
package quote

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tbecker/insurate/internal/apperr"
	"github.com/tbecker/insurate/internal/domain"
	"github.com/tbecker/insurate/internal/rating"
)

// DefaultBurdenWeight tunes the recommended-cadence score: percentage points
// deducted per multiple of the monthly per-period amount. Higher values favor
// smaller, more frequent payments over total savings.
var DefaultBurdenWeight = decimal.NewFromFloat(0.25)

// Engine produces quotes. Stateless and side-effect-free: every call is a pure
// orchestration over the calculator and converter, re-executed per request.
type Engine struct {
	Calc         *rating.Calculator
	Conv         *rating.Converter
	BurdenWeight decimal.Decimal
	Logger       rating.Logger
}

// NewEngine creates a quote engine with default components
func NewEngine() *Engine {
	return &Engine{
		Calc:         rating.NewCalculator(),
		Conv:         rating.NewConverter(),
		BurdenWeight: DefaultBurdenWeight,
		Logger:       rating.NopLogger{},
	}
}

// SetLogger replaces the engine's logger and the calculator's with it
func (e *Engine) SetLogger(l rating.Logger) {
	if l == nil {
		l = rating.NopLogger{}
	}
	e.Logger = l
	e.Calc.SetLogger(l)
}

// Quote prices a single plan for the profile's requested cadence
func (e *Engine) Quote(ctx context.Context, plan *domain.Plan, profile domain.RatingProfile) (*domain.QuoteResult, error) {
	if !plan.IsActive {
		return nil, apperr.NewNotFound(apperr.KeyPlanInactive, "plan "+plan.ID+" is not open for sale")
	}

	annual, factors, err := e.Calc.Calculate(rating.NewTable(plan), profile)
	if err != nil {
		return nil, err
	}

	freq := profile.Normalized().PaymentFrequency
	perPeriod, err := e.Conv.PerPeriod(annual, freq)
	if err != nil {
		return nil, err
	}
	payments, err := e.Conv.Payments(freq)
	if err != nil {
		return nil, err
	}

	return &domain.QuoteResult{
		PlanID:            plan.ID,
		PlanCode:          plan.Code,
		PlanName:          plan.Name,
		ProductID:         plan.ProductID,
		Frequency:         freq,
		AnnualPremium:     annual,
		CalculatedPremium: perPeriod,
		NumberOfPayments:  payments,
		Factors:           factors,
		Benefits:          plan.Benefits,
	}, nil
}

// QuoteCustom prices a custom coverage/term request for the profile's
// requested cadence, using the nearest predefined plan as the pricing basis
func (e *Engine) QuoteCustom(
	ctx context.Context,
	plans []domain.Plan,
	profile domain.RatingProfile,
	coverage decimal.Decimal,
	termYears int,
) (*domain.QuoteResult, error) {

	candidates := activeOnly(plans)
	annual, factors, matched, err := e.Calc.CalculateCustom(candidates, profile, coverage, termYears)
	if err != nil {
		return nil, err
	}

	freq := profile.Normalized().PaymentFrequency
	perPeriod, err := e.Conv.PerPeriod(annual, freq)
	if err != nil {
		return nil, err
	}
	payments, err := e.Conv.Payments(freq)
	if err != nil {
		return nil, err
	}

	return &domain.QuoteResult{
		PlanID:            matched.ID,
		PlanCode:          matched.Code,
		PlanName:          matched.Name,
		ProductID:         matched.ProductID,
		Frequency:         freq,
		AnnualPremium:     annual,
		CalculatedPremium: perPeriod,
		NumberOfPayments:  payments,
		Factors:           factors,
		Benefits:          matched.Benefits,
	}, nil
}

// Compare prices one plan across all five cadences with the same factors and
// the same annualized base, so the options are directly comparable
func (e *Engine) Compare(ctx context.Context, plan *domain.Plan, profile domain.RatingProfile) (*domain.QuoteComparison, error) {
	if !plan.IsActive {
		return nil, apperr.NewNotFound(apperr.KeyPlanInactive, "plan "+plan.ID+" is not open for sale")
	}

	annual, factors, err := e.Calc.Calculate(rating.NewTable(plan), profile)
	if err != nil {
		return nil, err
	}
	return e.buildComparison(plan, annual, factors)
}

// CompareCustom prices a custom coverage/term request across all cadences,
// using the nearest predefined plan as the pricing basis
func (e *Engine) CompareCustom(
	ctx context.Context,
	plans []domain.Plan,
	profile domain.RatingProfile,
	coverage decimal.Decimal,
	termYears int,
) (*domain.QuoteComparison, error) {

	candidates := activeOnly(plans)
	annual, factors, matched, err := e.Calc.CalculateCustom(candidates, profile, coverage, termYears)
	if err != nil {
		return nil, err
	}
	return e.buildComparison(matched, annual, factors)
}

// CompareAll prices every active plan in the set for the same profile. The
// calculations are independent pure functions, so they run concurrently.
// Results come back in input order; inactive plans are skipped.
func (e *Engine) CompareAll(ctx context.Context, plans []domain.Plan, profile domain.RatingProfile) ([]*domain.QuoteComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]*domain.QuoteComparison, len(plans))
	errs := make([]error, len(plans))

	var wg sync.WaitGroup
	for i := range plans {
		if !plans[i].IsActive {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.Compare(ctx, &plans[i], profile)
		}(i)
	}
	wg.Wait()

	comparisons := make([]*domain.QuoteComparison, 0, len(plans))
	for i := range plans {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if results[i] != nil {
			comparisons = append(comparisons, results[i])
		}
	}
	return comparisons, nil
}

// buildComparison assembles the per-cadence entries, savings versus monthly
// and the recommended flag
func (e *Engine) buildComparison(plan *domain.Plan, annual decimal.Decimal, factors domain.FactorBreakdown) (*domain.QuoteComparison, error) {
	fees := plan.Fees.Total()

	frequencies := domain.AllFrequencies()
	options := make([]domain.FrequencyQuote, 0, len(frequencies))
	for _, freq := range frequencies {
		total, err := e.Conv.Total(annual, freq)
		if err != nil {
			return nil, err
		}
		perPeriod, err := e.Conv.PerPeriod(annual, freq)
		if err != nil {
			return nil, err
		}
		payments, err := e.Conv.Payments(freq)
		if err != nil {
			return nil, err
		}

		options = append(options, domain.FrequencyQuote{
			Frequency:        freq,
			TotalPremium:     total,
			PaymentPerPeriod: perPeriod,
			NumberOfPayments: payments,
			OneTimeFees:      fees,
			GrandTotal:       perPeriod.Add(fees),
		})
	}

	// Monthly is first in AllFrequencies and carries the largest surcharge;
	// every option's savings are measured against it.
	monthly := options[0]
	for i := range options {
		options[i].SavingsVsMonthly = monthly.TotalPremium.Sub(options[i].TotalPremium)
		if monthly.TotalPremium.IsPositive() {
			options[i].SavingsPctVsMonthly = options[i].SavingsVsMonthly.
				Div(monthly.TotalPremium).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		}
	}

	e.flagRecommended(options, monthly.PaymentPerPeriod)

	return &domain.QuoteComparison{
		PlanID:        plan.ID,
		PlanCode:      plan.Code,
		PlanName:      plan.Name,
		ProductID:     plan.ProductID,
		AnnualPremium: annual,
		Factors:       factors,
		Options:       options,
		FeeBreakdown:  plan.Fees,
		Benefits:      plan.Benefits,
	}, nil
}

// flagRecommended marks the cadence with the best savings-to-payment-burden
// tradeoff: savings percent minus a penalty for how much larger each payment
// is than a monthly one. Deterministic for identical inputs; ties keep the
// earlier cadence in the fixed comparison order.
func (e *Engine) flagRecommended(options []domain.FrequencyQuote, monthlyPerPeriod decimal.Decimal) {
	if len(options) == 0 || !monthlyPerPeriod.IsPositive() {
		return
	}

	weight := e.BurdenWeight
	if weight.IsNegative() {
		weight = DefaultBurdenWeight
	}

	best := 0
	bestScore := e.recommendScore(options[0], monthlyPerPeriod, weight)
	for i := 1; i < len(options); i++ {
		if score := e.recommendScore(options[i], monthlyPerPeriod, weight); score.GreaterThan(bestScore) {
			best = i
			bestScore = score
		}
	}
	options[best].IsRecommended = true
}

func (e *Engine) recommendScore(option domain.FrequencyQuote, monthlyPerPeriod, weight decimal.Decimal) decimal.Decimal {
	burden := option.PaymentPerPeriod.Div(monthlyPerPeriod).Sub(decimal.NewFromInt(1))
	return option.SavingsPctVsMonthly.Sub(burden.Mul(weight))
}

func activeOnly(plans []domain.Plan) []domain.Plan {
	active := make([]domain.Plan, 0, len(plans))
	for _, p := range plans {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}
