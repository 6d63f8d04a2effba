package quote

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/tbecker/insurate/internal/domain"
)

// CSVFormatter formats quote comparisons as CSV, one row per cadence
type CSVFormatter struct{}

// Format generates CSV output for a comparison
func (cf *CSVFormatter) Format(comparison *domain.QuoteComparison) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{
		"plan_id", "plan_name", "frequency", "total_premium", "payment_per_period",
		"number_of_payments", "one_time_fees", "grand_total",
		"savings_vs_monthly", "savings_pct_vs_monthly", "recommended",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, option := range comparison.Options {
		row := []string{
			comparison.PlanID,
			comparison.PlanName,
			string(option.Frequency),
			option.TotalPremium.StringFixed(2),
			option.PaymentPerPeriod.StringFixed(2),
			strconv.Itoa(option.NumberOfPayments),
			option.OneTimeFees.StringFixed(2),
			option.GrandTotal.StringFixed(2),
			option.SavingsVsMonthly.StringFixed(2),
			option.SavingsPctVsMonthly.StringFixed(2),
			strconv.FormatBool(option.IsRecommended),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
