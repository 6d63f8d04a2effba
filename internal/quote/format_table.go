package quote

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/tbecker/insurate/internal/domain"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	recommendedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// TableFormatter formats a quote comparison as a console table
type TableFormatter struct{}

// Format generates the side-by-side cadence comparison for one plan
func (tf *TableFormatter) Format(comparison *domain.QuoteComparison) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("PREMIUM QUOTE COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", 92) + "\n")
	sb.WriteString(fmt.Sprintf("Plan: %s (%s)\n", comparison.PlanName, comparison.PlanID))
	sb.WriteString(fmt.Sprintf("Annual premium: $%s\n", comparison.AnnualPremium.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Applied factors: age %s x gender %s x health %s x occupation %s\n",
		comparison.Factors.AgeMultiplier,
		comparison.Factors.GenderMultiplier,
		comparison.Factors.HealthMultiplier,
		comparison.Factors.OccupationMultiplier))
	sb.WriteString("\n")

	nameWidth := 14
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Frequency",
		numWidth, "Total",
		numWidth, "Per Period",
		8, "Payments",
		numWidth, "Fees",
		numWidth, "Grand Total",
		numWidth, "Savings"))
	sb.WriteString(strings.Repeat("-", 92) + "\n")

	for _, option := range comparison.Options {
		name := FrequencyLabel(option.Frequency)
		row := fmt.Sprintf("%-*s %*s %*s %*d %*s %*s %*s\n",
			nameWidth, name,
			numWidth, "$"+option.TotalPremium.StringFixed(2),
			numWidth, "$"+option.PaymentPerPeriod.StringFixed(2),
			8, option.NumberOfPayments,
			numWidth, "$"+option.OneTimeFees.StringFixed(2),
			numWidth, "$"+option.GrandTotal.StringFixed(2),
			numWidth, tf.formatSavings(option.SavingsVsMonthly, option.SavingsPctVsMonthly))
		if option.IsRecommended {
			row = strings.TrimRight(row, "\n") + "  " + recommendedStyle.Render("<- recommended") + "\n"
		}
		sb.WriteString(row)
	}

	sb.WriteString(strings.Repeat("=", 92) + "\n")

	if fees := comparison.FeeBreakdown.Total(); fees.IsPositive() {
		sb.WriteString("\nOne-time fees at issuance:\n")
		sb.WriteString(fmt.Sprintf("  Processing:      $%s\n", comparison.FeeBreakdown.Processing.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("  Issuance:        $%s\n", comparison.FeeBreakdown.Issuance.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("  Medical checkup: $%s\n", comparison.FeeBreakdown.MedicalCheckup.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("  Admin:           $%s\n", comparison.FeeBreakdown.Admin.StringFixed(2)))
	}

	if len(comparison.Benefits) > 0 {
		sb.WriteString("\nSupplementary benefits:\n")
		for name, amount := range comparison.Benefits {
			sb.WriteString(fmt.Sprintf("  %-16s $%s\n", name+":", amount.StringFixed(2)))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatSavings(savings, pct decimal.Decimal) string {
	if savings.IsZero() {
		return "-"
	}
	sign := ""
	if savings.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s (%s%%)", sign, savings.Abs().StringFixed(2), pct.StringFixed(1))
}

// FrequencyLabel returns the display name for a cadence
func FrequencyLabel(freq domain.PaymentFrequency) string {
	switch freq {
	case domain.FrequencyMonthly:
		return "Monthly"
	case domain.FrequencyQuarterly:
		return "Quarterly"
	case domain.FrequencySemiAnnual:
		return "Semi-Annual"
	case domain.FrequencyAnnual:
		return "Annual"
	case domain.FrequencyLumpSum:
		return "Lump Sum"
	}
	return string(freq)
}
