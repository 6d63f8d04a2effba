package quote

import (
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbecker/insurate/internal/domain"
)

func formattedComparison(t *testing.T) *domain.QuoteComparison {
	t.Helper()
	engine := NewEngine()
	plan := enginePlan("tl-100k-10y", 100000, 10, 1000)
	comparison, err := engine.Compare(context.Background(), &plan, engineProfile())
	require.NoError(t, err)
	return comparison
}

func TestTableFormatter(t *testing.T) {
	formatter := &TableFormatter{}
	output := formatter.Format(formattedComparison(t))

	assert.Contains(t, output, "PREMIUM QUOTE COMPARISON")
	assert.Contains(t, output, "Term Life tl-100k-10y (tl-100k-10y)")
	assert.Contains(t, output, "Annual premium: $1000.00")

	for _, label := range []string{"Monthly", "Quarterly", "Semi-Annual", "Annual", "Lump Sum"} {
		assert.Contains(t, output, label)
	}

	assert.Contains(t, output, "$1050.00")
	assert.Contains(t, output, "$920.00")
	assert.Contains(t, output, "<- recommended")
	assert.Contains(t, output, "Medical checkup: $60.00")
	assert.Contains(t, output, "death_benefit:")
}

func TestFrequencyLabels(t *testing.T) {
	assert.Equal(t, "Semi-Annual", FrequencyLabel(domain.FrequencySemiAnnual))
	assert.Equal(t, "Lump Sum", FrequencyLabel(domain.FrequencyLumpSum))
	assert.Equal(t, "weekly", FrequencyLabel(domain.PaymentFrequency("weekly")))
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	formatter := &JSONFormatter{}
	output, err := formatter.Format(formattedComparison(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))

	assert.Equal(t, "tl-100k-10y", decoded["planId"])
	options, ok := decoded["options"].([]any)
	require.True(t, ok)
	assert.Len(t, options, 5)

	first, ok := options[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "monthly", first["paymentFrequency"])
}

func TestJSONFormatterPretty(t *testing.T) {
	formatter := &JSONFormatter{Pretty: true}
	output, err := formatter.Format(formattedComparison(t))
	require.NoError(t, err)
	assert.Contains(t, output, "\n  ")
}

func TestJSONFormatterResult(t *testing.T) {
	engine := NewEngine()
	plan := enginePlan("tl-100k-10y", 100000, 10, 1000)
	result, err := engine.Quote(context.Background(), &plan, engineProfile())
	require.NoError(t, err)

	formatter := &JSONFormatter{}
	output, err := formatter.FormatResult(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	assert.Equal(t, "tl-100k-10y", decoded["planId"])
	assert.Equal(t, "annual", decoded["paymentFrequency"])
}

func TestCSVFormatter(t *testing.T) {
	formatter := &CSVFormatter{}
	output, err := formatter.Format(formattedComparison(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 6, "Header plus one row per cadence")

	assert.Equal(t,
		"plan_id,plan_name,frequency,total_premium,payment_per_period,number_of_payments,one_time_fees,grand_total,savings_vs_monthly,savings_pct_vs_monthly,recommended",
		lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "tl-100k-10y,"))
	assert.Contains(t, lines[1], ",monthly,1050.00,87.50,12,110.00,")
	assert.Contains(t, lines[5], ",lump_sum,920.00,920.00,1,110.00,1030.00,130.00,12.38,true")
}
