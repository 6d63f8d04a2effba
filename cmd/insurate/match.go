package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tbecker/insurate/internal/match"
)

var matchCmd = &cobra.Command{
	Use:   "match [catalog-file]",
	Short: "Find the predefined plan closest to a requested coverage/term pair",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog := loadCatalog(args[0])

		productID, _ := cmd.Flags().GetString("product")
		coverageStr, _ := cmd.Flags().GetString("coverage")
		term, _ := cmd.Flags().GetInt("term")

		product, ok := catalog.FindProduct(productID)
		if !ok {
			log.Fatalf("product %s not found in catalog", productID)
		}

		coverage, err := decimal.NewFromString(coverageStr)
		if err != nil {
			log.Fatalf("invalid coverage amount %q: %v", coverageStr, err)
		}

		matcher := match.NewMatcher()
		if weightStr, _ := cmd.Flags().GetString("term-weight"); weightStr != "" {
			weight, err := decimal.NewFromString(weightStr)
			if err != nil {
				log.Fatalf("invalid term weight %q: %v", weightStr, err)
			}
			matcher.TermWeight = weight
		}

		plan, err := matcher.FindClosest(product.ActivePlans(), coverage, term)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Closest plan: %s (%s)\n", plan.Name, plan.ID)
		fmt.Printf("Coverage: $%s over %d years (requested $%s over %d years)\n",
			plan.CoverageAmount.StringFixed(0), plan.TermYears, coverage.StringFixed(0), term)
		fmt.Printf("Weighted distance: %s\n", matcher.Distance(plan, coverage, term).StringFixed(0))
	},
}

func init() {
	matchCmd.Flags().String("product", "", "Product id whose plans are matched against (required)")
	matchCmd.Flags().String("coverage", "", "Requested coverage amount (required)")
	matchCmd.Flags().Int("term", 0, "Requested term length in years (required)")
	matchCmd.Flags().String("term-weight", "", "Override the term distance weight (default 10000)")
	_ = matchCmd.MarkFlagRequired("product")
	_ = matchCmd.MarkFlagRequired("coverage")
	_ = matchCmd.MarkFlagRequired("term")
}
