package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tbecker/insurate/internal/config"
	"github.com/tbecker/insurate/internal/domain"
	"github.com/tbecker/insurate/internal/quote"
)

// simpleCLILogger implements rating.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "insurate",
	Short: "Insurance premium rating and quoting engine",
	Long:  "Rates insurance plans against applicant profiles and compares premiums across payment frequencies",
}

var quoteCmd = &cobra.Command{
	Use:   "quote [catalog-file]",
	Short: "Calculate a premium for one plan and payment frequency",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog := loadCatalog(args[0])
		engine := newEngine(cmd)
		profile := profileFromFlags(cmd)

		var result *domain.QuoteResult
		var err error

		if coverage, term, custom := customFromFlags(cmd); custom {
			productID, _ := cmd.Flags().GetString("product")
			product, ok := catalog.FindProduct(productID)
			if !ok {
				log.Fatalf("product %s not found in catalog", productID)
			}
			result, err = engine.QuoteCustom(context.Background(), product.Plans, profile, coverage, term)
		} else {
			planID, _ := cmd.Flags().GetString("plan")
			plan, ok := catalog.FindPlan(planID)
			if !ok {
				log.Fatalf("plan %s not found in catalog", planID)
			}
			result, err = engine.Quote(context.Background(), plan, profile)
		}
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if outputFormat == "json" {
			jf := quote.JSONFormatter{Pretty: true}
			out, err := jf.FormatResult(result)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(out)
			return
		}

		fmt.Printf("Plan: %s (%s)\n", result.PlanName, result.PlanID)
		fmt.Printf("Frequency: %s\n", quote.FrequencyLabel(result.Frequency))
		fmt.Printf("Annual premium: $%s\n", result.AnnualPremium.StringFixed(2))
		fmt.Printf("Payment per period: $%s (%d payments/year)\n",
			result.CalculatedPremium.StringFixed(2), result.NumberOfPayments)
		fmt.Printf("Applied factors: age %s x gender %s x health %s x occupation %s\n",
			result.Factors.AgeMultiplier,
			result.Factors.GenderMultiplier,
			result.Factors.HealthMultiplier,
			result.Factors.OccupationMultiplier)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [catalog-file]",
	Short: "Compare premiums for one plan across all payment frequencies",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog := loadCatalog(args[0])
		engine := newEngine(cmd)
		profile := profileFromFlags(cmd)

		var comparison *domain.QuoteComparison
		var err error

		if coverage, term, custom := customFromFlags(cmd); custom {
			productID, _ := cmd.Flags().GetString("product")
			product, ok := catalog.FindProduct(productID)
			if !ok {
				log.Fatalf("product %s not found in catalog", productID)
			}
			comparison, err = engine.CompareCustom(context.Background(), product.Plans, profile, coverage, term)
		} else {
			planID, _ := cmd.Flags().GetString("plan")
			plan, ok := catalog.FindPlan(planID)
			if !ok {
				log.Fatalf("plan %s not found in catalog", planID)
			}
			comparison, err = engine.Compare(context.Background(), plan, profile)
		}
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch outputFormat {
		case "json":
			jf := quote.JSONFormatter{Pretty: true}
			out, err := jf.Format(comparison)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(out)
		case "csv":
			var cf quote.CSVFormatter
			out, err := cf.Format(comparison)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(out)
		default:
			var tf quote.TableFormatter
			fmt.Print(tf.Format(comparison))
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [catalog-file]",
	Short: "Validate a plan catalog file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewCatalogParser()
		catalog, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Catalog file %s is valid: %d products, %d plans\n",
			args[0], len(catalog.Products), len(catalog.Plans()))
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "insurate %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// loadCatalog loads and validates a catalog or exits
func loadCatalog(filename string) *domain.Catalog {
	parser := config.NewCatalogParser()
	catalog, err := parser.LoadFromFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	return catalog
}

// newEngine builds a quote engine, wiring the CLI logger when --debug is set
func newEngine(cmd *cobra.Command) *quote.Engine {
	engine := quote.NewEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

// profileFromFlags builds the applicant profile from command flags
func profileFromFlags(cmd *cobra.Command) domain.RatingProfile {
	age, _ := cmd.Flags().GetInt("age")
	genderStr, _ := cmd.Flags().GetString("gender")
	healthStr, _ := cmd.Flags().GetString("health")
	occupationStr, _ := cmd.Flags().GetString("occupation")
	frequencyStr, _ := cmd.Flags().GetString("frequency")

	gender, err := domain.ParseGender(genderStr)
	if err != nil {
		log.Fatal(err)
	}
	health, err := domain.ParseHealthStatus(healthStr)
	if err != nil {
		log.Fatal(err)
	}
	occupation, err := domain.ParseOccupationRisk(occupationStr)
	if err != nil {
		log.Fatal(err)
	}
	frequency, err := domain.ParsePaymentFrequency(frequencyStr)
	if err != nil {
		log.Fatal(err)
	}

	return domain.RatingProfile{
		Age:              age,
		Gender:           gender,
		HealthStatus:     health,
		OccupationRisk:   occupation,
		PaymentFrequency: frequency,
	}
}

// customFromFlags reads the custom coverage/term override flags
func customFromFlags(cmd *cobra.Command) (decimal.Decimal, int, bool) {
	coverageStr, _ := cmd.Flags().GetString("coverage")
	term, _ := cmd.Flags().GetInt("term")

	if coverageStr == "" && term == 0 {
		return decimal.Zero, 0, false
	}

	coverage, err := decimal.NewFromString(coverageStr)
	if err != nil {
		log.Fatalf("invalid coverage amount %q: %v", coverageStr, err)
	}
	return coverage, term, true
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().Int("age", 0, "Applicant age (required)")
	cmd.Flags().String("gender", "", "Applicant gender: male or female (required)")
	cmd.Flags().String("health", "", "Health status: excellent, good, fair, poor (default good)")
	cmd.Flags().String("occupation", "", "Occupation risk: low, medium, high (default low)")
	cmd.Flags().String("frequency", "", "Payment frequency: monthly, quarterly, semi_annual, annual, lump_sum (default annual)")
	cmd.Flags().String("plan", "", "Plan id to price")
	cmd.Flags().String("product", "", "Product id for custom coverage/term requests")
	cmd.Flags().String("coverage", "", "Custom coverage amount (requires --product and --term)")
	cmd.Flags().Int("term", 0, "Custom term length in years (requires --product and --coverage)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}

func init() {
	addProfileFlags(quoteCmd)
	quoteCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")

	addProfileFlags(compareCmd)
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
