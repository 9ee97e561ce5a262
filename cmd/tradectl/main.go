// Command tradectl runs the commission and ledger rules offline against trade documents.
package main

import (
	"fmt"
	"os"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/feeplan"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	hstRate      string
	feePlanPath  string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:           "tradectl",
	Short:         "Brokerage trade ledger tools",
	Long:          `Preview finalization ledger lines and price agent commissions without a running server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&hstRate, "hst-rate", services.DefaultHSTRate.String(), "HST rate applied to commissions")
	rootCmd.PersistentFlags().StringVar(&feePlanPath, "fee-plans", "", "fee plan catalog YAML (defaults to the built-in catalog)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table or json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseHSTRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(hstRate)
	if err != nil || rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("invalid --hst-rate %q", hstRate)
	}
	return rate, nil
}

func loadCatalog() (*feeplan.Catalog, error) {
	if feePlanPath == "" {
		return feeplan.Default(), nil
	}
	return feeplan.LoadFile(feePlanPath)
}

func checkOutputFormat() error {
	if outputFormat != "table" && outputFormat != "json" {
		return fmt.Errorf("unsupported --output %q", outputFormat)
	}
	return nil
}
