package main

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var commissionOpts struct {
	award      string
	percentage string
	feePlan    string
	fees       string
	rebate     string
}

var commissionCmd = &cobra.Command{
	Use:   "commission",
	Short: "Price an agent's commission split",
	Args:  cobra.NoArgs,
	RunE:  runCommission,
}

func init() {
	f := commissionCmd.Flags()
	f.StringVar(&commissionOpts.award, "award", "", "gross commission the agent's percentage applies to")
	f.StringVar(&commissionOpts.percentage, "percentage", "100", "agent percentage, 0-100")
	f.StringVar(&commissionOpts.feePlan, "fee-plan", "", "fee plan code")
	f.StringVar(&commissionOpts.fees, "fees", "0", "flexible fees deducted")
	f.StringVar(&commissionOpts.rebate, "rebate", "", "buyer rebate amount; enables the rebate when set")
	_ = commissionCmd.MarkFlagRequired("award")
	_ = commissionCmd.MarkFlagRequired("fee-plan")
	rootCmd.AddCommand(commissionCmd)
}

func runCommission(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	rate, err := parseHSTRate()
	if err != nil {
		return err
	}
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	req := dto.CalculateCommissionRequest{FeePlan: commissionOpts.feePlan}
	award, err := flagDecimal("award", commissionOpts.award)
	if err != nil {
		return err
	}
	req.AwardAmount = &award
	pct, err := flagDecimal("percentage", commissionOpts.percentage)
	if err != nil {
		return err
	}
	req.Percentage = &pct
	if req.FlexibleFeesDeducted, err = flagDecimal("fees", commissionOpts.fees); err != nil {
		return err
	}
	if commissionOpts.rebate != "" {
		req.BuyerRebateIncluded = true
		if req.BuyerRebateAmount, err = flagDecimal("rebate", commissionOpts.rebate); err != nil {
			return err
		}
	}

	svc := services.NewCommissionService(services.NewCommissionCalculator(catalog, rate))
	result, err := svc.CalculateAgentCommission(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.ToCommissionResponse(result))
	}
	t := newTextTable("Item", "Value").alignRight(1)
	t.addRow("Fee plan", result.FeePlan.Label)
	for _, row := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Award", result.AwardAmount},
		{"Amount", result.Amount},
		{"HST", result.Tax},
		{"Total", result.Total},
		{"Fees deducted", result.FeesDeducted},
		{"HST on fees", result.TaxOnFees},
		{"Total fees", result.TotalFees},
		{"Buyer rebate", result.BuyerRebateAmount},
	} {
		t.addRow(row.label, row.value.StringFixed(domain.MoneyPlaces))
	}
	t.setFooter("Net commission", result.NetCommission.StringFixed(domain.MoneyPlaces))
	return t.Render(out)
}

func flagDecimal(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q", flag, value)
	}
	return d, nil
}
