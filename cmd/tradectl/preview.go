package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var previewOpts struct {
	finalizedDate string
	closingDate   string
	side          string
	receivedFrom  string
	amount        string
	eftNumber     string
}

var previewCmd = &cobra.Command{
	Use:   "preview <trade.json>",
	Short: "Show the ledger lines finalizing a trade would post",
	Long: `Read a trade document and print the journal finalization would derive.
Use "-" to read the trade from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.StringVar(&previewOpts.finalizedDate, "finalized-date", "", "finalization date, YYYY-MM-DD (default today)")
	f.StringVar(&previewOpts.closingDate, "closing-date", "", "closing date for cash receipt lines, YYYY-MM-DD")
	f.StringVar(&previewOpts.side, "side", "", "commission side when the deposit is not held: 'Listing Side' or 'Selling Side'")
	f.StringVar(&previewOpts.receivedFrom, "received-from", "", "payer of the commission receipt")
	f.StringVar(&previewOpts.amount, "amount", "", "commission receipt amount")
	f.StringVar(&previewOpts.eftNumber, "eft", "", "EFT number for the receipt")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	rate, err := parseHSTRate()
	if err != nil {
		return err
	}
	trade, err := readTrade(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	params, err := previewParams()
	if err != nil {
		return err
	}

	lines := services.NewLedgerBuilder(rate).Build(trade, params)
	summary := domain.Summarize(lines)

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			TradeNumber string                   `json:"tradeNumber"`
			Lines       []dto.LedgerLineResponse `json:"lines"`
			Summary     domain.LedgerSummary     `json:"summary"`
		}{trade.TradeNumber, dto.ToLedgerLineResponses(lines), summary})
	}
	return printLines(out, trade, lines, summary)
}

func readTrade(stdin io.Reader, path string) (*domain.Trade, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open trade: %w", err)
		}
		defer f.Close()
		r = f
	}
	var trade domain.Trade
	if err := json.NewDecoder(r).Decode(&trade); err != nil {
		return nil, fmt.Errorf("failed to decode trade: %w", err)
	}
	return &trade, nil
}

func previewParams() (domain.LedgerParams, error) {
	p := domain.LedgerParams{Side: previewOpts.side}
	var err error
	if p.FinalizedDate, err = optionalDate("finalized-date", previewOpts.finalizedDate); err != nil {
		return p, err
	}
	if p.ClosingDate, err = optionalDate("closing-date", previewOpts.closingDate); err != nil {
		return p, err
	}
	if previewOpts.amount != "" {
		amount, err := decimal.NewFromString(previewOpts.amount)
		if err != nil || amount.IsNegative() {
			return p, fmt.Errorf("invalid --amount %q", previewOpts.amount)
		}
		p.Payment = &domain.PaymentReceipt{
			ReceivedFrom: previewOpts.receivedFrom,
			Amount:       domain.RoundMoney(amount),
			EFTNumber:    domain.NormalizeEFTNumber(previewOpts.eftNumber),
		}
	}
	return p, nil
}

func optionalDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return d, nil
}

func printLines(out io.Writer, trade *domain.Trade, lines []domain.LedgerLine, summary domain.LedgerSummary) error {
	fmt.Fprintf(out, "Trade #%s  %s\n\n", trade.TradeNumber, trade.Address())
	t := newTextTable("#", "Date", "Account", "Debit", "Credit", "EFT").alignRight(0, 3, 4)
	for _, l := range lines {
		t.addRow(strconv.Itoa(l.Position), l.Date.Format(domain.DateLayout), string(l.AccountCode)+" "+l.AccountName,
			l.Debit.StringFixed(domain.MoneyPlaces), l.Credit.StringFixed(domain.MoneyPlaces), l.EFTNumber)
	}
	t.setFooter("", "", "Total", summary.TotalDebit.StringFixed(domain.MoneyPlaces), summary.TotalCredit.StringFixed(domain.MoneyPlaces), "")
	if err := t.Render(out); err != nil {
		return err
	}
	if !summary.Balanced {
		fmt.Fprintln(out, "\n"+warnStyle.Render("WARNING: journal does not balance"))
	}
	return nil
}
