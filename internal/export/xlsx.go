// Package export renders reports into downloadable spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Transaction Details"

var reportHeader = []any{"Date", "Account #", "Account Name", "Debit", "Credit", "Description", "EFT #"}

// TransactionDetailsFilename is the suggested download name for a trade's report.
func TransactionDetailsFilename(tradeNumber string) string {
	return fmt.Sprintf("trade-%s-transaction-details.xlsx", tradeNumber)
}

// WriteTransactionDetails writes the report as a single-sheet workbook, one block per section.
func WriteTransactionDetails(w io.Writer, details *domain.TransactionDetails) error {
	if details == nil {
		return fmt.Errorf("no report to export")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	status := "Not finalized"
	if details.IsFinalized && details.FinalizedDate != nil {
		status = "Finalized " + details.FinalizedDate.Format(domain.DateLayout)
	}
	sw := &sheetWriter{f: f, row: 1}
	sw.put(bold, []any{"Trade #", details.TradeNumber})
	sw.put(0, []any{"Address", details.Address})
	sw.put(0, []any{"Status", status})
	sw.put(0, []any{"Generated", details.GeneratedAt.Format(domain.DateLayout)})

	for _, section := range []domain.ReportSection{
		details.Details, details.TrustDeposits, details.CommissionTrust, details.RealEstateTrust,
	} {
		sw.row++
		sw.put(bold, []any{section.Title})
		sw.put(bold, reportHeader)
		for _, r := range section.Rows {
			sw.put(0, []any{
				r.Date.Format(domain.DateLayout),
				string(r.AccountCode),
				r.AccountName,
				r.Debit.InexactFloat64(),
				r.Credit.InexactFloat64(),
				r.Description,
				r.EFTNumber,
			})
			sw.styleAmounts(amount)
		}
		sw.put(bold, []any{"Total", "", "", section.Summary.TotalDebit.InexactFloat64(), section.Summary.TotalCredit.InexactFloat64()})
		sw.styleAmounts(amount)
		if sw.err != nil {
			return sw.err
		}
	}
	if sw.err != nil {
		return sw.err
	}

	_ = f.SetColWidth(sheetName, "A", "B", 12)
	_ = f.SetColWidth(sheetName, "C", "C", 36)
	_ = f.SetColWidth(sheetName, "D", "E", 14)
	_ = f.SetColWidth(sheetName, "F", "F", 60)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (s *sheetWriter) put(style int, values []any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(sheetName, cell, &values); err != nil {
		s.err = fmt.Errorf("failed to write row %d: %w", s.row, err)
		return
	}
	if style != 0 {
		end, _ := excelize.CoordinatesToCellName(len(values), s.row)
		s.err = s.f.SetCellStyle(sheetName, cell, end, style)
	}
	s.row++
}

// styleAmounts formats the debit and credit cells of the row just written.
func (s *sheetWriter) styleAmounts(style int) {
	if s.err != nil {
		return
	}
	prev := s.row - 1
	s.err = s.f.SetCellStyle(sheetName, fmt.Sprintf("D%d", prev), fmt.Sprintf("E%d", prev), style)
}
