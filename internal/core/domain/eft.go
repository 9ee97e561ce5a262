package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FirstEFTNumber is where EFT numbering starts when nothing has been issued.
const FirstEFTNumber = 300

var eftNumberPattern = regexp.MustCompile(`EFT(\d+)`)

// FormatEFTNumber renders n as "EFT<n>".
func FormatEFTNumber(n int64) string {
	return fmt.Sprintf("EFT%d", n)
}

// ParseEFTNumber extracts n from a reference containing "EFT<n>". Bare numbers are accepted too.
func ParseEFTNumber(ref string) (int64, bool) {
	ref = strings.TrimSpace(ref)
	if m := eftNumberPattern.FindStringSubmatch(ref); m != nil {
		n, err := strconv.ParseInt(m[1], 10, 64)
		return n, err == nil
	}
	n, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeEFTNumber turns "301" or "EFT301" into "EFT301". Unparseable input is returned trimmed.
func NormalizeEFTNumber(ref string) string {
	if n, ok := ParseEFTNumber(ref); ok {
		return FormatEFTNumber(n)
	}
	return strings.TrimSpace(ref)
}

// NextEFTNumberAfter returns one past the highest EFT number in refs, or FirstEFTNumber
// when refs holds none. Only references starting with "EFT" are considered.
func NextEFTNumberAfter(refs []string) int64 {
	var highest int64
	found := false
	for _, ref := range refs {
		if !strings.HasPrefix(ref, "EFT") {
			continue
		}
		n, ok := ParseEFTNumber(ref)
		if !ok {
			continue
		}
		if !found || n > highest {
			highest = n
			found = true
		}
	}
	if !found {
		return FirstEFTNumber
	}
	return highest + 1
}

// TrustAccount distinguishes the two trust bank accounts EFTs are drawn on.
type TrustAccount string

const (
	TrustAccountCommission TrustAccount = "COMMISSION_TRUST"
	TrustAccountRealEstate TrustAccount = "REAL_ESTATE_TRUST"
)

// EFTTypeCommissionTransfer moves commission from real-estate trust to commission trust.
const EFTTypeCommissionTransfer = "CommissionTransfer"

// TrustEFT is an electronic funds transfer recorded against a trade.
type TrustEFT struct {
	EFTID        string          `json:"eftID"`
	TradeNumber  string          `json:"tradeNumber"`
	EFTNumber    string          `json:"eftNumber"`
	Account      TrustAccount    `json:"account"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         *time.Time      `json:"date,omitempty"`
	PaidTo       string          `json:"paidTo,omitempty"`
	ReceivedFrom string          `json:"receivedFrom,omitempty"`
	AuditFields
}

// IsCommissionTransfer reports whether this EFT is a trust-to-commission-trust transfer.
func (e TrustEFT) IsCommissionTransfer() bool {
	return e.Type == EFTTypeCommissionTransfer
}
