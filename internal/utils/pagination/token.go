package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// LedgerCursor is the position of the last ledger entry returned on a page.
type LedgerCursor struct {
	EntryDate time.Time
	Position  int
	EntryID   string
}

// EncodeToken creates a base64 encoded token from a ledger cursor.
// Entries are ordered by date, position and id, so the cursor carries all three.
func EncodeToken(c LedgerCursor) string {
	tokenStr := fmt.Sprintf("%s|%d|%s", c.EntryDate.Format(timeFormat), c.Position, c.EntryID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a ledger cursor.
func DecodeToken(token string) (LedgerCursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	position, err := strconv.Atoi(parts[1])
	if err != nil {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (position parse): %w", err)
	}
	if parts[2] == "" {
		return LedgerCursor{}, fmt.Errorf("invalid pagination token format (missing entry id)")
	}

	return LedgerCursor{EntryDate: entryDate, Position: position, EntryID: parts[2]}, nil
}
