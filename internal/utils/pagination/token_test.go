package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := LedgerCursor{
		EntryDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Position:  12,
		EntryID:   "3f0c2a9e-1d55-4c1a-9b8e-0d7b5a3c9e11",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, cursor, decoded)

	// Zero values survive too
	zero := LedgerCursor{EntryID: "x"}
	decoded, err = DecodeToken(EncodeToken(zero))
	assert.NoError(t, err)
	assert.Equal(t, zero, decoded)
}

func TestDecodeTokenError(t *testing.T) {
	encode := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	_, err := DecodeToken("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	_, err = DecodeToken(encode("2025-04-02T00:00:00Z"))
	assert.ErrorContains(t, err, "split")

	_, err = DecodeToken(encode("notadate|1|abc"))
	assert.ErrorContains(t, err, "entry date parse")

	_, err = DecodeToken(encode("2025-04-02T00:00:00Z|one|abc"))
	assert.ErrorContains(t, err, "position parse")

	_, err = DecodeToken(encode("2025-04-02T00:00:00Z|1|"))
	assert.ErrorContains(t, err, "missing entry id")
}
