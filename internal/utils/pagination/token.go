package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// EncodeCursor creates an opaque token from the last transaction of a page.
func EncodeCursor(c domain.TransactionCursor) string {
	tokenStr := fmt.Sprintf("%s|%s", c.Date.Format(domain.DateLayout), c.TransactionID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (*domain.TransactionCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(domain.DateLayout, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return &domain.TransactionCursor{Date: date, TransactionID: parts[1]}, nil
}
