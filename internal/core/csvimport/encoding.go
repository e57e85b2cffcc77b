package csvimport

import (
	"fmt"
	"strings"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// decoderFor returns a decoder that turns the named charset into UTF-8.
// UTF-8 input has a leading byte order mark removed.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported encoding %q", apperrors.ErrValidation, name)
	}
}
