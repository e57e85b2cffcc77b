// Package csvimport turns bank account exports into draft transactions.
//
// The expected layout is a semicolon separated export whose first line is
// bank metadata, followed by a header row with at least the columns
// Belopp (signed amount), Beskrivning (description) and Transaktionsdag (date).
package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Source column names.
const (
	ColumnAmount      = "Belopp"
	ColumnDescription = "Beskrivning"
	ColumnDate        = "Transaktionsdag"
)

// sourceRow is one data row of the export as read by gocsv.
type sourceRow struct {
	Amount      string `csv:"Belopp"`
	Description string `csv:"Beskrivning"`
	Date        string `csv:"Transaktionsdag"`
}

func (r *sourceRow) blank() bool {
	return strings.TrimSpace(r.Amount) == "" &&
		strings.TrimSpace(r.Description) == "" &&
		strings.TrimSpace(r.Date) == ""
}

// Options tune how the export is read.
type Options struct {
	Delimiter   rune     // 0 detects the delimiter from the header row
	Encoding    string   // utf-8 (default), windows-1252 or iso-8859-1
	DateLayouts []string // tried in order; defaults to domain.DateLayout
}

// Draft is a normalized transaction that has not been stored yet.
type Draft struct {
	Row         int                `json:"row"`
	Transaction domain.Transaction `json:"transaction"`
}

// Result is the outcome of normalizing one file.
type Result struct {
	Drafts []Draft
	Errors []*apperrors.ParseError
}

// Total returns the number of data rows that were considered.
func (r *Result) Total() int {
	return len(r.Drafts) + len(r.Errors)
}

// Normalizer converts export rows into draft transactions allocated to a
// single default category.
type Normalizer struct {
	defaultCategoryID string
	opts              Options
}

// NewNormalizer creates a Normalizer that allocates every row to defaultCategoryID.
func NewNormalizer(defaultCategoryID string, opts Options) (*Normalizer, error) {
	if defaultCategoryID == "" {
		return nil, fmt.Errorf("%w: default category id is required", apperrors.ErrValidation)
	}
	if _, err := decoderFor(opts.Encoding); err != nil {
		return nil, err
	}
	if len(opts.DateLayouts) == 0 {
		opts.DateLayouts = []string{domain.DateLayout}
	}
	return &Normalizer{defaultCategoryID: defaultCategoryID, opts: opts}, nil
}

// Normalize reads the whole export from r. Rows that fail to parse are
// reported in Result.Errors and left out of Result.Drafts; they never abort
// the file. Structural problems (no header, missing columns) do.
func (n *Normalizer) Normalize(r io.Reader) (*Result, error) {
	dec, err := decoderFor(n.opts.Encoding)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(dec.Reader(r))

	// first line is bank metadata
	if _, err := br.ReadString('\n'); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file has no header row", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: file has no header row", apperrors.ErrValidation)
	}

	delim := n.opts.Delimiter
	if delim == 0 {
		delim = detectDelimiter(firstLine(body))
	}

	if err := checkHeader(body, delim); err != nil {
		return nil, err
	}

	var rows []*sourceRow
	if err := gocsv.UnmarshalCSV(newCSVReader(body, delim), &rows); err != nil {
		return nil, fmt.Errorf("%w: malformed export: %v", apperrors.ErrValidation, err)
	}

	res := &Result{Drafts: make([]Draft, 0, len(rows)), Errors: make([]*apperrors.ParseError, 0)}
	for i, row := range rows {
		if row == nil || row.blank() {
			continue
		}
		rowNum := i + 1
		tx, perr := n.normalizeRow(row)
		if perr != nil {
			perr.Row = rowNum
			perr.Line = rowNum + 2
			res.Errors = append(res.Errors, perr)
			continue
		}
		res.Drafts = append(res.Drafts, Draft{Row: rowNum, Transaction: tx})
	}
	return res, nil
}

func (n *Normalizer) normalizeRow(row *sourceRow) (domain.Transaction, *apperrors.ParseError) {
	amount, err := ParseAmount(row.Amount)
	if err != nil {
		return domain.Transaction{}, &apperrors.ParseError{Field: ColumnAmount, Value: row.Amount, Err: err}
	}

	date, err := n.parseDate(row.Date)
	if err != nil {
		return domain.Transaction{}, &apperrors.ParseError{Field: ColumnDate, Value: row.Date, Err: err}
	}

	txType := domain.Income
	if amount.IsNegative() {
		txType = domain.Expense
	}
	magnitude := amount.Abs()

	return domain.Transaction{
		Amount:      magnitude,
		Description: strings.TrimSpace(row.Description),
		Date:        date,
		Type:        txType,
		Categories: []domain.CategoryAllocation{
			{CategoryID: n.defaultCategoryID, Amount: magnitude},
		},
	}, nil
}

func (n *Normalizer) parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range n.opts.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("date does not match any of %v", n.opts.DateLayouts)
}

func newCSVReader(body []byte, delim rune) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(body))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r
}

func checkHeader(body []byte, delim rune) error {
	header, err := newCSVReader(body, delim).Read()
	if err != nil {
		return fmt.Errorf("%w: unreadable header row: %v", apperrors.ErrValidation, err)
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range []string{ColumnAmount, ColumnDescription, ColumnDate} {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: header row is missing columns %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func firstLine(body []byte) string {
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		return string(body[:i])
	}
	return string(body)
}

// detectDelimiter picks the most frequent candidate separator in the header line.
func detectDelimiter(header string) rune {
	best, bestCount := ';', 0
	for _, c := range []rune{';', ',', '\t'} {
		if n := strings.Count(header, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// ParseAmount parses a signed amount written with either a dot or a comma as
// the decimal separator and spaces, non-breaking spaces or the other
// separator as thousands grouping. Amounts that do not fit the store's
// precision are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "'", "", "\u2212", "-").Replace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("not a number")
	}
	if err := domain.CheckAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
