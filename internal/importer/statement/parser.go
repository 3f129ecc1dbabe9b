package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/davidmns/centavo/internal/budget"
	enc "github.com/davidmns/centavo/internal/encoding"
	"github.com/davidmns/centavo/internal/money"
)

// Parser reads bank statement CSV exports and produces expense params.
// It auto-detects the layout by matching column headers against known
// profiles, trying both semicolon- and comma-delimited variants.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]budget.ExpenseParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		reader := csv.NewReader(bytes.NewReader(raw))
		reader.Comma = comma
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		rows, err := reader.ReadAll()
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows, comma)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("no matching statement layout: expected columns for %s", profileNames())
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header matching a known profile with the
// given delimiter.
func detectProfile(rows [][]string, comma rune) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].Comma != comma {
				continue
			}

			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts expenses from data rows. Deposits (credits or
// positive single-column amounts) are not expenses and are skipped, as are
// footer rows without a parseable date.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]budget.ExpenseParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	categoryIdx := -1
	if p.CategoryCol != "" {
		if i, ok := cols[p.CategoryCol]; ok {
			categoryIdx = i
		}
	}

	var expenses []budget.ExpenseParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based CSV line number

		date, ok := parseDate(p, row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := parseExpenseAmount(p, cols, row)
		if !ok {
			continue
		}

		expenses = append(expenses, budget.ExpenseParams{
			Description: desc,
			Category:    cellValue(row, categoryIdx),
			Amount:      amount,
			Date:        date,
		})
	}

	return expenses, nil
}

// parseDate returns false for empty or unparseable cells, which covers
// footer and summary rows.
func parseDate(p *Profile, row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range p.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseExpenseAmount extracts a positive expense amount from the row, or
// false when the row is a deposit or blank.
func parseExpenseAmount(p *Profile, cols colIndex, row []string) (float64, bool) {
	switch p.AmountMode {
	case amountSingle:
		s := cellValue(row, cols[p.AmountCol])
		if s == "" {
			return 0, false
		}

		amount, err := money.ParseAmount(s)
		if err != nil || amount >= 0 {
			return 0, false
		}

		return -amount, true

	case amountSplit:
		s := cellValue(row, cols[p.DebitCol])
		if s == "" {
			return 0, false
		}

		amount, err := money.ParseAmount(s)
		if err != nil || amount == 0 {
			return 0, false
		}

		if amount < 0 {
			amount = -amount
		}

		return amount, true
	}

	return 0, false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func profileNames() string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}

	return strings.Join(names, ", ")
}
