package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

func parse(r io.Reader) ([]Row, error) {
	utf8r, err := newUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching statement layout: expected date, description and amount (or debit/credit) columns")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks the delimiter from the first line. European
// exports favor semicolons.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}

// colIndex maps normalized column names to their position in the row.
type colIndex map[string]int

// detectProfile scans rows for a header matching a known layout. Returns
// the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
}

func parseDate(row []string, idx int) (time.Time, bool) {
	raw := cellValue(row, idx)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// parseRows extracts statement rows using the matched profile.
// headerRowNum is the 0-based index of the header (for error messages).
func parseRows(p *profile, cols colIndex, rows [][]string, headerRowNum int) ([]Row, error) {
	dateIdx := cols[p.dateCol]
	descIdx := cols[p.descCol]

	var parsed []Row

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, dateIdx)
		if !ok {
			// Trailing summary lines and blank rows carry no date.
			continue
		}

		amount, err := p.amount(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if amount == 0 {
			continue
		}

		parsed = append(parsed, Row{
			Date:        date,
			Description: cellValue(row, descIdx),
			Amount:      amount,
		})
	}

	return parsed, nil
}
