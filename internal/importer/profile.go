package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "amount" with "-10.00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// profile describes the column layout of a statement export. Column
// names are matched lowercase. Adding a new bank layout is just adding a
// profile to the list.
type profile struct {
	name      string
	dateCol   string
	descCol   string
	mode      amountMode
	amountCol string // used when mode == amountSingle
	debitCol  string // used when mode == amountSplit
	creditCol string // used when mode == amountSplit
}

func (p profile) requiredCols() []string {
	cols := []string{p.dateCol, p.descCol}

	switch p.mode {
	case amountSingle:
		cols = append(cols, p.amountCol)
	case amountSplit:
		cols = append(cols, p.debitCol, p.creditCol)
	}

	return cols
}

// amount extracts the signed cents value from a row. Split layouts store
// debits as positive magnitudes in their own column.
func (p profile) amount(row []string, cols colIndex) (int64, error) {
	if p.mode == amountSingle {
		raw := cellValue(row, cols[p.amountCol])
		if raw == "" {
			return 0, nil
		}

		return parseAmount(raw)
	}

	if raw := cellValue(row, cols[p.debitCol]); raw != "" {
		v, err := parseAmount(raw)
		if err != nil {
			return 0, err
		}

		return -abs64(v), nil
	}

	if raw := cellValue(row, cols[p.creditCol]); raw != "" {
		v, err := parseAmount(raw)
		if err != nil {
			return 0, err
		}

		return abs64(v), nil
	}

	return 0, nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

// profiles is the ordered list of layouts to try during auto-detection.
// More specific profiles come first to avoid false matches.
var profiles = []profile{
	{
		name:      "split",
		dateCol:   "date",
		descCol:   "description",
		mode:      amountSplit,
		debitCol:  "debit",
		creditCol: "credit",
	},
	{
		name:      "generic",
		dateCol:   "date",
		descCol:   "description",
		mode:      amountSingle,
		amountCol: "amount",
	},
}
