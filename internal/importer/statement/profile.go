package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column; negative values are expenses.
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a statement CSV. Supporting a new
// export format is just another entry in the profiles slice.
type Profile struct {
	Name        string
	Comma       rune
	DateCol     string
	DescCol     string
	CategoryCol string // optional
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit
	DateLayouts []string
}

// requiredCols returns the columns that must be present for this profile
// to match. The category column is a bonus, never required.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of layouts tried during auto-detection.
// More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "card",
		Comma:      ';',
		DateCol:    "Date",
		DescCol:    "Description",
		AmountMode: amountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Credit",
		DateLayouts: []string{
			"02-01-2006",
			"02/01/2006",
		},
	},
	{
		Name:        "export",
		Comma:       ',',
		DateCol:     "Date",
		DescCol:     "Description",
		CategoryCol: "Category",
		AmountMode:  amountSingle,
		AmountCol:   "Amount",
		DateLayouts: []string{
			"2006-01-02",
			"01/02/2006",
		},
	},
}
