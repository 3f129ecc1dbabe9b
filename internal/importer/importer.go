package importer

import (
	"io"

	"github.com/davidmns/centavo/internal/budget"
)

// Source identifies a supported statement layout family.
type Source string

const (
	// SourceStatement covers the common bank statement CSV layouts.
	SourceStatement Source = "statement"
)

type Importer interface {
	Parse(r io.Reader) ([]budget.ExpenseParams, error)
}
