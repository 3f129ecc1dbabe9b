package importer

import (
	"fmt"
	"io"

	"github.com/davidmns/centavo/internal/budget"
	"github.com/davidmns/centavo/internal/importer/statement"
)

type Service struct {
	statementImporter Importer
}

func NewService() *Service {
	return &Service{
		statementImporter: statement.NewParser(),
	}
}

// Import parses the uploaded file into expense params. Only outgoing
// movements become expenses; deposits in the file are skipped.
func (s *Service) Import(source Source, r io.Reader) ([]budget.ExpenseParams, error) {
	var imp Importer

	switch source {
	case SourceStatement:
		imp = s.statementImporter
	default:
		return nil, fmt.Errorf("unknown import source: %s", source)
	}

	return imp.Parse(r)
}
