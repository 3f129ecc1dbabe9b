package budget

import (
	"time"

	"github.com/google/uuid"
)

// Income is an additional income entry on top of the monthly budget.
type Income struct {
	ID        uuid.UUID
	Source    string
	Amount    float64
	Date      time.Time
	CreatedAt time.Time
}

// Expense is a single tracked expense.
type Expense struct {
	ID          uuid.UUID
	Description string
	Category    string
	Amount      float64
	Date        time.Time
	CreatedAt   time.Time
}
