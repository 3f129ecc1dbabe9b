package view

import (
	"context"
	"fmt"
	"time"

	"github.com/davidmns/centavo/internal/debt"
)

const dbTimeout = 5 * time.Second

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatPayoff renders a projection as a month count or "Never".
func FormatPayoff(p debt.PayoffProjection) string {
	if p.Never {
		return "Never"
	}

	if p.Months == 1 {
		return "1 month"
	}

	return fmt.Sprintf("%d months", p.Months)
}

// FormatRate renders an optional annual rate, with interest-free debts shown
// as a dash.
func FormatRate(rate *float64) string {
	if rate == nil {
		return "-"
	}

	return fmt.Sprintf("%.2f%%", *rate)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
