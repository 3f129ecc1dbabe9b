package budget

import (
	"time"

	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/budget"
	"github.com/davidmns/centavo/internal/savings"
)

type incomeResponse struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func toIncomeResponse(in budget.Income) incomeResponse {
	return incomeResponse{
		ID:        in.ID,
		Source:    in.Source,
		Amount:    in.Amount,
		Date:      in.Date.Format(time.DateOnly),
		CreatedAt: in.CreatedAt,
	}
}

func toIncomeResponseList(incomes []budget.Income) []incomeResponse {
	resp := make([]incomeResponse, len(incomes))
	for i, in := range incomes {
		resp[i] = toIncomeResponse(in)
	}

	return resp
}

type expenseResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func toExpenseResponse(e budget.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        e.Date.Format(time.DateOnly),
		CreatedAt:   e.CreatedAt,
	}
}

func toExpenseResponseList(expenses []budget.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}

	return resp
}

type planResponse struct {
	TotalIncome         float64 `json:"total_income"`
	TotalExpenses       float64 `json:"total_expenses"`
	AvailableForSavings float64 `json:"available_for_savings"`
	RecommendedSavings  float64 `json:"recommended_savings"`
	SavingsPercentage   float64 `json:"savings_percentage"`
}

func toPlanResponse(p savings.Plan) planResponse {
	return planResponse{
		TotalIncome:         p.TotalIncome,
		TotalExpenses:       p.TotalExpenses,
		AvailableForSavings: p.AvailableForSavings,
		RecommendedSavings:  p.RecommendedSavings,
		SavingsPercentage:   p.SavingsPercentage,
	}
}
