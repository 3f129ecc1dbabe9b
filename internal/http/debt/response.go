package debt

import (
	"time"

	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/debt"
)

type debtResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Creditor        string    `json:"creditor"`
	TotalAmount     float64   `json:"total_amount"`
	RemainingAmount float64   `json:"remaining_amount"`
	InterestRate    *float64  `json:"interest_rate,omitempty"`
	MinimumPayment  float64   `json:"minimum_payment"`
	DueDate         string    `json:"due_date"`
	Urgency         string    `json:"urgency"`
	Type            debt.Type `json:"type"`
	Color           string    `json:"color,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toResponse(d debt.Debt, now time.Time) debtResponse {
	return debtResponse{
		ID:              d.ID,
		Name:            d.Name,
		Creditor:        d.Creditor,
		TotalAmount:     d.TotalAmount,
		RemainingAmount: d.RemainingAmount,
		InterestRate:    d.InterestRate,
		MinimumPayment:  d.MinimumPayment,
		DueDate:         d.DueDate.Format(time.DateOnly),
		Urgency:         d.UrgencyAt(now).String(),
		Type:            d.Type,
		Color:           d.Color,
		CreatedAt:       d.CreatedAt,
	}
}

func toResponseList(debts []debt.Debt, now time.Time) []debtResponse {
	resp := make([]debtResponse, len(debts))
	for i, d := range debts {
		resp[i] = toResponse(d, now)
	}

	return resp
}

type paymentResponse struct {
	ID               uuid.UUID        `json:"id"`
	DebtID           uuid.UUID        `json:"debt_id"`
	Amount           float64          `json:"amount"`
	Type             debt.PaymentType `json:"type"`
	Description      string           `json:"description,omitempty"`
	InterestPortion  float64          `json:"interest_portion"`
	PrincipalPortion float64          `json:"principal_portion"`
	Date             time.Time        `json:"date"`
}

func toPaymentResponse(p debt.Payment) paymentResponse {
	return paymentResponse{
		ID:               p.ID,
		DebtID:           p.DebtID,
		Amount:           p.Amount,
		Type:             p.Type,
		Description:      p.Description,
		InterestPortion:  p.InterestPortion,
		PrincipalPortion: p.PrincipalPortion,
		Date:             p.Date,
	}
}

func toPaymentResponseList(payments []debt.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	return resp
}

// projectionResponse carries the never case as -1 sentinels, which is what
// the dashboard's chart code expects.
type projectionResponse struct {
	DebtID         uuid.UUID `json:"debt_id"`
	MonthsToPayoff int       `json:"months_to_payoff"`
	TotalInterest  float64   `json:"total_interest"`
	Never          bool      `json:"never"`
}

type statisticsResponse struct {
	TotalDebt            float64              `json:"total_debt"`
	TotalMinimumPayments float64              `json:"total_minimum_payments"`
	TotalMonthlyInterest float64              `json:"total_monthly_interest"`
	DebtToIncomeRatio    float64              `json:"debt_to_income_ratio"`
	Risk                 debt.Risk            `json:"risk"`
	Projections          []projectionResponse `json:"payoff_projections"`
}

func toStatisticsResponse(s debt.Statistics) statisticsResponse {
	resp := statisticsResponse{
		TotalDebt:            s.TotalDebt,
		TotalMinimumPayments: s.TotalMinimumPayments,
		TotalMonthlyInterest: s.TotalMonthlyInterest,
		DebtToIncomeRatio:    s.DebtToIncomeRatio,
		Risk:                 s.Risk,
		Projections:          make([]projectionResponse, 0, len(s.Projections)),
	}

	for _, p := range s.Projections {
		resp.Projections = append(resp.Projections, projectionResponse{
			DebtID:         p.DebtID,
			MonthsToPayoff: p.SentinelMonths(),
			TotalInterest:  p.SentinelInterest(),
			Never:          p.Never,
		})
	}

	return resp
}
