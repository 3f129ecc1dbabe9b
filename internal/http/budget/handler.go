package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/budget"
	"github.com/davidmns/centavo/internal/savings"
)

type Handler struct {
	svc     *budget.Service
	planner *savings.Service
}

func NewHandler(svc *budget.Service, planner *savings.Service) *Handler {
	return &Handler{svc: svc, planner: planner}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/incomes", h.createIncome)
	r.Get("/incomes", h.listIncomes)
	r.Delete("/incomes/{id}", h.deleteIncome)

	r.Post("/expenses", h.createExpense)
	r.Get("/expenses", h.listExpenses)
	r.Delete("/expenses/{id}", h.deleteExpense)

	r.Get("/monthly", h.monthlyBudget)
	r.Put("/monthly", h.setMonthlyBudget)

	r.Get("/savings-plan", h.savingsPlan)
}

type createIncomeRequest struct {
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

func (h *Handler) createIncome(w http.ResponseWriter, r *http.Request) {
	var req createIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date: expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	in, err := h.svc.AddIncome(r.Context(), budget.IncomeParams{
		Source: req.Source,
		Amount: req.Amount,
		Date:   date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toIncomeResponse(in))
}

func (h *Handler) listIncomes(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	incomes, err := h.svc.Incomes(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toIncomeResponseList(incomes))
}

func (h *Handler) deleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteIncome(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createExpenseRequest struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date: expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	e, err := h.svc.AddExpense(r.Context(), budget.ExpenseParams{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(e))
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expenses, err := h.svc.Expenses(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponseList(expenses))
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type monthlyBudgetResponse struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) monthlyBudget(w http.ResponseWriter, r *http.Request) {
	amount, err := h.svc.MonthlyBudget(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, monthlyBudgetResponse{Amount: amount})
}

func (h *Handler) setMonthlyBudget(w http.ResponseWriter, r *http.Request) {
	var req monthlyBudgetResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetMonthlyBudget(r.Context(), req.Amount); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) savingsPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planner.MonthlyPlan(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(plan))
}

// parseFilter reads optional start_date/end_date query params.
func parseFilter(r *http.Request) (budget.ListFilter, error) {
	var filter budget.ListFilter

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return budget.ListFilter{}, errors.New("invalid start_date: expected YYYY-MM-DD")
		}

		filter.StartDate = &t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return budget.ListFilter{}, errors.New("invalid end_date: expected YYYY-MM-DD")
		}

		filter.EndDate = &t
	}

	return filter, nil
}

func writeError(w http.ResponseWriter, err error) {
	var verr *budget.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, budget.ErrNotFound):
		http.Error(w, "entry not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
