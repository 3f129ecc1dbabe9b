package debt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/debt"
)

type Handler struct {
	svc *debt.Service
}

func NewHandler(svc *debt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/statistics", h.statistics)
	r.Get("/priority", h.priority)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/payments", h.pay)
	r.Get("/{id}/payments", h.listPayments)
}

type createDebtRequest struct {
	Name            string    `json:"name"`
	Creditor        string    `json:"creditor"`
	TotalAmount     float64   `json:"total_amount"`
	RemainingAmount float64   `json:"remaining_amount"`
	InterestRate    *float64  `json:"interest_rate,omitempty"`
	MinimumPayment  float64   `json:"minimum_payment"`
	DueDate         string    `json:"due_date"`
	Type            debt.Type `json:"type"`
	Color           string    `json:"color"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dueDate, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		http.Error(w, "invalid due_date: expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Create(r.Context(), debt.CreateParams{
		Name:            req.Name,
		Creditor:        req.Creditor,
		TotalAmount:     req.TotalAmount,
		RemainingAmount: req.RemainingAmount,
		InterestRate:    req.InterestRate,
		MinimumPayment:  req.MinimumPayment,
		DueDate:         dueDate,
		Type:            req.Type,
		Color:           req.Color,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(d, time.Now()))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	debts, err := h.svc.List(r.Context(), now)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(debts, now))
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	var monthlyIncome float64

	if s := r.URL.Query().Get("monthly_income"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "invalid monthly_income", http.StatusBadRequest)
			return
		}

		monthlyIncome = v
	}

	stats, err := h.svc.Statistics(r.Context(), monthlyIncome)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatisticsResponse(stats))
}

func (h *Handler) priority(w http.ResponseWriter, r *http.Request) {
	d, ok, err := h.svc.Priority(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if !ok {
		http.Error(w, "no outstanding debts", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(d, time.Now()))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(d, time.Now()))
}

type updateDebtRequest struct {
	Name           *string    `json:"name,omitempty"`
	Creditor       *string    `json:"creditor,omitempty"`
	InterestRate   *float64   `json:"interest_rate,omitempty"`
	MinimumPayment *float64   `json:"minimum_payment,omitempty"`
	DueDate        *string    `json:"due_date,omitempty"`
	Type           *debt.Type `json:"type,omitempty"`
	Color          *string    `json:"color,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Name != nil {
		d.Name = *req.Name
	}

	if req.Creditor != nil {
		d.Creditor = *req.Creditor
	}

	if req.InterestRate != nil {
		d.InterestRate = req.InterestRate
	}

	if req.MinimumPayment != nil {
		d.MinimumPayment = *req.MinimumPayment
	}

	if req.DueDate != nil {
		dueDate, err := time.Parse(time.DateOnly, *req.DueDate)
		if err != nil {
			http.Error(w, "invalid due_date: expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		d.DueDate = dueDate
	}

	if req.Type != nil {
		d.Type = *req.Type
	}

	if req.Color != nil {
		d.Color = *req.Color
	}

	if err := h.svc.Update(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(d, time.Now()))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type payRequest struct {
	Amount      float64          `json:"amount"`
	Type        debt.PaymentType `json:"type,omitempty"`
	Description string           `json:"description,omitempty"`
}

type payResponse struct {
	Debt    debtResponse    `json:"debt"`
	Payment paymentResponse `json:"payment"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()

	updated, record, err := h.svc.Pay(r.Context(), id, debt.PaymentParams{
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
	}, now)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payResponse{
		Debt:    toResponse(updated, now),
		Payment: toPaymentResponse(record),
	})
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	payments, err := h.svc.Payments(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponseList(payments))
}

func writeError(w http.ResponseWriter, err error) {
	var verr *debt.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, debt.ErrNotFound):
		http.Error(w, "debt not found", http.StatusNotFound)
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
