package savings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/savings"
)

type Handler struct {
	svc *savings.Service
}

func NewHandler(svc *savings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/distribute", h.distribute)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/allocate", h.allocate)
}

type createGoalRequest struct {
	Name         string  `json:"name"`
	Color        string  `json:"color"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deadline, err := time.Parse(time.DateOnly, req.Deadline)
	if err != nil {
		http.Error(w, "invalid deadline: expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	g, err := h.svc.Create(r.Context(), savings.CreateParams{
		Name:         req.Name,
		Color:        req.Color,
		TargetAmount: req.TargetAmount,
		Deadline:     deadline,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(g))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(goals))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(g))
}

type updateGoalRequest struct {
	Name          *string  `json:"name,omitempty"`
	Color         *string  `json:"color,omitempty"`
	TargetAmount  *float64 `json:"target_amount,omitempty"`
	CurrentAmount *float64 `json:"current_amount,omitempty"`
	Deadline      *string  `json:"deadline,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Name != nil {
		g.Name = *req.Name
	}

	if req.Color != nil {
		g.Color = *req.Color
	}

	if req.TargetAmount != nil {
		g.TargetAmount = *req.TargetAmount
	}

	if req.CurrentAmount != nil {
		g.CurrentAmount = *req.CurrentAmount
	}

	if req.Deadline != nil {
		deadline, err := time.Parse(time.DateOnly, *req.Deadline)
		if err != nil {
			http.Error(w, "invalid deadline: expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		g.Deadline = deadline
	}

	if err := h.svc.Update(r.Context(), g); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(g))
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

type distributeRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) distribute(w http.ResponseWriter, r *http.Request) {
	var req distributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goals, err := h.svc.Distribute(r.Context(), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(goals))
}

type allocateRequest struct {
	Amount           float64 `json:"amount"`
	AvailableBalance float64 `json:"available_balance"`
}

func (h *Handler) allocate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Allocate(r.Context(), id, req.Amount, req.AvailableBalance)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(g))
}

func writeError(w http.ResponseWriter, err error) {
	var verr *savings.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, savings.ErrNoEligibleGoals):
		http.Error(w, savings.ErrNoEligibleGoals.Error(), http.StatusConflict)
	case errors.Is(err, savings.ErrNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
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
