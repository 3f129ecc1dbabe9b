package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/davidmns/centavo/internal/budget"
	"github.com/davidmns/centavo/internal/importer"
)

type Handler struct {
	importSvc *importer.Service
	budgetSvc *budget.Service
}

func NewHandler(importSvc *importer.Service, budgetSvc *budget.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		budgetSvc: budgetSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/expenses", h.importExpenses)
}

type expenseDTO struct {
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type importSuccessResponse struct {
	Imported int          `json:"imported"`
	Expenses []expenseDTO `json:"expenses"`
}

func (h *Handler) importExpenses(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceStatement
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expenses, err := h.budgetSvc.AddExpenses(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(expenses)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(expenses []budget.Expense) importSuccessResponse {
	dtos := make([]expenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, expenseDTO{
			Description: e.Description,
			Category:    e.Category,
			Amount:      e.Amount,
			Date:        e.Date.Format(time.DateOnly),
		})
	}

	return importSuccessResponse{
		Imported: len(dtos),
		Expenses: dtos,
	}
}
