package savings

import (
	"time"

	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/savings"
)

type goalResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Color         string    `json:"color,omitempty"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Remaining     float64   `json:"remaining"`
	Progress      float64   `json:"progress"`
	Deadline      string    `json:"deadline"`
	CreatedAt     time.Time `json:"created_at"`
}

func toResponse(g savings.Goal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		Color:         g.Color,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Remaining:     g.Remaining(),
		Progress:      g.Progress(),
		Deadline:      g.Deadline.Format(time.DateOnly),
		CreatedAt:     g.CreatedAt,
	}
}

func toResponseList(goals []savings.Goal) []goalResponse {
	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	return resp
}
