package history

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOk    Status = "Ok"
	StatusError Status = "Error"
)

// History is one recorded probe outcome. Details is set only for StatusError.
type History struct {
	ID        uuid.UUID `json:"id"`
	CheckID   uuid.UUID `json:"check_id"`
	Status    Status    `json:"status"`
	Details   *string   `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func New(checkID uuid.UUID, status Status, details *string, at time.Time) *History {
	if status == StatusOk {
		details = nil
	}
	return &History{
		ID:        uuid.New(),
		CheckID:   checkID,
		Status:    status,
		Details:   details,
		CreatedAt: at,
	}
}

func (h *History) IsError() bool { return h != nil && h.Status == StatusError }
