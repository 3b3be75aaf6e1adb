package history

import (
	"context"

	"github.com/google/uuid"
)

type Repo interface {
	Append(ctx context.Context, h *History) error
	// Latest returns nil, nil when the check has never been probed.
	Latest(ctx context.Context, checkID uuid.UUID) (*History, error)
	ListByCheck(ctx context.Context, checkID uuid.UUID, limit int) ([]*History, error)
	DeleteByCheck(ctx context.Context, checkID uuid.UUID) (int64, error)
}
