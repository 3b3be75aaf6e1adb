package check

import (
	"context"

	"github.com/google/uuid"
)

type Repo interface {
	Create(ctx context.Context, c *Check) error
	GetByID(ctx context.Context, id uuid.UUID) (*Check, error)
	// GetForUpdate locks the row for the rest of the surrounding transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Check, error)
	List(ctx context.Context) ([]*Check, error)
	Update(ctx context.Context, c *Check) error
	Delete(ctx context.Context, id uuid.UUID) error
}
