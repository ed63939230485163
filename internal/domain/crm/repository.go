package crm

import (
	"context"

	"github.com/google/uuid"
)

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)
	FindByName(ctx context.Context, name string) (*Lead, error)

	// InsertIfAbsent inserts the lead unless one with the same name exists
	InsertIfAbsent(ctx context.Context, lead *Lead) (*Lead, bool, error)

	// SaveWithLock updates a lead with optimistic locking (version check)
	SaveWithLock(ctx context.Context, lead *Lead) error

	// SetConverted writes the converted flag directly, without a version check
	SetConverted(ctx context.Context, id uuid.UUID) error
}
