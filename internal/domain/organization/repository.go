package organization

import (
	"context"

	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrganizationRepository defines the interface for organization persistence
type OrganizationRepository interface {
	// FindByID finds an organization by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)

	// FindByName finds an organization by kind and name
	FindByName(ctx context.Context, kind Kind, name string) (*Organization, error)

	// FindAll lists organizations of a kind; an empty kind lists all
	FindAll(ctx context.Context, kind Kind, filter shared.Filter) ([]Organization, int64, error)

	// InsertIfAbsent inserts org unless one with the same kind and name exists.
	// It returns the stored organization and whether this call created it.
	InsertIfAbsent(ctx context.Context, org *Organization) (*Organization, bool, error)

	// SaveWithLock updates an organization with optimistic locking (version check)
	SaveWithLock(ctx context.Context, org *Organization) error

	// SetProvisioned sets customer_and_onboarding_created directly,
	// without a version check
	SetProvisioned(ctx context.Context, id uuid.UUID) error
}
