package partner

import (
	"context"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByName finds a customer by its unique name
	FindByName(ctx context.Context, name string) (*Customer, error)

	// FindByOrganization finds the customer linked to an organization
	// through the kind's link column
	FindByOrganization(ctx context.Context, kind organization.Kind, name string) (*Customer, error)

	// InsertIfAbsent inserts the customer unless one with the same name or
	// organization link exists. It returns the stored customer and whether
	// this call created it.
	InsertIfAbsent(ctx context.Context, customer *Customer) (*Customer, bool, error)

	// SaveWithLock saves a customer with optimistic locking (version check)
	// Returns error if the version has changed (concurrent modification)
	SaveWithLock(ctx context.Context, customer *Customer) error
}
