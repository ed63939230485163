package onboarding

import (
	"context"

	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OnboardingRepository defines the interface for onboarding persistence
type OnboardingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Onboarding, error)
	FindByTitle(ctx context.Context, title string) (*Onboarding, error)

	// FindAll lists onboardings, optionally restricted to one phase
	FindAll(ctx context.Context, phase *Phase, filter shared.Filter) ([]Onboarding, int64, error)

	// InsertIfAbsent inserts the onboarding unless one with the same title exists
	InsertIfAbsent(ctx context.Context, ob *Onboarding) (*Onboarding, bool, error)

	// SaveWithLock updates an onboarding with optimistic locking (version check)
	SaveWithLock(ctx context.Context, ob *Onboarding) error
}
