package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/campmanager/backend/internal/domain/onboarding"
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/campmanager/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OnboardingResult is the outcome of an onboarding save
type OnboardingResult struct {
	Onboarding    *onboarding.Onboarding
	Created       bool
	PhaseChanged  bool
	ChangedFields []string
	Notices       []Notice
}

// OnboardingService runs the onboarding save chain: mirror edited fields onto
// the organization, raise milestones, derive the phase, write
type OnboardingService struct {
	onboardings   onboarding.OnboardingRepository
	orgs          organization.OrganizationRepository
	organizations *OrganizationService
	phase         onboarding.PhaseFunc
	tx            shared.Transactor
	bus           shared.EventPublisher
	logger        *zap.Logger
}

// noTransaction runs fn directly, for repositories without transactions
type noTransaction struct{}

func (noTransaction) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(
	onboardings onboarding.OnboardingRepository,
	orgs organization.OrganizationRepository,
	organizations *OrganizationService,
	phase onboarding.PhaseFunc,
	tx shared.Transactor,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *OnboardingService {
	if phase == nil {
		phase = onboarding.ComputePhase
	}
	if tx == nil {
		tx = noTransaction{}
	}
	return &OnboardingService{
		onboardings:   onboardings,
		orgs:          orgs,
		organizations: organizations,
		phase:         phase,
		tx:            tx,
		bus:           bus,
		logger:        logger,
	}
}

// GetByID returns an onboarding by ID
func (s *OnboardingService) GetByID(ctx context.Context, id uuid.UUID) (*onboarding.Onboarding, error) {
	return s.onboardings.FindByID(ctx, id)
}

// GetByTitle returns an onboarding by title
func (s *OnboardingService) GetByTitle(ctx context.Context, title string) (*onboarding.Onboarding, error) {
	return s.onboardings.FindByTitle(ctx, title)
}

// List returns a page of onboardings, optionally in one phase
func (s *OnboardingService) List(ctx context.Context, phase *onboarding.Phase, filter shared.Filter) ([]onboarding.Onboarding, int64, error) {
	return s.onboardings.FindAll(ctx, phase, filter)
}

// Save creates or updates an onboarding.
//
// For a stored onboarding the edited fields are reconciled against the
// organization it is titled after, which must exist. Organization changes go
// through the organization save chain before the phase is derived, so the
// phase reflects the milestones raised by this save.
func (s *OnboardingService) Save(ctx context.Context, ob *onboarding.Onboarding) (*OnboardingResult, error) {
	ctx = WithNotices(ctx)
	ctx = logger.WithDocument(ctx, onboarding.AggregateTypeOnboarding, ob.Title)
	ctx, span := telemetry.StartServiceSpan(ctx, "onboarding", "save", "onboarding", ob.Title)
	defer span.End()

	if err := ob.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	prev, err := s.onboardings.FindByID(ctx, ob.ID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		prev = nil
	case err != nil:
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("load onboarding: %w", err)
	}

	result := &OnboardingResult{Onboarding: ob}
	if prev != nil && prev.Version != ob.Version {
		// a stale copy must not reach the organization
		telemetry.RecordError(span, shared.ErrConcurrencyConflict)
		return nil, shared.ErrConcurrencyConflict
	}

	from := ob.Phase
	// organization changes are kept only if the onboarding is stored too
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		return s.write(ctx, ob, prev, result)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	publishEvents(ctx, s.bus, ob)

	if result.PhaseChanged {
		logger.L(ctx).Info("onboarding phase changed",
			zap.Stringer("from", from),
			zap.Stringer("to", ob.Phase),
		)
	}
	telemetry.SetAttributes(span, "phase", ob.Phase.String(), "phase_changed", result.PhaseChanged)

	result.Notices = NoticesFrom(ctx)
	return result, nil
}

func (s *OnboardingService) write(ctx context.Context, ob, prev *onboarding.Onboarding, result *OnboardingResult) error {
	if prev != nil {
		changed, err := s.reconcile(ctx, ob, prev)
		if err != nil {
			return err
		}
		result.ChangedFields = changed
	}

	result.PhaseChanged = ob.RecomputePhase(s.phase)

	if prev != nil {
		if err := s.onboardings.SaveWithLock(ctx, ob); err != nil {
			return fmt.Errorf("save onboarding '%s': %w", ob.Title, err)
		}
		return nil
	}

	_, created, err := s.onboardings.InsertIfAbsent(ctx, ob)
	if err != nil {
		return fmt.Errorf("insert onboarding '%s': %w", ob.Title, err)
	}
	if !created {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code,
			fmt.Sprintf("Onboarding '%s' already exists", ob.Title))
	}
	result.Created = true
	return nil
}

// reconcile mirrors ob onto its organization and raises the milestones the
// result satisfies. It returns the organization fields that changed.
func (s *OnboardingService) reconcile(ctx context.Context, ob, prev *onboarding.Onboarding) ([]string, error) {
	org, err := s.orgs.FindByName(ctx, ob.OrganizationKind, ob.Title)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError(shared.CodeLinkedOrganizationNotFound,
			fmt.Sprintf("Linked %s '%s' not found", ob.OrganizationKind, ob.Title))
	}
	if err != nil {
		return nil, fmt.Errorf("load linked %s: %w", ob.OrganizationKind, err)
	}

	rec := onboarding.Reconcile(ob, prev, org)
	ob.RaiseMilestones(rec.Milestones)
	if !rec.Changed() {
		return nil, nil
	}

	logger.L(ctx).Debug("mirroring onboarding onto organization",
		zap.Strings("fields", rec.ChangedFields),
	)
	if _, _, err := s.organizations.save(ctx, rec.Organization, saveOptions{}); err != nil {
		return nil, fmt.Errorf("update %s '%s': %w", org.Kind, org.Name, err)
	}
	return rec.ChangedFields, nil
}
