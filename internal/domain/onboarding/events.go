package onboarding

import (
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
)

// AggregateTypeOnboarding is the aggregate type for onboarding events
const AggregateTypeOnboarding = "Onboarding"

// Event type constants
const (
	EventTypeOnboardingCreated      = "OnboardingCreated"
	EventTypeOnboardingPhaseChanged = "OnboardingPhaseChanged"
)

// OnboardingCreatedEvent is published when an onboarding is created
type OnboardingCreatedEvent struct {
	shared.BaseDomainEvent
	Title            string            `json:"title"`
	OrganizationKind organization.Kind `json:"organization_kind"`
}

// NewOnboardingCreatedEvent creates a new OnboardingCreatedEvent
func NewOnboardingCreatedEvent(o *Onboarding) *OnboardingCreatedEvent {
	return &OnboardingCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeOnboardingCreated, AggregateTypeOnboarding, o.ID),
		Title:            o.Title,
		OrganizationKind: o.OrganizationKind,
	}
}

// OnboardingPhaseChangedEvent is published when the derived phase moves
type OnboardingPhaseChangedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// NewOnboardingPhaseChangedEvent creates a new OnboardingPhaseChangedEvent
func NewOnboardingPhaseChangedEvent(o *Onboarding, from, to Phase) *OnboardingPhaseChangedEvent {
	return &OnboardingPhaseChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOnboardingPhaseChanged, AggregateTypeOnboarding, o.ID),
		Title:           o.Title,
		From:            from.String(),
		To:              to.String(),
	}
}
