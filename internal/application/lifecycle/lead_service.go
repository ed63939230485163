package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/campmanager/backend/internal/domain/crm"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LeadResult is the outcome of a lead save
type LeadResult struct {
	Lead    *crm.Lead
	Created bool
	Notices []Notice
}

// LeadService saves leads and converts them once they are signed
type LeadService struct {
	leads      crm.LeadRepository
	conversion *ConversionService
	bus        shared.EventPublisher
	notify     notifier
}

// NewLeadService creates a new LeadService
func NewLeadService(leads crm.LeadRepository, conversion *ConversionService, bus shared.EventPublisher, logger *zap.Logger) *LeadService {
	return &LeadService{
		leads:      leads,
		conversion: conversion,
		bus:        bus,
		notify:     notifier{bus: bus, logger: logger},
	}
}

// GetByID returns a lead by ID
func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (*crm.Lead, error) {
	return s.leads.FindByID(ctx, id)
}

// Save persists the lead and then attempts conversion. A failed conversion
// does not fail the save: it is reported as a notice and the lead stays
// unconverted so the next save tries again.
func (s *LeadService) Save(ctx context.Context, lead *crm.Lead) (*LeadResult, error) {
	ctx = WithNotices(ctx)
	ctx = logger.WithDocument(ctx, crm.AggregateTypeLead, lead.Name)

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	prev, err := s.leads.FindByID(ctx, lead.ID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		prev = nil
	case err != nil:
		return nil, fmt.Errorf("load lead: %w", err)
	}

	result := &LeadResult{Lead: lead}
	if prev == nil {
		_, created, err := s.leads.InsertIfAbsent(ctx, lead)
		if err != nil {
			return nil, fmt.Errorf("insert lead '%s': %w", lead.Name, err)
		}
		if !created {
			return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code,
				fmt.Sprintf("Lead '%s' already exists", lead.Name))
		}
		result.Created = true
	} else {
		// converted is written only by conversion
		lead.Converted = prev.Converted
		if err := s.leads.SaveWithLock(ctx, lead); err != nil {
			return nil, fmt.Errorf("save lead '%s': %w", lead.Name, err)
		}
	}
	publishEvents(ctx, s.bus, lead)

	if err := s.conversion.ConvertLead(ctx, lead); err != nil {
		s.notify.failure(ctx, crm.AggregateTypeLead, lead.Name, "Lead conversion failed", err)
	}

	result.Notices = NoticesFrom(ctx)
	return result, nil
}
