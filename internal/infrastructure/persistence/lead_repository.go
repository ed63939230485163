package persistence

import (
	"context"

	"github.com/campmanager/backend/internal/domain/crm"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeadRepository implements LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by its ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Lead, error) {
	var model models.LeadModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a lead by its unique name
func (r *GormLeadRepository) FindByName(ctx context.Context, name string) (*crm.Lead, error) {
	var model models.LeadModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// InsertIfAbsent inserts the lead unless the name is taken
func (r *GormLeadRepository) InsertIfAbsent(ctx context.Context, lead *crm.Lead) (*crm.Lead, bool, error) {
	created, err := insertIgnoringConflict(conn(ctx, r.db), models.LeadModelFromDomain(lead))
	if err != nil {
		return nil, false, err
	}
	if created {
		return lead, true, nil
	}
	existing, err := r.FindByName(ctx, lead.Name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// SaveWithLock updates a lead with optimistic locking (version check)
func (r *GormLeadRepository) SaveWithLock(ctx context.Context, lead *crm.Lead) error {
	expected := bumpVersion(&lead.BaseAggregateRoot)
	if err := updateWithLock(conn(ctx, r.db), models.LeadModelFromDomain(lead), lead.ID, expected); err != nil {
		lead.Version = expected
		return err
	}
	return nil
}

// SetConverted writes the converted flag without a version check
func (r *GormLeadRepository) SetConverted(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).
		Model(&models.LeadModel{}).
		Where("id = ?", id).
		Update("converted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
