package persistence

import (
	"context"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrganizationRepository implements OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindByID finds an organization by its ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	var model models.OrganizationModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds an organization by kind and name
func (r *GormOrganizationRepository) FindByName(ctx context.Context, kind organization.Kind, name string) (*organization.Organization, error) {
	var model models.OrganizationModel
	if err := conn(ctx, r.db).
		Where("kind = ? AND name = ?", kind, name).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists organizations of a kind together with the unpaged total
func (r *GormOrganizationRepository) FindAll(ctx context.Context, kind organization.Kind, filter shared.Filter) ([]organization.Organization, int64, error) {
	query := conn(ctx, r.db).Model(&models.OrganizationModel{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR contact_name LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orgModels []models.OrganizationModel
	if err := paginate(query, filter, OrganizationSortFields, "name").Find(&orgModels).Error; err != nil {
		return nil, 0, err
	}

	orgs := make([]organization.Organization, len(orgModels))
	for i, model := range orgModels {
		orgs[i] = *model.ToDomain()
	}
	return orgs, total, nil
}

// InsertIfAbsent inserts org unless the kind and name are taken
func (r *GormOrganizationRepository) InsertIfAbsent(ctx context.Context, org *organization.Organization) (*organization.Organization, bool, error) {
	created, err := insertIgnoringConflict(conn(ctx, r.db), models.OrganizationModelFromDomain(org))
	if err != nil {
		return nil, false, err
	}
	if created {
		return org, true, nil
	}
	existing, err := r.FindByName(ctx, org.Kind, org.Name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// SaveWithLock updates an organization with optimistic locking (version check)
func (r *GormOrganizationRepository) SaveWithLock(ctx context.Context, org *organization.Organization) error {
	expected := bumpVersion(&org.BaseAggregateRoot)
	if err := updateWithLock(conn(ctx, r.db), models.OrganizationModelFromDomain(org), org.ID, expected); err != nil {
		org.Version = expected
		return err
	}
	return nil
}

// SetProvisioned flips customer_and_onboarding_created without a version check
func (r *GormOrganizationRepository) SetProvisioned(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).
		Model(&models.OrganizationModel{}).
		Where("id = ?", id).
		Update("customer_and_onboarding_created", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
