package persistence

import (
	"context"

	"github.com/campmanager/backend/internal/domain/onboarding"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOnboardingRepository implements OnboardingRepository using GORM
type GormOnboardingRepository struct {
	db *gorm.DB
}

// NewGormOnboardingRepository creates a new GormOnboardingRepository
func NewGormOnboardingRepository(db *gorm.DB) *GormOnboardingRepository {
	return &GormOnboardingRepository{db: db}
}

// FindByID finds an onboarding by its ID
func (r *GormOnboardingRepository) FindByID(ctx context.Context, id uuid.UUID) (*onboarding.Onboarding, error) {
	var model models.OnboardingModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByTitle finds an onboarding by its unique title
func (r *GormOnboardingRepository) FindByTitle(ctx context.Context, title string) (*onboarding.Onboarding, error) {
	var model models.OnboardingModel
	if err := conn(ctx, r.db).Where("title = ?", title).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists onboardings, optionally in one phase, with the unpaged total
func (r *GormOnboardingRepository) FindAll(ctx context.Context, phase *onboarding.Phase, filter shared.Filter) ([]onboarding.Onboarding, int64, error) {
	query := conn(ctx, r.db).Model(&models.OnboardingModel{})
	if phase != nil {
		query = query.Where("phase = ?", phase.String())
	}
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var obModels []models.OnboardingModel
	if err := paginate(query, filter, OnboardingSortFields, "title").Find(&obModels).Error; err != nil {
		return nil, 0, err
	}

	obs := make([]onboarding.Onboarding, len(obModels))
	for i, model := range obModels {
		obs[i] = *model.ToDomain()
	}
	return obs, total, nil
}

// InsertIfAbsent inserts the onboarding unless the title is taken
func (r *GormOnboardingRepository) InsertIfAbsent(ctx context.Context, ob *onboarding.Onboarding) (*onboarding.Onboarding, bool, error) {
	created, err := insertIgnoringConflict(conn(ctx, r.db), models.OnboardingModelFromDomain(ob))
	if err != nil {
		return nil, false, err
	}
	if created {
		return ob, true, nil
	}
	existing, err := r.FindByTitle(ctx, ob.Title)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// SaveWithLock updates an onboarding with optimistic locking (version check)
func (r *GormOnboardingRepository) SaveWithLock(ctx context.Context, ob *onboarding.Onboarding) error {
	expected := bumpVersion(&ob.BaseAggregateRoot)
	if err := updateWithLock(conn(ctx, r.db), models.OnboardingModelFromDomain(ob), ob.ID, expected); err != nil {
		ob.Version = expected
		return err
	}
	return nil
}
