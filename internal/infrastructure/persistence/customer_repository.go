package persistence

import (
	"context"
	"errors"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/partner"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM.
// Receivable account entries live in the customer_accounts child table.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) first(ctx context.Context, query string, args ...any) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := conn(ctx, r.db).
		Preload("Accounts", func(db *gorm.DB) *gorm.DB { return db.Order("idx ASC") }).
		Where(query, args...).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByName finds a customer by its unique name
func (r *GormCustomerRepository) FindByName(ctx context.Context, name string) (*partner.Customer, error) {
	return r.first(ctx, "name = ?", name)
}

// FindByOrganization finds the customer linked to an organization
func (r *GormCustomerRepository) FindByOrganization(ctx context.Context, kind organization.Kind, name string) (*partner.Customer, error) {
	if !kind.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	return r.first(ctx, kind.CustomerLinkField()+" = ?", name)
}

// InsertIfAbsent inserts the customer unless its name or organization link
// is taken
func (r *GormCustomerRepository) InsertIfAbsent(ctx context.Context, customer *partner.Customer) (*partner.Customer, bool, error) {
	model := models.CustomerModelFromDomain(customer)
	var created bool
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = insertIgnoringConflict(tx, model)
		if err != nil || !created || len(model.Accounts) == 0 {
			return err
		}
		return tx.Create(&model.Accounts).Error
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		return customer, true, nil
	}

	kind, link := customer.OrganizationLink()
	existing, err := r.FindByOrganization(ctx, kind, link)
	if errors.Is(err, shared.ErrNotFound) {
		existing, err = r.FindByName(ctx, customer.Name)
	}
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// SaveWithLock saves a customer with optimistic locking (version check).
// The account table is rewritten in the same transaction.
func (r *GormCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	expected := bumpVersion(&customer.BaseAggregateRoot)
	model := models.CustomerModelFromDomain(customer)

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := updateWithLock(tx, model, customer.ID, expected); err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.CustomerAccountModel{}).Error; err != nil {
			return err
		}
		if len(model.Accounts) == 0 {
			return nil
		}
		return tx.Create(&model.Accounts).Error
	})
	if err != nil {
		customer.Version = expected
		return err
	}
	return nil
}
