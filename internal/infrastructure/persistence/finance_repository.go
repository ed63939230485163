package persistence

import (
	"context"
	"strings"

	"github.com/campmanager/backend/internal/domain/finance"
	"github.com/campmanager/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByName finds an account by its unique name
func (r *GormAccountRepository) FindByName(ctx context.Context, name string) (*finance.Account, error) {
	var model models.AccountModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindChild finds the account called accountName under parent for a company
func (r *GormAccountRepository) FindChild(ctx context.Context, company, parent, accountName string) (*finance.Account, error) {
	var model models.AccountModel
	if err := conn(ctx, r.db).
		Where("company = ? AND parent_account = ? AND account_name = ?", company, parent, accountName).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// CountChildren counts the accounts under parent for a company
func (r *GormAccountRepository) CountChildren(ctx context.Context, company, parent string) (int64, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&models.AccountModel{}).
		Where("company = ? AND parent_account = ?", company, parent).
		Count(&count).Error
	return count, err
}

// InsertIfAbsent inserts the account unless company, parent and account
// name are taken
func (r *GormAccountRepository) InsertIfAbsent(ctx context.Context, account *finance.Account) (*finance.Account, bool, error) {
	created, err := insertIgnoringConflict(conn(ctx, r.db), models.AccountModelFromDomain(account))
	if err != nil {
		return nil, false, err
	}
	if created {
		return account, true, nil
	}
	existing, err := r.FindChild(ctx, account.Company, account.ParentAccount, account.AccountName)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindActive returns the first company by name
func (r *GormCompanyRepository) FindActive(ctx context.Context) (*finance.Company, error) {
	var model models.CompanyModel
	if err := conn(ctx, r.db).Order("name ASC").First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *finance.Company) error {
	return conn(ctx, r.db).Save(models.CompanyModelFromDomain(company)).Error
}

// GormCurrencyRepository implements CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByCode finds a currency by its ISO code
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, code string) (*finance.Currency, error) {
	var model models.CurrencyModel
	if err := conn(ctx, r.db).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// Enable marks a currency enabled, creating the entry when missing
func (r *GormCurrencyRepository) Enable(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.Assignments(map[string]any{"enabled": true}),
		}).
		Create(&models.CurrencyModel{Code: code, Name: code, Enabled: true}).Error
}
