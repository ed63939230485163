package persistence

import (
	"errors"
	"time"

	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// updateWithLock writes every column of model when the stored row still
// carries version. model must already hold version+1. Zero values are
// written too, so cleared fields reach the database.
func updateWithLock(db *gorm.DB, model any, id uuid.UUID, version int) error {
	result := db.Model(model).
		Where("id = ? AND version = ?", id, version).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// insertIgnoringConflict inserts model unless a unique key already holds a
// row. It reports whether the row was inserted.
func insertIgnoringConflict(db *gorm.DB, model any) (bool, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// bumpVersion prepares an aggregate for a locked update and returns the
// version the stored row must still carry
func bumpVersion(agg *shared.BaseAggregateRoot) int {
	expected := agg.Version
	agg.IncrementVersion()
	agg.UpdatedAt = time.Now()
	return expected
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
