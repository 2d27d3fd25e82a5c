package repository

import (
	"context"
	"errors"

	"github.com/strongslime/atelier/internal/session/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

// Save upserts the snapshot for its key. Writes are idempotent and
// last-write-wins; the caller invokes this after every mutation.
func (r *repository) Save(ctx context.Context, snap *domain.SessionSnapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(snap).Error
}

func (r *repository) Find(ctx context.Context, key string) (*domain.SessionSnapshot, error) {
	var snap domain.SessionSnapshot
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &snap, nil
}

func (r *repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&domain.SessionSnapshot{}).Error
}
