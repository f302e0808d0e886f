package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lovetasks/internal/model"
)

// PointsRepository is the append-only ledger of point changes. Records are
// never updated or deleted; balance is read off the newest record.
type PointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *PointsRepository) WithTx(tx *gorm.DB) *PointsRepository {
	return &PointsRepository{db: tx}
}

func (r *PointsRepository) Append(ctx context.Context, record *model.PointHistory) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("append point record: %w", err)
	}
	return nil
}

// Latest returns the newest ledger record for the user, or nil if the user
// has no history yet.
func (r *PointsRepository) Latest(ctx context.Context, userID string) (*model.PointHistory, error) {
	var record model.PointHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest point record: %w", err)
	}
	return &record, nil
}

// History returns the user's ledger, newest first.
func (r *PointsRepository) History(ctx context.Context, userID string) ([]model.PointHistory, error) {
	var records []model.PointHistory
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
