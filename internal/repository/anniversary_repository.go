package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lovetasks/internal/model"
)

// AnniversaryRepository manages a couple's remembered dates.
type AnniversaryRepository struct {
	db *gorm.DB
}

func NewAnniversaryRepository(db *gorm.DB) *AnniversaryRepository {
	return &AnniversaryRepository{db: db}
}

func (r *AnniversaryRepository) Create(ctx context.Context, anniversary *model.Anniversary) error {
	if err := r.db.WithContext(ctx).Create(anniversary).Error; err != nil {
		return fmt.Errorf("create anniversary: %w", err)
	}
	return nil
}

func (r *AnniversaryRepository) FindByID(ctx context.Context, id string) (*model.Anniversary, error) {
	var anniversary model.Anniversary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&anniversary).Error; err != nil {
		return nil, err
	}
	return &anniversary, nil
}

func (r *AnniversaryRepository) ListByRelationship(ctx context.Context, relationshipID string) ([]model.Anniversary, error) {
	var anniversaries []model.Anniversary
	if err := r.db.WithContext(ctx).
		Where("relationship_id = ?", relationshipID).
		Order("date ASC").
		Find(&anniversaries).Error; err != nil {
		return nil, err
	}
	return anniversaries, nil
}

func (r *AnniversaryRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).
		Delete(&model.Anniversary{}).Error; err != nil {
		return fmt.Errorf("delete anniversary: %w", err)
	}
	return nil
}
