package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lovetasks/internal/model"
)

// GiftRepository reads the gift catalog and manages redeemed gifts.
type GiftRepository struct {
	db *gorm.DB
}

func NewGiftRepository(db *gorm.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *GiftRepository) WithTx(tx *gorm.DB) *GiftRepository {
	return &GiftRepository{db: tx}
}

func (r *GiftRepository) Catalog(ctx context.Context) ([]model.Gift, error) {
	var gifts []model.Gift
	if err := r.db.WithContext(ctx).Order("required_points ASC").Find(&gifts).Error; err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *GiftRepository) FindGift(ctx context.Context, giftID string) (*model.Gift, error) {
	var gift model.Gift
	if err := r.db.WithContext(ctx).Where("id = ?", giftID).First(&gift).Error; err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *GiftRepository) CreateRedeemed(ctx context.Context, redeemed *model.RedeemedGift) error {
	if err := r.db.WithContext(ctx).Create(redeemed).Error; err != nil {
		return fmt.Errorf("create redeemed gift: %w", err)
	}
	return nil
}

func (r *GiftRepository) FindRedeemed(ctx context.Context, id string) (*model.RedeemedGift, error) {
	var redeemed model.RedeemedGift
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&redeemed).Error; err != nil {
		return nil, err
	}
	return &redeemed, nil
}

func (r *GiftRepository) SaveRedeemed(ctx context.Context, redeemed *model.RedeemedGift) error {
	if err := r.db.WithContext(ctx).Save(redeemed).Error; err != nil {
		return fmt.Errorf("save redeemed gift: %w", err)
	}
	return nil
}

// ListUnsent returns gifts the user redeemed and has not sent yet.
func (r *GiftRepository) ListUnsent(ctx context.Context, userID, relationshipID string) ([]model.RedeemedGift, error) {
	var redeemed []model.RedeemedGift
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND relationship_id = ? AND sent_to = ?", userID, relationshipID, "").
		Order("redeemed_at DESC").
		Find(&redeemed).Error; err != nil {
		return nil, err
	}
	return redeemed, nil
}

// ListReceived returns gifts the partner sent to the user.
func (r *GiftRepository) ListReceived(ctx context.Context, userID, relationshipID string) ([]model.RedeemedGift, error) {
	var redeemed []model.RedeemedGift
	if err := r.db.WithContext(ctx).
		Where("relationship_id = ? AND sent_to = ?", relationshipID, userID).
		Order("sent_at DESC").
		Find(&redeemed).Error; err != nil {
		return nil, err
	}
	return redeemed, nil
}
