package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lovetasks/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Search matches the query against username and email fragments. The current
// user is excluded so people do not find themselves when looking for a
// partner.
func (r *UserRepository) Search(ctx context.Context, query, excludeUserID string) ([]model.User, error) {
	var users []model.User
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("(username LIKE ? OR email LIKE ?) AND id <> ?", pattern, pattern, excludeUserID).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
