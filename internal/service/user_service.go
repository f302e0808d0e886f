package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"lovetasks/internal/model"
	"lovetasks/internal/repository"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
)

// UserService keeps the user registry. Authentication is out of scope; the
// service only needs users to exist so partners can find and link each other.
type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Register(ctx context.Context, username, email, displayName string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if displayName == "" {
		displayName = username
	}

	user := &model.User{
		ID:          uuid.NewString(),
		Username:    username,
		Email:       email,
		DisplayName: displayName,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// Search finds potential partners by username or email fragment.
func (s *UserService) Search(ctx context.Context, query, excludeUserID string) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.repo.Search(ctx, query, excludeUserID)
}
