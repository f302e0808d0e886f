package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lovetasks/internal/model"
)

// RelationshipRepository manages relationships and link requests.
type RelationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

func (r *RelationshipRepository) Create(ctx context.Context, rel *model.Relationship) error {
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return fmt.Errorf("create relationship: %w", err)
	}
	return nil
}

func (r *RelationshipRepository) FindByID(ctx context.Context, id string) (*model.Relationship, error) {
	var rel model.Relationship
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rel).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

// FindByUser returns the relationship the user is part of, if any.
func (r *RelationshipRepository) FindByUser(ctx context.Context, userID string) (*model.Relationship, error) {
	var rel model.Relationship
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		First(&rel).Error
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *RelationshipRepository) ListAll(ctx context.Context) ([]model.Relationship, error) {
	var rels []model.Relationship
	if err := r.db.WithContext(ctx).Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *RelationshipRepository) CreateRequest(ctx context.Context, req *model.RelationshipRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("create relationship request: %w", err)
	}
	return nil
}

func (r *RelationshipRepository) FindRequestByID(ctx context.Context, id string) (*model.RelationshipRequest, error) {
	var req model.RelationshipRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// PendingRequestBetween looks up an open request between the two users in
// either direction, to stop duplicate invitations.
func (r *RelationshipRepository) PendingRequestBetween(ctx context.Context, userA, userB string) (*model.RelationshipRequest, error) {
	var req model.RelationshipRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			model.RequestPending, userA, userB, userB, userA).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RelationshipRepository) PendingRequestsFor(ctx context.Context, receiverID string) ([]model.RelationshipRequest, error) {
	var reqs []model.RelationshipRequest
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", receiverID, model.RequestPending).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *RelationshipRepository) UpdateRequestStatus(ctx context.Context, req *model.RelationshipRequest, status model.RequestStatus) error {
	req.Status = status
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return fmt.Errorf("update relationship request: %w", err)
	}
	return nil
}
