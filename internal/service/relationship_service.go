package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lovetasks/internal/model"
	"lovetasks/internal/repository"
)

// RelationshipService links two accounts into a partnership through a
// request/accept handshake.
type RelationshipService struct {
	users         *repository.UserRepository
	relationships *repository.RelationshipRepository
}

func NewRelationshipService(users *repository.UserRepository, relationships *repository.RelationshipRepository) *RelationshipService {
	return &RelationshipService{users: users, relationships: relationships}
}

// SendRequest invites another user. Both sides must be unlinked and only one
// open request may exist between a pair at a time.
func (s *RelationshipService) SendRequest(ctx context.Context, senderID, receiverID, message string) (*model.RelationshipRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	for _, userID := range []string{senderID, receiverID} {
		if _, err := s.relationships.FindByUser(ctx, userID); err == nil {
			return nil, ErrAlreadyLinked
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	if _, err := s.relationships.PendingRequestBetween(ctx, senderID, receiverID); err == nil {
		return nil, ErrDuplicateRequest
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	req := &model.RelationshipRequest{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
		Status:     model.RequestPending,
	}
	if err := s.relationships.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// AcceptRequest answers an open request positively and creates the
// relationship.
func (s *RelationshipService) AcceptRequest(ctx context.Context, receiverID, requestID string) (*model.Relationship, error) {
	req, err := s.openRequestFor(ctx, receiverID, requestID)
	if err != nil {
		return nil, err
	}

	for _, userID := range []string{req.SenderID, req.ReceiverID} {
		if _, err := s.relationships.FindByUser(ctx, userID); err == nil {
			return nil, ErrAlreadyLinked
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	if err := s.relationships.UpdateRequestStatus(ctx, req, model.RequestAccepted); err != nil {
		return nil, err
	}

	rel := &model.Relationship{
		ID:        uuid.NewString(),
		User1ID:   req.SenderID,
		User2ID:   req.ReceiverID,
		StartDate: time.Now(),
	}
	if err := s.relationships.Create(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// RejectRequest closes an open request without creating a relationship.
func (s *RelationshipService) RejectRequest(ctx context.Context, receiverID, requestID string) error {
	req, err := s.openRequestFor(ctx, receiverID, requestID)
	if err != nil {
		return err
	}
	return s.relationships.UpdateRequestStatus(ctx, req, model.RequestRejected)
}

// PendingRequests lists open requests addressed to the user.
func (s *RelationshipService) PendingRequests(ctx context.Context, receiverID string) ([]model.RelationshipRequest, error) {
	return s.relationships.PendingRequestsFor(ctx, receiverID)
}

// ActiveFor returns the user's relationship, or nil if they are unlinked.
func (s *RelationshipService) ActiveFor(ctx context.Context, userID string) (*model.Relationship, error) {
	rel, err := s.relationships.FindByUser(ctx, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rel, nil
}

// Partner returns the other half of the user's relationship, or nil if the
// user is unlinked.
func (s *RelationshipService) Partner(ctx context.Context, userID string) (*model.User, error) {
	rel, err := s.ActiveFor(ctx, userID)
	if err != nil || rel == nil {
		return nil, err
	}
	return s.users.FindByID(ctx, rel.PartnerOf(userID))
}

func (s *RelationshipService) openRequestFor(ctx context.Context, receiverID, requestID string) (*model.RelationshipRequest, error) {
	req, err := s.relationships.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverID != receiverID {
		return nil, ErrNotReceiver
	}
	if req.Status != model.RequestPending {
		return nil, ErrRequestClosed
	}
	return req, nil
}
