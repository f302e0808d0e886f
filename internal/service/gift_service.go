package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lovetasks/internal/model"
	"lovetasks/internal/repository"
)

// GiftService spends ledger balance against the catalog and moves redeemed
// gifts between partners.
type GiftService struct {
	db            *gorm.DB
	gifts         *repository.GiftRepository
	relationships *repository.RelationshipRepository
	points        *PointsService
	locks         *RelationshipLocks
}

func NewGiftService(db *gorm.DB, gifts *repository.GiftRepository, relationships *repository.RelationshipRepository, points *PointsService, locks *RelationshipLocks) *GiftService {
	return &GiftService{db: db, gifts: gifts, relationships: relationships, points: points, locks: locks}
}

// Catalog lists every gift, cheapest first.
func (s *GiftService) Catalog(ctx context.Context) ([]model.Gift, error) {
	return s.gifts.Catalog(ctx)
}

// Redeem buys a catalog gift with points. The balance check, the ledger
// debit and the redeemed-gift snapshot happen under the relationship lock in
// one transaction, so two redemptions cannot both spend the same balance.
func (s *GiftService) Redeem(ctx context.Context, userID, relationshipID, giftID string) (*model.RedeemedGift, error) {
	rel, err := s.relationships.FindByID(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if !rel.Member(userID) {
		return nil, ErrNotRelationshipMember
	}

	gift, err := s.gifts.FindGift(ctx, giftID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(relationshipID)
	lock.Lock()
	defer lock.Unlock()

	balance, err := s.points.CurrentBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < gift.RequiredPoints {
		return nil, ErrInsufficientPoints
	}

	redeemed := &model.RedeemedGift{
		ID:             uuid.NewString(),
		GiftID:         gift.ID,
		UserID:         userID,
		RelationshipID: relationshipID,
		PointsUsed:     gift.RequiredPoints,
		RedeemedAt:     time.Now(),
		Gift:           *gift,
	}

	reason := fmt.Sprintf("redeemed gift: %s", gift.Name)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.points.debitIn(ctx, s.points.repo.WithTx(tx), userID, relationshipID, gift.RequiredPoints, reason); err != nil {
			return err
		}
		return s.gifts.WithTx(tx).CreateRedeemed(ctx, redeemed)
	})
	if err != nil {
		return nil, err
	}
	return redeemed, nil
}

// Transfer sends a redeemed gift to the owner's partner. A gift can be sent
// at most once; SentTo never changes after it is set.
func (s *GiftService) Transfer(ctx context.Context, redeemedGiftID, fromUserID, toUserID string) (*model.RedeemedGift, error) {
	redeemed, err := s.gifts.FindRedeemed(ctx, redeemedGiftID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(redeemed.RelationshipID)
	lock.Lock()
	defer lock.Unlock()

	// Reload under the lock so a concurrent transfer is seen.
	redeemed, err = s.gifts.FindRedeemed(ctx, redeemedGiftID)
	if err != nil {
		return nil, err
	}
	if redeemed.UserID != fromUserID {
		return nil, ErrNotOwner
	}
	if redeemed.SentTo != "" {
		return nil, ErrAlreadySent
	}

	rel, err := s.relationships.FindByID(ctx, redeemed.RelationshipID)
	if err != nil {
		return nil, err
	}
	if rel.PartnerOf(fromUserID) != toUserID {
		return nil, ErrNotPartner
	}

	now := time.Now()
	redeemed.SentTo = toUserID
	redeemed.SentAt = &now

	if err := s.gifts.SaveRedeemed(ctx, redeemed); err != nil {
		return nil, err
	}
	return redeemed, nil
}

// MyUnsentGifts lists gifts the user redeemed and still holds.
func (s *GiftService) MyUnsentGifts(ctx context.Context, userID, relationshipID string) ([]model.RedeemedGift, error) {
	return s.gifts.ListUnsent(ctx, userID, relationshipID)
}

// GiftsReceivedBy lists gifts the partner sent to the user.
func (s *GiftService) GiftsReceivedBy(ctx context.Context, userID, relationshipID string) ([]model.RedeemedGift, error) {
	return s.gifts.ListReceived(ctx, userID, relationshipID)
}
