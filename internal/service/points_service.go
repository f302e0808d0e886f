package service

import (
	"context"

	"lovetasks/internal/model"
	"lovetasks/internal/repository"
)

// PointsService wraps the append-only points ledger. Balances are never
// stored directly; the newest ledger record carries the running total.
type PointsService struct {
	repo  *repository.PointsRepository
	locks *RelationshipLocks
}

func NewPointsService(repo *repository.PointsRepository, locks *RelationshipLocks) *PointsService {
	return &PointsService{repo: repo, locks: locks}
}

// CurrentBalance returns the user's balance, or 0 if the user has no ledger
// history yet.
func (s *PointsService) CurrentBalance(ctx context.Context, userID string) (int, error) {
	latest, err := s.repo.Latest(ctx, userID)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	return latest.TotalPoints, nil
}

// History returns the user's ledger, newest first.
func (s *PointsService) History(ctx context.Context, userID string) ([]model.PointHistory, error) {
	return s.repo.History(ctx, userID)
}

// Credit adds points to the user's balance.
func (s *PointsService) Credit(ctx context.Context, userID, relationshipID string, amount int, reason, todoID string) (*model.PointHistory, error) {
	lock := s.locks.get(relationshipID)
	lock.Lock()
	defer lock.Unlock()
	return s.creditIn(ctx, s.repo, userID, relationshipID, amount, reason, todoID)
}

// Debit removes points from the user's balance, clamped so the balance never
// goes negative. It returns the amount actually deducted, which may be less
// than requested.
func (s *PointsService) Debit(ctx context.Context, userID, relationshipID string, amount int, reason string) (int, error) {
	lock := s.locks.get(relationshipID)
	lock.Lock()
	defer lock.Unlock()
	return s.debitIn(ctx, s.repo, userID, relationshipID, amount, reason)
}

// creditIn appends a credit record through the given repository, which may be
// bound to a transaction. Callers must already hold the relationship lock.
func (s *PointsService) creditIn(ctx context.Context, repo *repository.PointsRepository, userID, relationshipID string, amount int, reason, todoID string) (*model.PointHistory, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	latest, err := repo.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	total := amount
	if latest != nil {
		total = latest.TotalPoints + amount
	}

	record := &model.PointHistory{
		UserID:         userID,
		RelationshipID: relationshipID,
		PointsChange:   amount,
		TotalPoints:    total,
		Reason:         reason,
		TodoID:         todoID,
	}
	if err := repo.Append(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// debitIn appends a debit record through the given repository. Callers must
// already hold the relationship lock.
func (s *PointsService) debitIn(ctx context.Context, repo *repository.PointsRepository, userID, relationshipID string, amount int, reason string) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	latest, err := repo.Latest(ctx, userID)
	if err != nil {
		return 0, err
	}
	balance := 0
	if latest != nil {
		balance = latest.TotalPoints
	}

	deducted := amount
	if deducted > balance {
		deducted = balance
	}

	record := &model.PointHistory{
		UserID:         userID,
		RelationshipID: relationshipID,
		PointsChange:   -deducted,
		TotalPoints:    balance - deducted,
		Reason:         reason,
	}
	if err := repo.Append(ctx, record); err != nil {
		return 0, err
	}
	return deducted, nil
}
