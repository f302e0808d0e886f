package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"lovetasks/internal/model"
	"lovetasks/internal/repository"
)

var ErrDateRequired = errors.New("date is required")

// How far ahead an anniversary shows up when no reminder window is set.
const defaultReminderDays = 7

// AnniversaryInput is the data needed to record an anniversary.
type AnniversaryInput struct {
	Title        string
	Description  string
	Date         time.Time
	IsYearly     bool
	ReminderDays int
}

// AnniversaryService manages a couple's remembered dates.
type AnniversaryService struct {
	repo          *repository.AnniversaryRepository
	relationships *repository.RelationshipRepository
}

func NewAnniversaryService(repo *repository.AnniversaryRepository, relationships *repository.RelationshipRepository) *AnniversaryService {
	return &AnniversaryService{repo: repo, relationships: relationships}
}

func (s *AnniversaryService) Create(ctx context.Context, actorID, relationshipID string, input AnniversaryInput) (*model.Anniversary, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Date.IsZero() {
		return nil, ErrDateRequired
	}
	if err := s.checkMember(ctx, actorID, relationshipID); err != nil {
		return nil, err
	}

	anniversary := &model.Anniversary{
		ID:             uuid.NewString(),
		RelationshipID: relationshipID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Date:           input.Date,
		IsYearly:       input.IsYearly,
		ReminderDays:   input.ReminderDays,
	}
	if err := s.repo.Create(ctx, anniversary); err != nil {
		return nil, err
	}
	return anniversary, nil
}

func (s *AnniversaryService) List(ctx context.Context, actorID, relationshipID string) ([]model.Anniversary, error) {
	if err := s.checkMember(ctx, actorID, relationshipID); err != nil {
		return nil, err
	}
	return s.repo.ListByRelationship(ctx, relationshipID)
}

func (s *AnniversaryService) Delete(ctx context.Context, actorID, anniversaryID string) error {
	anniversary, err := s.repo.FindByID(ctx, anniversaryID)
	if err != nil {
		return err
	}
	if err := s.checkMember(ctx, actorID, anniversary.RelationshipID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, anniversaryID)
}

// Upcoming returns anniversaries whose next occurrence falls inside their
// reminder window, soonest first.
func (s *AnniversaryService) Upcoming(ctx context.Context, relationshipID string, now time.Time) ([]model.Anniversary, error) {
	all, err := s.repo.ListByRelationship(ctx, relationshipID)
	if err != nil {
		return nil, err
	}

	var upcoming []model.Anniversary
	for _, a := range all {
		next, ok := nextOccurrence(a, now)
		if !ok {
			continue
		}
		window := a.ReminderDays
		if window <= 0 {
			window = defaultReminderDays
		}
		days := int(next.Sub(startOfDay(now)).Hours() / 24)
		if days >= 0 && days <= window {
			upcoming = append(upcoming, a)
		}
	}
	return upcoming, nil
}

func (s *AnniversaryService) checkMember(ctx context.Context, userID, relationshipID string) error {
	rel, err := s.relationships.FindByID(ctx, relationshipID)
	if err != nil {
		return err
	}
	if !rel.Member(userID) {
		return ErrNotRelationshipMember
	}
	return nil
}

// nextOccurrence finds the next date the anniversary lands on. One-off
// anniversaries in the past have no next occurrence.
func nextOccurrence(a model.Anniversary, now time.Time) (time.Time, bool) {
	date := startOfDay(a.Date)
	today := startOfDay(now)

	if !a.IsYearly {
		if date.Before(today) {
			return time.Time{}, false
		}
		return date, true
	}

	next := time.Date(today.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	}
	return next, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
