package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"lovetasks/internal/model"
	"lovetasks/internal/repository"
)

// ReminderService builds human-readable digests per relationship: tasks
// waiting for review, overdue tasks and upcoming anniversaries. Digests are
// what the periodic refresh produces instead of the original client's silent
// one-minute re-read.
type ReminderService struct {
	tasks         *repository.TaskRepository
	relationships *repository.RelationshipRepository
	anniversaries *AnniversaryService
}

func NewReminderService(tasks *repository.TaskRepository, relationships *repository.RelationshipRepository, anniversaries *AnniversaryService) *ReminderService {
	return &ReminderService{tasks: tasks, relationships: relationships, anniversaries: anniversaries}
}

// RelationshipDigest summarizes one couple's open items. An empty string
// means there is nothing worth mentioning.
func (s *ReminderService) RelationshipDigest(ctx context.Context, rel model.Relationship, now time.Time) (string, error) {
	var pending, overdue []model.Task
	for _, userID := range []string{rel.User1ID, rel.User2ID} {
		forReview, err := s.tasks.ListPendingReview(ctx, rel.ID, userID)
		if err != nil {
			return "", err
		}
		pending = append(pending, forReview...)

		own, err := s.tasks.ListForRelationship(ctx, rel.ID, userID)
		if err != nil {
			return "", err
		}
		for _, task := range own {
			if task.CreatedByID != userID {
				continue
			}
			if !task.Completed && task.DueDate != nil && task.DueDate.Before(now) {
				overdue = append(overdue, task)
			}
		}
	}

	upcoming, err := s.anniversaries.Upcoming(ctx, rel.ID, now)
	if err != nil {
		return "", err
	}

	if len(pending) == 0 && len(overdue) == 0 && len(upcoming) == 0 {
		return "", nil
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DueDate.Before(*overdue[j].DueDate)
	})

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("relationship %s digest for %s\n", rel.ID, now.Format("2006-01-02")))

	if len(pending) > 0 {
		builder.WriteString(fmt.Sprintf("  %d task(s) awaiting review:\n", len(pending)))
		for _, task := range pending {
			builder.WriteString(fmt.Sprintf("    - %q (%d pts)\n", task.Title, task.Points))
		}
	}
	if len(overdue) > 0 {
		builder.WriteString(fmt.Sprintf("  %d overdue task(s):\n", len(overdue)))
		for _, task := range overdue {
			builder.WriteString(fmt.Sprintf("    - %q was due %s\n", task.Title, task.DueDate.Format("2006-01-02")))
		}
	}
	if len(upcoming) > 0 {
		builder.WriteString(fmt.Sprintf("  %d upcoming anniversary(ies):\n", len(upcoming)))
		for _, a := range upcoming {
			builder.WriteString(fmt.Sprintf("    - %s on %s\n", a.Title, a.Date.Format("01-02")))
		}
	}
	return builder.String(), nil
}

// DigestAll logs a digest for every relationship that has something open.
func (s *ReminderService) DigestAll(ctx context.Context, now time.Time) error {
	rels, err := s.relationships.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, rel := range rels {
		digest, err := s.RelationshipDigest(ctx, rel, now)
		if err != nil {
			log.Printf("digest %s: %v", rel.ID, err)
			continue
		}
		if digest != "" {
			log.Print(digest)
		}
	}
	return nil
}
