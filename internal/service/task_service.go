package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lovetasks/internal/model"
	"lovetasks/internal/repository"
)

// Review point overrides outside this range are refused.
const (
	minReviewPoints = 1
	maxReviewPoints = 100
)

const defaultTaskPoints = 10

// TaskInput represents data required to create or edit a love task.
type TaskInput struct {
	Title       string
	Description string
	Priority    model.Priority
	PartnerTag  model.PartnerTag
	LoveType    model.LoveType
	DueDate     *time.Time
	IsShared    bool
	Points      int
}

// ReviewInput carries a reviewer's decision details. Points of 0 means "keep
// the task's own points".
type ReviewInput struct {
	Points  int
	Comment string
}

// TaskService is the task lifecycle engine. It is the only place review
// transitions happen; repositories never change review state on their own.
type TaskService struct {
	db            *gorm.DB
	tasks         *repository.TaskRepository
	relationships *repository.RelationshipRepository
	points        *PointsService
	locks         *RelationshipLocks
}

func NewTaskService(db *gorm.DB, tasks *repository.TaskRepository, relationships *repository.RelationshipRepository, points *PointsService, locks *RelationshipLocks) *TaskService {
	return &TaskService{db: db, tasks: tasks, relationships: relationships, points: points, locks: locks}
}

// CreateTask makes a new task owned by the actor, scoped to their current
// relationship.
func (s *TaskService) CreateTask(ctx context.Context, actorID string, input TaskInput) (*model.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	rel, err := s.activeRelationship(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task := model.Task{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Priority:       input.Priority,
		PartnerTag:     input.PartnerTag,
		LoveType:       input.LoveType,
		DueDate:        input.DueDate,
		CreatedByID:    actorID,
		RelationshipID: rel.ID,
		IsShared:       input.IsShared,
		Points:         input.Points,
		ReviewStatus:   model.ReviewNotSubmitted,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.PartnerTag == "" {
		task.PartnerTag = model.TagSelf
	}
	if task.LoveType == "" {
		task.LoveType = model.LoveOther
	}
	if task.Points <= 0 {
		task.Points = defaultTaskPoints
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask returns a task visible to the actor: their own, or a shared task in
// their relationship.
func (s *TaskService) GetTask(ctx context.Context, actorID, taskID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatedByID == actorID {
		return task, nil
	}
	rel, err := s.relationships.FindByID(ctx, task.RelationshipID)
	if err != nil || !rel.Member(actorID) || !task.IsShared {
		return nil, gorm.ErrRecordNotFound
	}
	return task, nil
}

// ListTasks returns the actor's tasks plus shared tasks of the relationship.
func (s *TaskService) ListTasks(ctx context.Context, actorID string) ([]model.Task, error) {
	rel, err := s.activeRelationship(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListForRelationship(ctx, rel.ID, actorID)
}

// ListPendingReview returns partner tasks waiting for the actor's decision.
func (s *TaskService) ListPendingReview(ctx context.Context, actorID string) ([]model.Task, error) {
	rel, err := s.activeRelationship(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListPendingReview(ctx, rel.ID, actorID)
}

// EditTask updates a task's fields. Only the creator may edit, and never
// while the task sits in review. Editing a rejected task puts it back at the
// start of the workflow.
func (s *TaskService) EditTask(ctx context.Context, actorID, taskID string, input TaskInput) (*model.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatedByID != actorID {
		return nil, ErrNotCreator
	}
	switch task.ReviewStatus {
	case model.ReviewPending:
		return nil, ErrTaskUnderReview
	case model.ReviewApproved:
		// Approved tasks are settled; the reward is already paid out.
		return nil, ErrInvalidState
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.DueDate = input.DueDate
	task.IsShared = input.IsShared
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.PartnerTag != "" {
		task.PartnerTag = input.PartnerTag
	}
	if input.LoveType != "" {
		task.LoveType = input.LoveType
	}
	if input.Points > 0 {
		task.Points = input.Points
	}
	if task.ReviewStatus == model.ReviewRejected {
		s.resetReview(task)
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleComplete flips the completion flag. Refused while the task is under
// review or already approved. Completing a rejected task again re-enters the
// workflow as not_submitted.
func (s *TaskService) ToggleComplete(ctx context.Context, actorID, taskID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatedByID != actorID {
		return nil, ErrNotCreator
	}
	switch task.ReviewStatus {
	case model.ReviewPending:
		return nil, ErrTaskUnderReview
	case model.ReviewApproved:
		return nil, ErrInvalidState
	case model.ReviewRejected:
		s.resetReview(task)
	}

	task.Completed = !task.Completed

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task. Only the creator may delete, and not while the
// task is under review.
func (s *TaskService) DeleteTask(ctx context.Context, actorID, taskID string) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.CreatedByID != actorID {
		return ErrNotCreator
	}
	if task.ReviewStatus == model.ReviewPending {
		return ErrTaskUnderReview
	}
	return s.tasks.Delete(ctx, taskID)
}

// SubmitForReview moves a completed task into the partner's review queue.
func (s *TaskService) SubmitForReview(ctx context.Context, actorID, taskID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatedByID != actorID {
		return nil, ErrNotCreator
	}
	if task.ReviewStatus != model.ReviewNotSubmitted {
		return nil, ErrInvalidState
	}
	if !task.Completed {
		return nil, ErrNotCompleted
	}

	rel, err := s.activeRelationship(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task.ReviewStatus = model.ReviewPending
	task.RelationshipID = rel.ID

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ApproveTask accepts a pending task and credits the creator. The reviewer
// may override the awarded points within the allowed range; the task update
// and the ledger credit commit in one transaction.
func (s *TaskService) ApproveTask(ctx context.Context, actorID, taskID string, input ReviewInput) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(task.RelationshipID)
	lock.Lock()
	defer lock.Unlock()

	// Reload under the lock so a concurrent decision is seen.
	task, err = s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReviewer(ctx, actorID, task); err != nil {
		return nil, err
	}

	finalPoints := task.Points
	if input.Points != 0 {
		if input.Points < minReviewPoints || input.Points > maxReviewPoints {
			return nil, ErrPointsOutOfRange
		}
		finalPoints = input.Points
	}

	now := time.Now()
	task.ReviewStatus = model.ReviewApproved
	task.ReviewerID = actorID
	task.ReviewedAt = &now
	task.ReviewComment = input.Comment
	task.Points = finalPoints

	reason := fmt.Sprintf("completed task %q", task.Title)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tasks.WithTx(tx).Save(ctx, task); err != nil {
			return err
		}
		_, err := s.points.creditIn(ctx, s.points.repo.WithTx(tx), task.CreatedByID, task.RelationshipID, finalPoints, reason, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// RejectTask declines a pending task. A comment is mandatory so the creator
// knows what to fix; the task drops back to incomplete and can be reworked.
func (s *TaskService) RejectTask(ctx context.Context, actorID, taskID, comment string) (*model.Task, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, ErrMissingComment
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(task.RelationshipID)
	lock.Lock()
	defer lock.Unlock()

	task, err = s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReviewer(ctx, actorID, task); err != nil {
		return nil, err
	}

	now := time.Now()
	task.ReviewStatus = model.ReviewRejected
	task.ReviewerID = actorID
	task.ReviewedAt = &now
	task.ReviewComment = comment
	task.Completed = false

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// checkReviewer validates that the actor may decide on the task: the task is
// pending, the actor belongs to the task's relationship and is not its
// creator.
func (s *TaskService) checkReviewer(ctx context.Context, actorID string, task *model.Task) error {
	if task.ReviewStatus != model.ReviewPending {
		return ErrInvalidState
	}
	if task.CreatedByID == actorID {
		return ErrNotReviewer
	}
	rel, err := s.relationships.FindByID(ctx, task.RelationshipID)
	if err != nil {
		return err
	}
	if !rel.Member(actorID) {
		return ErrNotRelationshipMember
	}
	return nil
}

func (s *TaskService) activeRelationship(ctx context.Context, userID string) (*model.Relationship, error) {
	rel, err := s.relationships.FindByUser(ctx, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNoActiveRelationship
	}
	if err != nil {
		return nil, err
	}
	return rel, nil
}

// resetReview clears a rejected task's review trail so it starts the
// workflow over.
func (s *TaskService) resetReview(task *model.Task) {
	task.ReviewStatus = model.ReviewNotSubmitted
	task.ReviewerID = ""
	task.ReviewedAt = nil
	task.ReviewComment = ""
}
