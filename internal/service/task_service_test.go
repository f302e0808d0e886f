package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lovetasks/internal/model"
)

func TestCreateTask(t *testing.T) {
	tests := []struct {
		name    string
		linked  bool
		input   TaskInput
		wantErr error
	}{
		{
			name:    "empty title",
			linked:  true,
			input:   TaskInput{Title: "   "},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "no relationship",
			linked:  false,
			input:   TaskInput{Title: "Buy flowers"},
			wantErr: ErrNoActiveRelationship,
		},
		{
			name:   "defaults applied",
			linked: true,
			input:  TaskInput{Title: "Buy flowers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			var actorID string
			if tt.linked {
				a, _, _ := linkCouple(t, env)
				actorID = a.ID
			} else {
				actorID = createTestUser(t, env, "loner").ID
			}

			task, err := env.tasks.CreateTask(context.Background(), actorID, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.ReviewNotSubmitted, task.ReviewStatus)
			assert.False(t, task.Completed)
			assert.Equal(t, actorID, task.CreatedByID)
			assert.Equal(t, model.PriorityMedium, task.Priority)
			assert.Equal(t, defaultTaskPoints, task.Points)
			assert.NotEmpty(t, task.RelationshipID)
		})
	}
}

func TestSubmitForReview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b, _ := linkCouple(t, env)

	task, err := env.tasks.CreateTask(ctx, a.ID, TaskInput{Title: "Cook dinner"})
	require.NoError(t, err)

	// Not completed yet.
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotCompleted)

	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)

	// Only the creator may submit.
	_, err = env.tasks.SubmitForReview(ctx, b.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotCreator)

	submitted, err := env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewPending, submitted.ReviewStatus)

	// Submitting twice is a state error.
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveTask_Guards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b, _ := linkCouple(t, env)
	outsider := createTestUser(t, env, "carol")

	task, err := env.tasks.CreateTask(ctx, a.ID, TaskInput{Title: "Write a letter", Points: 20})
	require.NoError(t, err)

	// Approving a non-pending task fails no matter who asks.
	_, err = env.tasks.ApproveTask(ctx, b.ID, task.ID, ReviewInput{})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)

	// Self-review is forbidden.
	_, err = env.tasks.ApproveTask(ctx, a.ID, task.ID, ReviewInput{})
	assert.ErrorIs(t, err, ErrNotReviewer)

	// Strangers cannot review either.
	_, err = env.tasks.ApproveTask(ctx, outsider.ID, task.ID, ReviewInput{})
	assert.ErrorIs(t, err, ErrNotRelationshipMember)

	// Point override outside the allowed range.
	_, err = env.tasks.ApproveTask(ctx, b.ID, task.ID, ReviewInput{Points: 101})
	assert.ErrorIs(t, err, ErrPointsOutOfRange)
	_, err = env.tasks.ApproveTask(ctx, b.ID, task.ID, ReviewInput{Points: -3})
	assert.ErrorIs(t, err, ErrPointsOutOfRange)
}

func TestApproveTask_CreditsCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b, rel := linkCouple(t, env)

	task, err := env.tasks.CreateTask(ctx, a.ID, TaskInput{Title: "Buy flowers", Points: 20})
	require.NoError(t, err)
	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)

	approved, err := env.tasks.ApproveTask(ctx, b.ID, task.ID, ReviewInput{Points: 25, Comment: "well done"})
	require.NoError(t, err)

	assert.Equal(t, model.ReviewApproved, approved.ReviewStatus)
	assert.Equal(t, 25, approved.Points)
	assert.Equal(t, b.ID, approved.ReviewerID)
	assert.NotNil(t, approved.ReviewedAt)
	assert.Equal(t, "well done", approved.ReviewComment)

	balance, err := env.points.CurrentBalance(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, balance)

	history, err := env.points.History(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, task.ID, history[0].TodoID)
	assert.Equal(t, rel.ID, history[0].RelationshipID)
	assert.Contains(t, history[0].Reason, "Buy flowers")

	// A second decision on the same task is refused.
	_, err = env.tasks.ApproveTask(ctx, b.ID, task.ID, ReviewInput{})
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = env.tasks.RejectTask(ctx, b.ID, task.ID, "too late")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveTask_DefaultPoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b, _ := linkCouple(t, env)

	task, err := env.tasks.CreateTask(ctx, a.ID, TaskInput{Title: "Morning coffee", Points: 15})
	require.NoError(t, err)
	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)

	approved, err := env.tasks.ApproveTask(ctx, b.ID, task.ID, ReviewInput{})
	require.NoError(t, err)
	assert.Equal(t, 15, approved.Points)

	balance, err := env.points.CurrentBalance(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, balance)
}

func TestRejectTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b, _ := linkCouple(t, env)

	task, err := env.tasks.CreateTask(ctx, a.ID, TaskInput{Title: "Buy flowers", Points: 20})
	require.NoError(t, err)
	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)

	// A comment is mandatory.
	_, err = env.tasks.RejectTask(ctx, b.ID, task.ID, "  ")
	assert.ErrorIs(t, err, ErrMissingComment)

	rejected, err := env.tasks.RejectTask(ctx, b.ID, task.ID, "not done")
	require.NoError(t, err)
	assert.Equal(t, model.ReviewRejected, rejected.ReviewStatus)
	assert.False(t, rejected.Completed)
	assert.Equal(t, "not done", rejected.ReviewComment)

	// Rejection must not touch the ledger.
	balance, err := env.points.CurrentBalance(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestToggleComplete_Transitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b, _ := linkCouple(t, env)

	task, err := env.tasks.CreateTask(ctx, a.ID, TaskInput{Title: "Plan a date"})
	require.NoError(t, err)

	// Only the creator toggles.
	_, err = env.tasks.ToggleComplete(ctx, b.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotCreator)

	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)

	// Frozen while pending, for either party.
	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskUnderReview)

	_, err = env.tasks.RejectTask(ctx, b.ID, task.ID, "redo it")
	require.NoError(t, err)

	// Completing a rejected task re-enters the workflow from the start.
	toggled, err := env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, model.ReviewNotSubmitted, toggled.ReviewStatus)
	assert.Empty(t, toggled.ReviewerID)

	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.ApproveTask(ctx, b.ID, task.ID, ReviewInput{})
	require.NoError(t, err)

	// Approved tasks are settled; no more toggling.
	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEditTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b, _ := linkCouple(t, env)

	task, err := env.tasks.CreateTask(ctx, a.ID, TaskInput{Title: "Original"})
	require.NoError(t, err)

	_, err = env.tasks.EditTask(ctx, b.ID, task.ID, TaskInput{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotCreator)

	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)

	// No edits mid-review.
	_, err = env.tasks.EditTask(ctx, a.ID, task.ID, TaskInput{Title: "Sneaky change"})
	assert.ErrorIs(t, err, ErrTaskUnderReview)

	_, err = env.tasks.RejectTask(ctx, b.ID, task.ID, "try again")
	require.NoError(t, err)

	// Editing a rejected task resets the review trail.
	edited, err := env.tasks.EditTask(ctx, a.ID, task.ID, TaskInput{Title: "Reworked"})
	require.NoError(t, err)
	assert.Equal(t, "Reworked", edited.Title)
	assert.Equal(t, model.ReviewNotSubmitted, edited.ReviewStatus)
	assert.Empty(t, edited.ReviewerID)
	assert.Nil(t, edited.ReviewedAt)
}

func TestDeleteTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b, _ := linkCouple(t, env)

	task, err := env.tasks.CreateTask(ctx, a.ID, TaskInput{Title: "Ephemeral"})
	require.NoError(t, err)

	err = env.tasks.DeleteTask(ctx, b.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotCreator)

	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)

	err = env.tasks.DeleteTask(ctx, a.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskUnderReview)

	_, err = env.tasks.RejectTask(ctx, b.ID, task.ID, "whatever")
	require.NoError(t, err)

	require.NoError(t, env.tasks.DeleteTask(ctx, a.ID, task.ID))
	_, err = env.tasks.GetTask(ctx, a.ID, task.ID)
	assert.Error(t, err)
}

func TestListPendingReview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b, _ := linkCouple(t, env)

	task, err := env.tasks.CreateTask(ctx, a.ID, TaskInput{Title: "For review"})
	require.NoError(t, err)
	_, err = env.tasks.ToggleComplete(ctx, a.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.SubmitForReview(ctx, a.ID, task.ID)
	require.NoError(t, err)

	// The partner sees it; the creator does not review their own work.
	forB, err := env.tasks.ListPendingReview(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, forB, 1)
	assert.Equal(t, task.ID, forB[0].ID)

	forA, err := env.tasks.ListPendingReview(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, forA)
}
