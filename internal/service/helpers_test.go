package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lovetasks/internal/model"
	"lovetasks/internal/repository"
)

// testEnv wires every service against a fresh in-memory database.
type testEnv struct {
	db            *gorm.DB
	users         *UserService
	relationships *RelationshipService
	tasks         *TaskService
	points        *PointsService
	gifts         *GiftService
	anniversaries *AnniversaryService
	pointsRepo    *repository.PointsRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.NewDB(":memory:")
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	giftRepo := repository.NewGiftRepository(db)
	anniversaryRepo := repository.NewAnniversaryRepository(db)

	locks := NewRelationshipLocks()
	points := NewPointsService(pointsRepo, locks)
	anniversaries := NewAnniversaryService(anniversaryRepo, relationshipRepo)

	return &testEnv{
		db:            db,
		users:         NewUserService(userRepo),
		relationships: NewRelationshipService(userRepo, relationshipRepo),
		tasks:         NewTaskService(db, taskRepo, relationshipRepo, points, locks),
		points:        points,
		gifts:         NewGiftService(db, giftRepo, relationshipRepo, points, locks),
		anniversaries: anniversaries,
		pointsRepo:    pointsRepo,
	}
}

func createTestUser(t *testing.T, env *testEnv, username string) *model.User {
	t.Helper()
	user, err := env.users.Register(context.Background(), username, username+"@example.com", username)
	require.NoError(t, err)
	return user
}

// linkCouple registers two users and walks them through the request/accept
// handshake.
func linkCouple(t *testing.T, env *testEnv) (a, b *model.User, rel *model.Relationship) {
	t.Helper()
	ctx := context.Background()

	a = createTestUser(t, env, "alice")
	b = createTestUser(t, env, "bob")

	req, err := env.relationships.SendRequest(ctx, a.ID, b.ID, "be my partner")
	require.NoError(t, err)

	rel, err = env.relationships.AcceptRequest(ctx, b.ID, req.ID)
	require.NoError(t, err)
	return a, b, rel
}

// createApprovedBalance pushes a task through the whole review loop so the
// user ends up with the given balance.
func createApprovedBalance(t *testing.T, env *testEnv, user, reviewer *model.User, points int) {
	t.Helper()
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, user.ID, TaskInput{Title: "earn points", Points: points})
	require.NoError(t, err)
	_, err = env.tasks.ToggleComplete(ctx, user.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.SubmitForReview(ctx, user.ID, task.ID)
	require.NoError(t, err)
	_, err = env.tasks.ApproveTask(ctx, reviewer.ID, task.ID, ReviewInput{})
	require.NoError(t, err)
}
