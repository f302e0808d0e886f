package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lovetasks/internal/model"
	"lovetasks/internal/repository"
	"lovetasks/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := repository.NewDB(":memory:")
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	giftRepo := repository.NewGiftRepository(db)
	anniversaryRepo := repository.NewAnniversaryRepository(db)

	locks := service.NewRelationshipLocks()
	points := service.NewPointsService(pointsRepo, locks)

	return SetupRouter(Services{
		Users:         service.NewUserService(userRepo),
		Relationships: service.NewRelationshipService(userRepo, relationshipRepo),
		Tasks:         service.NewTaskService(db, taskRepo, relationshipRepo, points, locks),
		Points:        points,
		Gifts:         service.NewGiftService(db, giftRepo, relationshipRepo, points, locks),
		Anniversaries: service.NewAnniversaryService(anniversaryRepo, relationshipRepo),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, userID string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestRouter_FullReviewAndRedemptionLoop(t *testing.T) {
	router := newTestRouter(t)

	var alice, bob model.User
	rec := doJSON(t, router, http.MethodPost, "/users", "", map[string]string{
		"username": "alice", "email": "alice@example.com",
	}, &alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/users", "", map[string]string{
		"username": "bob", "email": "bob@example.com",
	}, &bob)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Link the couple.
	var request model.RelationshipRequest
	rec = doJSON(t, router, http.MethodPost, "/relationship/requests", alice.ID, map[string]string{
		"receiverId": bob.ID, "message": "hi",
	}, &request)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/relationship/requests/"+request.ID+"/accept", bob.ID, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Alice works a task through the review loop.
	var task model.Task
	rec = doJSON(t, router, http.MethodPost, "/tasks", alice.ID, map[string]interface{}{
		"title": "Buy flowers", "points": 20,
	}, &task)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/tasks/"+task.ID+"/toggle", alice.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/tasks/"+task.ID+"/submit", alice.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Self-review is refused at the boundary.
	rec = doJSON(t, router, http.MethodPost, "/tasks/"+task.ID+"/approve", alice.ID, map[string]interface{}{"points": 25}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Bob sees it in his review queue and approves with an override.
	var queue struct {
		Tasks []model.Task `json:"tasks"`
	}
	rec = doJSON(t, router, http.MethodGet, "/tasks/review", bob.ID, nil, &queue)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, queue.Tasks, 1)

	var approved model.Task
	rec = doJSON(t, router, http.MethodPost, "/tasks/"+task.ID+"/approve", bob.ID, map[string]interface{}{
		"points": 25, "comment": "lovely",
	}, &approved)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ReviewApproved, approved.ReviewStatus)
	assert.Equal(t, 25, approved.Points)

	var balance struct {
		Balance int `json:"balance"`
	}
	rec = doJSON(t, router, http.MethodGet, "/points/balance", alice.ID, nil, &balance)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, balance.Balance)

	// 25 points do not buy the cheapest gift.
	var catalog struct {
		Gifts []model.Gift `json:"gifts"`
	}
	rec = doJSON(t, router, http.MethodGet, "/gifts", "", nil, &catalog)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, catalog.Gifts)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/gifts/%s/redeem", catalog.Gifts[0].ID), alice.ID, nil, nil)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestRouter_IdentityRequired(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/tasks", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/tasks", "ghost", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RejectRequiresComment(t *testing.T) {
	router := newTestRouter(t)

	var alice, bob model.User
	doJSON(t, router, http.MethodPost, "/users", "", map[string]string{"username": "alice", "email": "a@example.com"}, &alice)
	doJSON(t, router, http.MethodPost, "/users", "", map[string]string{"username": "bob", "email": "b@example.com"}, &bob)

	var request model.RelationshipRequest
	doJSON(t, router, http.MethodPost, "/relationship/requests", alice.ID, map[string]string{"receiverId": bob.ID}, &request)
	doJSON(t, router, http.MethodPost, "/relationship/requests/"+request.ID+"/accept", bob.ID, nil, nil)

	var task model.Task
	doJSON(t, router, http.MethodPost, "/tasks", alice.ID, map[string]interface{}{"title": "Tidy up"}, &task)
	doJSON(t, router, http.MethodPost, "/tasks/"+task.ID+"/toggle", alice.ID, nil, nil)
	doJSON(t, router, http.MethodPost, "/tasks/"+task.ID+"/submit", alice.ID, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/tasks/"+task.ID+"/reject", bob.ID, map[string]string{"comment": ""}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/tasks/"+task.ID+"/reject", bob.ID, map[string]string{"comment": "not done"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
