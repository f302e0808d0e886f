package api

import (
	"net/http"

	"lovetasks/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Users         *service.UserService
	Relationships *service.RelationshipService
	Tasks         *service.TaskService
	Points        *service.PointsService
	Gifts         *service.GiftService
	Anniversaries *service.AnniversaryService
}

// SetupRouter builds the HTTP surface with identity resolution in front.
func SetupRouter(svc Services) http.Handler {
	mux := http.NewServeMux()

	userHandler := NewUserHandler(svc.Users)
	relationshipHandler := NewRelationshipHandler(svc.Relationships)
	taskHandler := NewTaskHandler(svc.Tasks)
	pointsHandler := NewPointsHandler(svc.Points)
	giftHandler := NewGiftHandler(svc.Gifts)
	anniversaryHandler := NewAnniversaryHandler(svc.Anniversaries)

	mux.HandleFunc("POST /users", userHandler.Register)
	mux.HandleFunc("GET /users/search", userHandler.Search)

	mux.HandleFunc("GET /relationship", relationshipHandler.Current)
	mux.HandleFunc("POST /relationship/requests", relationshipHandler.SendRequest)
	mux.HandleFunc("GET /relationship/requests", relationshipHandler.PendingRequests)
	mux.HandleFunc("POST /relationship/requests/{id}/accept", relationshipHandler.AcceptRequest)
	mux.HandleFunc("POST /relationship/requests/{id}/reject", relationshipHandler.RejectRequest)

	mux.HandleFunc("POST /tasks", taskHandler.Create)
	mux.HandleFunc("GET /tasks", taskHandler.List)
	mux.HandleFunc("GET /tasks/review", taskHandler.PendingReview)
	mux.HandleFunc("GET /tasks/{id}", taskHandler.Get)
	mux.HandleFunc("PUT /tasks/{id}", taskHandler.Update)
	mux.HandleFunc("DELETE /tasks/{id}", taskHandler.Delete)
	mux.HandleFunc("POST /tasks/{id}/toggle", taskHandler.Toggle)
	mux.HandleFunc("POST /tasks/{id}/submit", taskHandler.Submit)
	mux.HandleFunc("POST /tasks/{id}/approve", taskHandler.Approve)
	mux.HandleFunc("POST /tasks/{id}/reject", taskHandler.Reject)

	mux.HandleFunc("GET /points/balance", pointsHandler.Balance)
	mux.HandleFunc("GET /points/history", pointsHandler.History)

	mux.HandleFunc("GET /gifts", giftHandler.Catalog)
	mux.HandleFunc("POST /gifts/{id}/redeem", giftHandler.Redeem)
	mux.HandleFunc("GET /gifts/redeemed", giftHandler.Unsent)
	mux.HandleFunc("GET /gifts/received", giftHandler.Received)
	mux.HandleFunc("POST /gifts/redeemed/{id}/send", giftHandler.Send)

	mux.HandleFunc("GET /anniversaries", anniversaryHandler.List)
	mux.HandleFunc("GET /anniversaries/upcoming", anniversaryHandler.Upcoming)
	mux.HandleFunc("POST /anniversaries", anniversaryHandler.Create)
	mux.HandleFunc("DELETE /anniversaries/{id}", anniversaryHandler.Delete)

	return withIdentity(svc.Users, svc.Relationships, mux)
}
