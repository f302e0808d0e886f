package model

import "time"

// RequestStatus tracks the outcome of a relationship request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Relationship pairs exactly two users. It is the scoping boundary for
// tasks, points, gifts and anniversaries.
type Relationship struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	User1ID   string    `gorm:"index" json:"user1Id"`
	User2ID   string    `gorm:"index" json:"user2Id"`
	StartDate time.Time `json:"startDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Member reports whether userID is one of the two partners.
func (r *Relationship) Member(userID string) bool {
	return r.User1ID == userID || r.User2ID == userID
}

// PartnerOf returns the other side of the relationship, or "" if userID is
// not a member.
func (r *Relationship) PartnerOf(userID string) string {
	switch userID {
	case r.User1ID:
		return r.User2ID
	case r.User2ID:
		return r.User1ID
	default:
		return ""
	}
}

// RelationshipRequest is a pending invitation from one user to another.
type RelationshipRequest struct {
	ID         string        `gorm:"primaryKey" json:"id"`
	SenderID   string        `gorm:"index" json:"senderId"`
	ReceiverID string        `gorm:"index" json:"receiverId"`
	Message    string        `json:"message,omitempty"`
	Status     RequestStatus `gorm:"default:pending" json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
