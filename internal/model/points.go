package model

import "time"

// PointHistory is one entry in the append-only points ledger. The integer
// primary key doubles as the append sequence, so the newest record for a user
// is the one with the largest ID and ties in CreatedAt resolve themselves.
type PointHistory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"index" json:"userId"`
	RelationshipID string    `gorm:"index" json:"relationshipId"`
	PointsChange   int       `json:"pointsChange"`
	TotalPoints    int       `json:"totalPoints"`
	Reason         string    `json:"reason"`
	TodoID         string    `json:"todoId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
