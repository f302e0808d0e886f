package model

import "time"

// Anniversary is a date a couple wants remembered, optionally recurring
// every year.
type Anniversary struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	RelationshipID string    `gorm:"index" json:"relationshipId"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Date           time.Time `json:"date"`
	IsYearly       bool      `gorm:"default:false" json:"isYearly"`
	ReminderDays   int       `json:"reminderDays,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
