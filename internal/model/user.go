package model

import "time"

// User is a registered account. Authentication lives outside the core; a user
// record only needs to be addressable and searchable for partner linking.
type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex" json:"username"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
