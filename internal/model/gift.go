package model

import "time"

// GiftType is the kind of virtual gift.
type GiftType string

const (
	GiftFlower GiftType = "flower"
	GiftPet    GiftType = "pet"
	GiftRing   GiftType = "ring"
	GiftOther  GiftType = "other"
)

// Gift is an immutable catalog entry.
type Gift struct {
	ID             string   `gorm:"primaryKey" json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Type           GiftType `json:"type"`
	RequiredPoints int      `json:"requiredPoints"`
	ImageURL       string   `json:"imageUrl,omitempty"`
}

// RedeemedGift records a catalog gift bought with points. The embedded Gift
// is a snapshot taken at redemption time; PointsUsed stays fixed even if the
// catalog price later changes. SentTo, once set, never changes.
type RedeemedGift struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	GiftID         string     `gorm:"index" json:"giftId"`
	UserID         string     `gorm:"index" json:"userId"`
	RelationshipID string     `gorm:"index" json:"relationshipId"`
	PointsUsed     int        `json:"pointsUsed"`
	RedeemedAt     time.Time  `json:"redeemedAt"`
	Gift           Gift       `gorm:"embedded;embeddedPrefix:snapshot_" json:"gift"`
	SentTo         string     `json:"sentTo,omitempty"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
}
