package model

import "time"

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// PartnerTag says who a task is about.
type PartnerTag string

const (
	TagSelf    PartnerTag = "self"
	TagPartner PartnerTag = "partner"
	TagBoth    PartnerTag = "both"
)

// LoveType categorizes the gesture behind a task.
type LoveType string

const (
	LoveGift    LoveType = "gift"
	LoveDate    LoveType = "date"
	LoveCare    LoveType = "care"
	LoveMessage LoveType = "message"
	LoveOther   LoveType = "other"
)

// ReviewStatus is the position of a task in the review workflow.
type ReviewStatus string

const (
	ReviewNotSubmitted ReviewStatus = "not_submitted"
	ReviewPending      ReviewStatus = "pending"
	ReviewApproved     ReviewStatus = "approved"
	ReviewRejected     ReviewStatus = "rejected"
)

// Task is a single love task. Its review fields only ever change along the
// not_submitted -> pending -> approved/rejected workflow; a rejected task
// re-enters the workflow through an explicit owner action.
type Task struct {
	ID             string       `gorm:"primaryKey" json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Completed      bool         `gorm:"default:false" json:"completed"`
	Priority       Priority     `gorm:"default:medium" json:"priority"`
	PartnerTag     PartnerTag   `gorm:"default:self" json:"partnerTag"`
	LoveType       LoveType     `gorm:"default:other" json:"loveType"`
	DueDate        *time.Time   `json:"dueDate,omitempty"`
	CreatedByID    string       `gorm:"index" json:"createdById"`
	RelationshipID string       `gorm:"index" json:"relationshipId"`
	IsShared       bool         `gorm:"default:false" json:"isShared"`
	Points         int          `json:"points"`
	ReviewStatus   ReviewStatus `gorm:"default:not_submitted;index" json:"reviewStatus"`
	ReviewerID     string       `json:"reviewerId,omitempty"`
	ReviewedAt     *time.Time   `json:"reviewedAt,omitempty"`
	ReviewComment  string       `json:"reviewComment,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
