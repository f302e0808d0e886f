package service

import "errors"

// Precondition failures. Every one of these is recoverable and user-facing;
// the API layer turns them into 4xx responses with the message intact.
var (
	ErrTitleRequired         = errors.New("title is required")
	ErrNoActiveRelationship  = errors.New("no active relationship")
	ErrNotCreator            = errors.New("only the task creator may do this")
	ErrNotReviewer           = errors.New("the task creator cannot review their own task")
	ErrNotRelationshipMember = errors.New("user is not a member of this relationship")
	ErrInvalidState          = errors.New("task is not in a valid state for this transition")
	ErrTaskUnderReview       = errors.New("task is under review")
	ErrNotCompleted          = errors.New("task must be completed before review")
	ErrMissingComment        = errors.New("a comment is required when rejecting")
	ErrPointsOutOfRange      = errors.New("review points must be between 1 and 100")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInsufficientPoints    = errors.New("not enough points")
	ErrAlreadySent           = errors.New("gift was already sent")
	ErrNotOwner              = errors.New("gift is not owned by this user")
	ErrNotPartner            = errors.New("recipient is not the current partner")
	ErrSelfRequest           = errors.New("cannot send a relationship request to yourself")
	ErrDuplicateRequest      = errors.New("a pending request already exists between these users")
	ErrAlreadyLinked         = errors.New("user already has a partner")
	ErrNotReceiver           = errors.New("only the request receiver may respond")
	ErrRequestClosed         = errors.New("request was already answered")
)
