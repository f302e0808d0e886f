package service

import "sync"

// RelationshipLocks hands out one mutex per relationship id. Review
// decisions and ledger mutations for a couple are serialized through it, so
// two reviewers cannot race on the same task and two redemptions cannot both
// spend a stale balance. One instance is shared across all services.
type RelationshipLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRelationshipLocks() *RelationshipLocks {
	return &RelationshipLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *RelationshipLocks) get(relationshipID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[relationshipID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[relationshipID] = lock
	}
	return lock
}
