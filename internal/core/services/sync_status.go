package services

import (
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/workers"
)

// SyncState summarises write-through outcomes for one user so a client can
// show a sync-failed indicator.
type SyncState struct {
	Healthy       bool       `json:"healthy"`
	Succeeded     int        `json:"succeeded"`
	Failed        int        `json:"failed"`
	LastOp        string     `json:"last_op,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
}

type SyncStatus struct {
	clock func() time.Time

	mu     sync.Mutex
	byUser map[string]*SyncState
}

func NewSyncStatus(clock func() time.Time) *SyncStatus {
	if clock == nil {
		clock = time.Now
	}
	return &SyncStatus{clock: clock, byUser: make(map[string]*SyncState)}
}

func (s *SyncStatus) stateLocked(userID string) *SyncState {
	st, ok := s.byUser[userID]
	if !ok {
		st = &SyncState{Healthy: true}
		s.byUser[userID] = st
	}
	return st
}

func (s *SyncStatus) RecordSuccess(job workers.SyncJob) {
	now := s.clock().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateLocked(job.UserID)
	st.Healthy = true
	st.Succeeded++
	st.LastOp = job.Op
	st.LastSuccessAt = &now
}

func (s *SyncStatus) RecordFailure(job workers.SyncJob, err error) {
	now := s.clock().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateLocked(job.UserID)
	st.Healthy = false
	st.Failed++
	st.LastOp = job.Op
	st.LastError = err.Error()
	st.LastFailureAt = &now
}

// For returns a copy of the state of userID. Unknown users are healthy.
func (s *SyncStatus) For(userID string) SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byUser[userID]
	if !ok {
		return SyncState{Healthy: true}
	}
	return *st
}
