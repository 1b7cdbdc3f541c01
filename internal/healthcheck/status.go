package healthcheck

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errNotChecked = errors.New("model has not been checked yet")

// Status is the last health check result. It starts unhealthy and
// unchecked.
type Status struct {
	mutex     sync.Mutex
	checked   bool
	healthy   bool
	lastErr   error
	checkedAt time.Time
}

func NewStatus() *Status {
	return &Status{lastErr: errNotChecked}
}

// Set records a probe result and reports whether health changed. The first
// result always counts as a change.
func (s *Status) Set(err error, at time.Time) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	healthy := err == nil
	changed := !s.checked || healthy != s.healthy
	s.checked = true
	s.healthy = healthy
	s.lastErr = err
	s.checkedAt = at

	return changed
}

func (s *Status) IsHealthy() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.healthy
}

// CheckedAt returns when the last probe ran. Zero before the first probe.
func (s *Status) CheckedAt() time.Time {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.checkedAt
}

// CheckReadiness returns nil when the last probe succeeded.
func (s *Status) CheckReadiness(_ context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.healthy {
		return nil
	}
	return s.lastErr
}
