package core

// upload_limiter.go bounds how many imports run at once.
//
// Each import holds a slot for the whole decode/validate/persist cycle. When
// every slot is taken, callers wait up to maxWait and then fail with
// ErrTooManyUploads. WaitForDrain lets shutdown wait for running imports.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyUploads is returned when all import slots are occupied and the
// wait timeout expires. Clients should retry after a short delay.
var ErrTooManyUploads = errors.New("too many uploads in progress")

// DefaultMaxConcurrentUploads is the default limit for parallel imports.
const DefaultMaxConcurrentUploads = 5

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

// UploadLimiter is a counting semaphore over import slots.
type UploadLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu      sync.Mutex
	active  int
	waiting int
	drained chan struct{} // closed while active+waiting == 0
}

// NewUploadLimiter creates a limiter that allows at most maxConcurrent
// simultaneous imports. Non-positive arguments select the defaults.
func NewUploadLimiter(maxConcurrent int, maxWait time.Duration) *UploadLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentUploads
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	drained := make(chan struct{})
	close(drained)

	return &UploadLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
		drained: drained,
	}
}

// Acquire waits for a free slot. It returns ErrTooManyUploads when maxWait
// elapses first, or ctx's error if ctx is done. The caller must call Release
// after a successful Acquire.
//
// A caller counts against WaitForDrain from the moment it enters Acquire, so
// a drain never completes between taking the slot and becoming active.
func (l *UploadLimiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	if l.active+l.waiting == 0 {
		l.drained = make(chan struct{})
	}
	l.waiting++
	l.mu.Unlock()

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.waiting--
		l.active++
		l.mu.Unlock()
		return nil
	case <-timer.C:
		l.leave(false)
		return ErrTooManyUploads
	case <-ctx.Done():
		l.leave(false)
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire.
func (l *UploadLimiter) Release() {
	l.leave(true)
	<-l.slots
}

func (l *UploadLimiter) leave(active bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if active {
		l.active--
	} else {
		l.waiting--
	}
	if l.active+l.waiting == 0 {
		close(l.drained)
	}
}

// ActiveCount returns the number of running imports.
func (l *UploadLimiter) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// WaitingCount returns the number of imports queued for a slot.
func (l *UploadLimiter) WaitingCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.waiting
}

// MaxConcurrent returns the slot count.
func (l *UploadLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// Available returns the number of free slots.
func (l *UploadLimiter) Available() int {
	return cap(l.slots) - len(l.slots)
}

// WaitForDrain blocks until no import is running or queued, or ctx is done.
func (l *UploadLimiter) WaitForDrain(ctx context.Context) error {
	l.mu.Lock()
	drained := l.drained
	l.mu.Unlock()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UploadLimiterStatus is a snapshot of the limiter for /api/status.
type UploadLimiterStatus struct {
	Active        int `json:"active"`
	Waiting       int `json:"waiting"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *UploadLimiter) Status() UploadLimiterStatus {
	l.mu.Lock()
	active, waiting := l.active, l.waiting
	l.mu.Unlock()

	return UploadLimiterStatus{
		Active:        active,
		Waiting:       waiting,
		Available:     l.Available(),
		MaxConcurrent: l.MaxConcurrent(),
	}
}
