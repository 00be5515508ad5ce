package auth

import (
	"sync"
	"time"
)

type loginAttempt struct {
	count       int
	lastAttempt time.Time
	lockedUntil time.Time
}

// LoginLimiter locks a username out after too many consecutive failed logins
// inside the lockout window. A zero maxAttempts disables it.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*loginAttempt
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

func NewLoginLimiter(maxAttempts int, lockout time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts:    make(map[string]*loginAttempt),
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

// Check returns ErrLockedOut while the username is locked.
func (l *LoginLimiter) Check(username string) error {
	if l == nil || l.maxAttempts <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	attempt, ok := l.attempts[username]
	if !ok {
		return nil
	}
	if l.now().Before(attempt.lockedUntil) {
		return ErrLockedOut
	}
	return nil
}

func (l *LoginLimiter) RecordFailure(username string) (locked bool) {
	if l == nil || l.maxAttempts <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	attempt, ok := l.attempts[username]
	if !ok {
		attempt = &loginAttempt{}
		l.attempts[username] = attempt
	}

	if now.Sub(attempt.lastAttempt) > l.lockout {
		attempt.count = 0
	}

	attempt.count++
	attempt.lastAttempt = now

	if attempt.count >= l.maxAttempts {
		attempt.lockedUntil = now.Add(l.lockout)
		attempt.count = 0
		return true
	}
	return false
}

func (l *LoginLimiter) RecordSuccess(username string) {
	if l == nil || l.maxAttempts <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, username)
}

// Prune drops entries that are neither locked nor inside the counting window.
func (l *LoginLimiter) Prune() {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for username, attempt := range l.attempts {
		if now.After(attempt.lockedUntil) && now.Sub(attempt.lastAttempt) > l.lockout {
			delete(l.attempts, username)
		}
	}
}
