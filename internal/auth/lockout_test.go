package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestLimiter(max int, lockout time.Duration) (*LoginLimiter, *time.Time) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(max, lockout)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLoginLimiter_LocksAfterMaxFailures(t *testing.T) {
	l, now := newTestLimiter(3, time.Minute)

	require.False(t, l.RecordFailure("alice"))
	require.False(t, l.RecordFailure("alice"))
	require.NoError(t, l.Check("alice"))

	require.True(t, l.RecordFailure("alice"))
	require.ErrorIs(t, l.Check("alice"), ErrLockedOut)
	require.NoError(t, l.Check("bob"), "other usernames are unaffected")

	*now = now.Add(time.Minute + time.Second)
	require.NoError(t, l.Check("alice"))
}

func TestLoginLimiter_SuccessResets(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)

	require.False(t, l.RecordFailure("alice"))
	l.RecordSuccess("alice")
	require.False(t, l.RecordFailure("alice"))
	require.NoError(t, l.Check("alice"))
}

func TestLoginLimiter_WindowResetsCount(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	require.False(t, l.RecordFailure("alice"))
	*now = now.Add(2 * time.Minute)
	require.False(t, l.RecordFailure("alice"))
	require.NoError(t, l.Check("alice"))
}

func TestLoginLimiter_Disabled(t *testing.T) {
	l := NewLoginLimiter(0, time.Minute)
	for i := 0; i < 10; i++ {
		require.False(t, l.RecordFailure("alice"))
	}
	require.NoError(t, l.Check("alice"))

	var nilLimiter *LoginLimiter
	require.NoError(t, nilLimiter.Check("alice"))
}

func TestLoginLimiter_Prune(t *testing.T) {
	l, now := newTestLimiter(5, time.Minute)
	l.RecordFailure("alice")

	*now = now.Add(2 * time.Minute)
	l.Prune()
	require.Empty(t, l.attempts)
}
