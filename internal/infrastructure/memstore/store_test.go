package memstore

import (
	"errors"
	"testing"
	"time"

	"github.com/email-otp-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(email, code, trackingID string, issuedAt time.Time) domain.VerificationCode {
	return domain.VerificationCode{
		Email:      email,
		Code:       code,
		TrackingID: trackingID,
		IssuedAt:   issuedAt,
	}
}

func TestPutGet(t *testing.T) {
	s := New(DefaultTTL)
	s.Put(record("a@b.com", "482913", "tid-1", time.Now()))

	got, ok := s.Get("a@b.com")
	require.True(t, ok)
	assert.Equal(t, "482913", got.Code)
	assert.False(t, got.Opened)

	_, ok = s.Get("other@b.com")
	assert.False(t, ok)
}

func TestPut_ReplacesOutstandingRecord(t *testing.T) {
	s := New(DefaultTTL)
	s.Put(record("a@b.com", "111111", "tid-1", time.Now()))
	s.Put(record("a@b.com", "222222", "tid-2", time.Now()))

	require.Equal(t, 1, s.Len())

	_, err := s.Consume("a@b.com", "111111")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCodeMismatch))

	got, err := s.Consume("a@b.com", "222222")
	require.NoError(t, err)
	assert.Equal(t, "tid-2", got.TrackingID)
}

func TestConsume_SingleUse(t *testing.T) {
	s := New(DefaultTTL)
	s.Put(record("a@b.com", "482913", "tid-1", time.Now()))

	_, err := s.Consume("a@b.com", "482913")
	require.NoError(t, err)

	_, err = s.Consume("a@b.com", "482913")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConsume_MismatchKeepsRecord(t *testing.T) {
	s := New(DefaultTTL)
	s.Put(record("a@b.com", "482913", "tid-1", time.Now()))

	_, err := s.Consume("a@b.com", "000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCodeMismatch))

	got, err := s.Consume("a@b.com", "482913")
	require.NoError(t, err)
	assert.Equal(t, "482913", got.Code)
}

func TestGet_LazyExpiry(t *testing.T) {
	s := New(DefaultTTL)
	s.Put(record("a@b.com", "482913", "tid-1", time.Now()))

	// No sweeper has run; the deadline alone must make the record unreachable.
	s.now = func() time.Time { return time.Now().Add(DefaultTTL + time.Second) }

	_, ok := s.Get("a@b.com")
	assert.False(t, ok)

	_, err := s.Consume("a@b.com", "482913")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSweepExpired(t *testing.T) {
	s := New(DefaultTTL)
	now := time.Now()
	s.Put(record("old@b.com", "111111", "tid-1", now.Add(-DefaultTTL-time.Minute)))
	s.Put(record("new@b.com", "222222", "tid-2", now))

	removed := s.SweepExpired(now)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Len())

	_, ok := s.Get("new@b.com")
	assert.True(t, ok)
}

func TestSweepExpired_StaleDeadlineDoesNotKillReplacement(t *testing.T) {
	s := New(DefaultTTL)
	now := time.Now()

	// First issuance, long enough ago that its deadline is due.
	s.Put(record("a@b.com", "111111", "tid-1", now.Add(-DefaultTTL-time.Minute)))
	// Replacement issued just now; the first deadline is still in the heap.
	s.Put(record("a@b.com", "222222", "tid-2", now))

	removed := s.SweepExpired(now)
	assert.Equal(t, 0, removed)

	got, ok := s.Get("a@b.com")
	require.True(t, ok)
	assert.Equal(t, "222222", got.Code)
}

func TestMarkOpened(t *testing.T) {
	s := New(DefaultTTL)
	s.Put(record("a@b.com", "482913", "tid-1", time.Now()))

	assert.False(t, s.MarkOpened("unknown-tid"))

	assert.True(t, s.MarkOpened("tid-1"))
	got, ok := s.Get("a@b.com")
	require.True(t, ok)
	assert.True(t, got.Opened)

	// Second fetch of the pixel is a no-op.
	assert.False(t, s.MarkOpened("tid-1"))
}

func TestMarkOpened_IgnoresExpiredRecords(t *testing.T) {
	s := New(DefaultTTL)
	s.Put(record("a@b.com", "482913", "tid-1", time.Now().Add(-DefaultTTL-time.Minute)))

	assert.False(t, s.MarkOpened("tid-1"))
}

func TestDelete(t *testing.T) {
	s := New(DefaultTTL)
	s.Put(record("a@b.com", "482913", "tid-1", time.Now()))
	s.Delete("a@b.com")

	_, ok := s.Get("a@b.com")
	assert.False(t, ok)
}
