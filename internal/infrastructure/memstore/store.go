package memstore

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/email-otp-api/internal/domain"
)

// DefaultTTL is how long an issued code stays verifiable.
const DefaultTTL = 10 * time.Minute

// Store is the process-wide code store: a mutex-guarded map keyed by email
// plus a min-heap of expiration deadlines. Every Put bumps a per-record
// generation; expiry entries carry the generation they were armed for, so a
// deadline left over from a replaced record can never delete its successor.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	records  map[string]*entry
	expiries expiryHeap
	gen      uint64
	now      func() time.Time
}

type entry struct {
	rec      domain.VerificationCode
	gen      uint64
	deadline time.Time
}

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		records: make(map[string]*entry),
		now:     time.Now,
	}
}

// TTL returns the configured code lifetime.
func (s *Store) TTL() time.Duration { return s.ttl }

// Put stores rec keyed by its email, replacing any outstanding record for the
// same address, and arms an expiry deadline at IssuedAt+TTL.
func (s *Store) Put(rec domain.VerificationCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	e := &entry{
		rec:      rec,
		gen:      s.gen,
		deadline: rec.IssuedAt.Add(s.ttl),
	}
	s.records[rec.Email] = e
	heap.Push(&s.expiries, expiryItem{email: rec.Email, gen: e.gen, deadline: e.deadline})
}

// Get returns the outstanding record for email, if any. A record past its
// deadline is removed on access and reported absent, so correctness does not
// depend on the sweeper having run.
func (s *Store) Get(email string) (domain.VerificationCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[email]
	if !ok {
		return domain.VerificationCode{}, false
	}
	if !e.deadline.After(s.now()) {
		delete(s.records, email)
		return domain.VerificationCode{}, false
	}
	return e.rec, true
}

// Consume atomically compares code against the outstanding record for email
// and deletes the record on match, returning it. Expired or absent records
// yield ErrNotFound; a wrong code yields ErrCodeMismatch and leaves the record
// in place so the caller may retry until expiry.
func (s *Store) Consume(email, code string) (domain.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[email]
	if !ok || !e.deadline.After(s.now()) {
		delete(s.records, email)
		return domain.VerificationCode{}, fmt.Errorf("no outstanding code for %s: %w", email, domain.ErrNotFound)
	}
	if e.rec.Code != code {
		return domain.VerificationCode{}, fmt.Errorf("code does not match: %w", domain.ErrCodeMismatch)
	}
	delete(s.records, email)
	return e.rec, nil
}

// Delete removes the record for email, if present.
func (s *Store) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
}

// MarkOpened flips the opened flag on the first live, unopened record whose
// tracking id matches. At most one record changes per call. Returns whether
// anything changed.
func (s *Store) MarkOpened(trackingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, e := range s.records {
		if e.rec.TrackingID == trackingID && !e.rec.Opened && e.deadline.After(now) {
			e.rec.Opened = true
			return true
		}
	}
	return false
}

// SweepExpired pops every deadline at or before now and deletes the records
// they were armed for. Entries whose generation no longer matches the live
// record are stale (the record was replaced) and are skipped. Returns the
// number of records removed.
func (s *Store) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for s.expiries.Len() > 0 && !s.expiries[0].deadline.After(now) {
		item := heap.Pop(&s.expiries).(expiryItem)
		if e, ok := s.records[item.email]; ok && e.gen == item.gen {
			delete(s.records, item.email)
			removed++
		}
	}
	return removed
}

// Run sweeps expired records on a fixed interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.SweepExpired(now); n > 0 {
				slog.Debug("swept expired verification codes", "count", n)
			}
		}
	}
}

// Len reports the number of live records (expired-but-unswept included).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// expiryItem is one armed deadline in the expiry heap.
type expiryItem struct {
	email    string
	gen      uint64
	deadline time.Time
}

type expiryHeap []expiryItem

func (h expiryHeap) Len() int            { return len(h) }
func (h expiryHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h expiryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *expiryHeap) Push(x interface{}) { *h = append(*h, x.(expiryItem)) }
func (h *expiryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
