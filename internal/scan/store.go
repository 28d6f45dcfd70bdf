// Package scan holds the latest fingerprint scan handed over from a scanning
// device to a polling client.
package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saveone/server/internal/model"
)

// DefaultTTL is how long a submitted scan stays readable.
const DefaultTTL = 60 * time.Second

// DefaultType is recorded when a scan arrives without a type.
const DefaultType = "unknown"

var (
	// ErrNoScan is returned when no scan has been submitted since start or the last clear
	ErrNoScan = errors.New("no fingerprint scan available")
	// ErrScanExpired is returned when the held scan is older than the TTL
	ErrScanExpired = errors.New("scan expired")
)

// Store is the single-slot scan buffer.
type Store interface {
	Submit(ctx context.Context, fingerprintID, scanType string) (model.ScanRecord, error)
	Latest(ctx context.Context) (model.ScanRecord, error)
	Clear(ctx context.Context) error
}

// MemoryStore keeps the slot in process memory. Expiry is checked on read;
// nothing is evicted in the background.
type MemoryStore struct {
	mu    sync.Mutex
	rec   model.ScanRecord
	clock clockwork.Clock
	ttl   time.Duration
}

// NewMemoryStore creates an empty store. A nil clock means wall time and a
// non-positive ttl means DefaultTTL.
func NewMemoryStore(clock clockwork.Clock, ttl time.Duration) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{clock: clock, ttl: ttl}
}

// Submit overwrites the slot; the last submission wins.
func (s *MemoryStore) Submit(_ context.Context, fingerprintID, scanType string) (model.ScanRecord, error) {
	if scanType == "" {
		scanType = DefaultType
	}
	rec := model.ScanRecord{
		FingerprintID: fingerprintID,
		Timestamp:     s.clock.Now(),
		Type:          scanType,
	}

	s.mu.Lock()
	s.rec = rec
	s.mu.Unlock()

	return rec, nil
}

// Latest returns the held scan if there is one and it is at most ttl old.
func (s *MemoryStore) Latest(_ context.Context) (model.ScanRecord, error) {
	s.mu.Lock()
	rec := s.rec
	s.mu.Unlock()

	if rec.Empty() {
		return model.ScanRecord{}, ErrNoScan
	}
	if s.clock.Since(rec.Timestamp) > s.ttl {
		return model.ScanRecord{}, ErrScanExpired
	}
	return rec, nil
}

// Clear empties the slot.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.rec = model.ScanRecord{}
	s.mu.Unlock()
	return nil
}
