// Package history keeps the bounded, newest-first log of generated passwords
// and its persisted snapshot.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Store owns the history log for one session.
//
// Entries are addressed by position for user-facing operations, but the
// delayed "copied" reversal is keyed by entry ID so that records, removals
// and clears that happen before it fires cannot redirect it.
type Store struct {
	kv        ports.KeyValueStore
	scheduler ports.Scheduler
	logger    ports.Logger
	key       string
	capacity  int
	delay     time.Duration

	mu      sync.Mutex
	entries []domain.HistoryEntry
	pending map[string]pendingReset
	seq     uint64
	closed  bool
}

type pendingReset struct {
	seq   uint64
	timer ports.Timer
}

// NewStore builds an empty store. Call Load to rehydrate the persisted log.
func NewStore(kv ports.KeyValueStore, scheduler ports.Scheduler, logger ports.Logger) *Store {
	return &Store{
		kv:        kv,
		scheduler: scheduler,
		logger:    logger,
		key:       domain.HistoryStorageKey,
		capacity:  domain.HistoryCapacity,
		delay:     domain.CopiedResetDelay,
		pending:   make(map[string]pendingReset),
	}
}

// Load replaces the in-memory log with the persisted snapshot. A missing,
// unreadable or malformed snapshot yields an empty log; the problem is logged
// and never returned.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopAllLocked()
	s.entries = nil

	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("history snapshot unreadable, starting empty", map[string]interface{}{"error": err.Error()})
		return
	}
	if len(raw) == 0 {
		return
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("history snapshot malformed, starting empty", map[string]interface{}{"error": err.Error()})
		return
	}

	kept := make([]domain.HistoryEntry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	dropped := 0
	for _, e := range entries {
		if e.Password == "" {
			dropped++
			continue
		}
		if e.ID == "" || seen[e.ID] {
			e.ID = domain.NewHistoryID()
		}
		seen[e.ID] = true
		if e.Strength < 0 || e.Strength > domain.MaxStrengthScore {
			e.Strength = domain.Score(e.Password)
		}
		e.Copied = false
		kept = append(kept, e)
	}
	if dropped > 0 {
		s.logger.Warn("history snapshot has malformed entries, skipping them", map[string]interface{}{"dropped": dropped})
	}
	if len(kept) > s.capacity {
		kept = kept[:s.capacity]
	}
	s.entries = kept
	s.logger.Debug("history loaded", map[string]interface{}{"entries": len(kept)})
}

// Record prepends entry, evicts anything beyond capacity and persists.
func (s *Store) Record(ctx context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = domain.NewHistoryID()
	}
	entry.Copied = false

	next := make([]domain.HistoryEntry, 0, s.capacity)
	next = append(next, entry)
	for _, e := range s.entries {
		if len(next) == s.capacity {
			s.stopLocked(e.ID)
			continue
		}
		next = append(next, e)
	}
	s.entries = next
	return s.persistLocked(ctx)
}

// MarkCopied flags the entry currently at index as copied and schedules the
// flag to clear after the reset delay.
func (s *Store) MarkCopied(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndexLocked(index); err != nil {
		return err
	}
	s.markLocked(index)
	return nil
}

// MarkCopiedByID is MarkCopied for callers that captured the entry's ID
// earlier. It returns domain.ErrEntryNotFound when the entry has since left
// the log.
func (s *Store) MarkCopiedByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
	}
	s.markLocked(i)
	return nil
}

// Remove deletes the entry at index and persists.
func (s *Store) Remove(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndexLocked(index); err != nil {
		return err
	}
	s.stopLocked(s.entries[index].ID)

	next := make([]domain.HistoryEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:index]...)
	next = append(next, s.entries[index+1:]...)
	s.entries = next
	return s.persistLocked(ctx)
}

// Clear empties the log and deletes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopAllLocked()
	s.entries = nil
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("delete history snapshot: %w", err)
	}
	return nil
}

// Entries returns a copy of the log, newest first.
func (s *Store) Entries() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// At returns the entry at index.
func (s *Store) At(index int) (domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndexLocked(index); err != nil {
		return domain.HistoryEntry{}, err
	}
	return s.entries[index], nil
}

// Entry looks an entry up by ID.
func (s *Store) Entry(id string) (domain.HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOfLocked(id); i >= 0 {
		return s.entries[i], true
	}
	return domain.HistoryEntry{}, false
}

// Len reports the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Export writes the log to w as JSON lines, newest first.
func (s *Store) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, entry := range s.Entries() {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("export history: %w", err)
		}
	}
	return nil
}

// Close discards the store. Pending resets are stopped, and any that still
// fire afterwards do nothing.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopAllLocked()
	s.closed = true
}

func (s *Store) markLocked(index int) {
	if s.closed {
		return
	}
	id := s.entries[index].ID
	s.entries[index].Copied = true

	s.stopLocked(id)
	s.seq++
	seq := s.seq
	timer := s.scheduler.AfterFunc(s.delay, func() { s.resetCopied(id, seq) })
	s.pending[id] = pendingReset{seq: seq, timer: timer}
}

func (s *Store) resetCopied(id string, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	p, ok := s.pending[id]
	if !ok || p.seq != seq {
		return
	}
	delete(s.pending, id)
	if i := s.indexOfLocked(id); i >= 0 {
		s.entries[i].Copied = false
	}
}

func (s *Store) stopLocked(id string) {
	if p, ok := s.pending[id]; ok {
		p.timer.Stop()
		delete(s.pending, id)
	}
}

func (s *Store) stopAllLocked() {
	for id := range s.pending {
		s.stopLocked(id)
	}
}

func (s *Store) indexOfLocked(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) checkIndexLocked(index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("%w: %d (have %d)", domain.ErrIndexOutOfRange, index, len(s.entries))
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	snapshot := s.entries
	if snapshot == nil {
		snapshot = []domain.HistoryEntry{}
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode history snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("persist history snapshot: %w", err)
	}
	return nil
}
