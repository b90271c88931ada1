// Package session coordinates one interactive password-generation session:
// the current options and password, clipboard copies, and the history log.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/doeshing/passgen-go/internal/application/generator"
	"github.com/doeshing/passgen-go/internal/application/history"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Service holds session state. History may be nil when recording is disabled.
type Service struct {
	Generator *generator.Service
	History   *history.Store
	Clipboard ports.Clipboard
	Scheduler ports.Scheduler
	Logger    ports.Logger
	Now       func() time.Time

	mu        sync.Mutex
	options   domain.GenerationOptions
	password  string
	copied    bool
	copySeq   uint64
	copyTimer ports.Timer
	closed    bool
}

// Start sets the initial options, loads the persisted history and generates
// a first password.
func (s *Service) Start(ctx context.Context, opts domain.GenerationOptions) (domain.HistoryEntry, error) {
	s.SetOptions(opts)
	if s.History != nil {
		s.History.Load(ctx)
	}
	return s.Generate(ctx)
}

// Generate draws a new password with the current options and records it.
// On domain.ErrEmptyCharset (or any generator error) nothing changes. If only
// recording fails, the new password is already current and the entry is
// returned along with the error.
func (s *Service) Generate(ctx context.Context) (domain.HistoryEntry, error) {
	opts := s.Options()
	pw, err := s.Generator.Generate(opts)
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyCharset) && !errors.Is(err, domain.ErrInvalidLength) {
			s.Logger.Error("password generation failed", err, map[string]interface{}{"options": opts.String()})
		}
		return domain.HistoryEntry{}, err
	}

	entry := domain.NewHistoryEntry(pw, s.now())

	s.mu.Lock()
	s.password = pw
	s.copied = false
	s.copySeq++
	if s.copyTimer != nil {
		s.copyTimer.Stop()
		s.copyTimer = nil
	}
	s.mu.Unlock()

	if s.History != nil {
		if err := s.History.Record(ctx, entry); err != nil {
			return entry, fmt.Errorf("record history: %w", err)
		}
	}
	s.Logger.Debug("password generated", map[string]interface{}{"strength": entry.Strength, "options": opts.String()})
	return entry, nil
}

// Copy writes the current password to the clipboard in the background. On
// success the session's copied flag is set and reverts after the reset
// delay; on failure the error is logged and nothing else happens. The
// returned channel closes when the attempt is over.
func (s *Service) Copy(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	pw := s.Password()
	if pw == "" {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		if err := s.Clipboard.Copy(pw); err != nil {
			s.Logger.Error("clipboard write failed", err, nil)
			return
		}
		s.markCopied(pw)
	}()
	return done
}

// CopyHistory copies the password of the entry at index. The entry is
// resolved to its ID before the asynchronous write so later mutations of the
// log cannot redirect the copied flag. An invalid index is returned
// immediately.
func (s *Service) CopyHistory(ctx context.Context, index int) (<-chan struct{}, error) {
	if s.History == nil {
		return nil, fmt.Errorf("%w: history disabled", domain.ErrIndexOutOfRange)
	}
	entry, err := s.History.At(index)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := s.Clipboard.Copy(entry.Password); err != nil {
			s.Logger.Error("clipboard write failed", err, map[string]interface{}{"entry": entry.ID})
			return
		}
		if err := s.History.MarkCopiedByID(ctx, entry.ID); err != nil {
			s.Logger.Debug("copied entry left history before confirmation", map[string]interface{}{"entry": entry.ID})
		}
	}()
	return done, nil
}

// RemoveHistory deletes the entry at index.
func (s *Service) RemoveHistory(ctx context.Context, index int) error {
	if s.History == nil {
		return fmt.Errorf("%w: history disabled", domain.ErrIndexOutOfRange)
	}
	return s.History.Remove(ctx, index)
}

// ClearHistory empties the log.
func (s *Service) ClearHistory(ctx context.Context) error {
	if s.History == nil {
		return nil
	}
	return s.History.Clear(ctx)
}

// Entries returns the history log, newest first.
func (s *Service) Entries() []domain.HistoryEntry {
	if s.History == nil {
		return nil
	}
	return s.History.Entries()
}

// SetOptions replaces the generation options. They are validated on the
// next Generate, not here, so the user can pass through an empty selection
// while toggling classes.
func (s *Service) SetOptions(opts domain.GenerationOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = opts
}

// SetLength changes the password length.
func (s *Service) SetLength(length int) error {
	if length < domain.MinPasswordLength || length > domain.MaxPasswordLength {
		return fmt.Errorf("%w: %d not in [%d,%d]", domain.ErrInvalidLength, length, domain.MinPasswordLength, domain.MaxPasswordLength)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options.Length = length
	return nil
}

// Toggle flips a character class and returns its new state.
func (s *Service) Toggle(class domain.CharClass) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options.Toggle(class)
}

func (s *Service) Options() domain.GenerationOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

func (s *Service) Password() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.password
}

// Copied reports whether the current password was copied within the reset delay.
func (s *Service) Copied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copied
}

// Close stops pending resets and discards the history store.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	if s.copyTimer != nil {
		s.copyTimer.Stop()
		s.copyTimer = nil
	}
	s.mu.Unlock()

	if s.History != nil {
		s.History.Close()
	}
}

// markCopied sets the main copied flag, unless the password changed while
// the clipboard write was in flight.
func (s *Service) markCopied(pw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.password != pw {
		return
	}
	s.copied = true
	s.copySeq++
	seq := s.copySeq
	if s.copyTimer != nil {
		s.copyTimer.Stop()
	}
	s.copyTimer = s.Scheduler.AfterFunc(domain.CopiedResetDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || s.copySeq != seq {
			return
		}
		s.copied = false
		s.copyTimer = nil
	})
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
