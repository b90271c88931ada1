package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one generated password.
//
// Copied is view state: it is set for a short time after a clipboard copy
// and is never written to the persisted snapshot.
type HistoryEntry struct {
	ID        string `json:"id"`
	Password  string `json:"password"`
	Timestamp int64  `json:"timestamp"`
	Strength  int    `json:"strength"`
	Copied    bool   `json:"-"`
}

// NewHistoryEntry scores the password and stamps it with a fresh ID.
func NewHistoryEntry(password string, now time.Time) HistoryEntry {
	return HistoryEntry{
		ID:        NewHistoryID(),
		Password:  password,
		Timestamp: now.UnixMilli(),
		Strength:  Score(password),
	}
}

// NewHistoryID returns a random identifier for a history entry.
func NewHistoryID() string {
	return uuid.NewString()
}

// Time converts the epoch-millisecond timestamp.
func (e HistoryEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
