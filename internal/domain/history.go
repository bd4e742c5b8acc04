package domain

import (
	"sync"
	"time"
)

// HistoryEntry captures one generation attempt for display and audit.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Prompt    string    `json:"prompt"`
	Category  Category  `json:"category"`
	Model     string    `json:"model"`
	Source    string    `json:"source"`
	Success   bool      `json:"success"`
	ExitCode  int       `json:"exit_code"`
}

// HistoryLog is a bounded, newest-first log of generation attempts. It lives
// only for the duration of the session; durable audit storage is a separate
// concern. The zero value is not usable; construct with NewHistoryLog.
type HistoryLog struct {
	mu       sync.Mutex
	entries  []HistoryEntry
	capacity int
}

// NewHistoryLog creates a log bounded to the given capacity. A non-positive
// capacity falls back to HistoryCapacity.
func NewHistoryLog(capacity int) *HistoryLog {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &HistoryLog{capacity: capacity}
}

// Record inserts an entry at the head, silently evicting the oldest entry
// once the capacity is exceeded.
func (l *HistoryLog) Record(entry HistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]HistoryEntry{entry}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// Recent returns up to n entries, newest first.
func (l *HistoryLog) Recent(n int) []HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]HistoryEntry, n)
	copy(out, l.entries[:n])
	return out
}

// Len reports the number of retained entries.
func (l *HistoryLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// CacheEntry stores a cached model response.
type CacheEntry struct {
	Key       string    `json:"key"`
	Code      string    `json:"code"`
	Model     string    `json:"model"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
