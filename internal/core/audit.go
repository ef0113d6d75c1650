package core

import (
	"sync"
)

//go:generate go tool go.uber.org/mock/mockgen -source=audit.go -destination=audit_mock.go -package=core

// AuditSink receives every rejected record together with its rejection
// reason. Reporting never alters processing outcomes. Implementations must be
// safe for concurrent use: a single sink may be shared by processors running
// on different partitions.
type AuditSink interface {
	Report(rec Record, reason error)
}

type AuditEntry struct {
	Record Record
	Reason error
}

// MemoryAuditSink collects rejections in memory in reporting order.
type MemoryAuditSink struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func NewMemoryAuditSink() *MemoryAuditSink {
	return &MemoryAuditSink{}
}

func (s *MemoryAuditSink) Report(rec Record, reason error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, AuditEntry{Record: rec, Reason: reason})
}

func (s *MemoryAuditSink) Entries() []AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]AuditEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}
