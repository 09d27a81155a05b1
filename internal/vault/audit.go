package vault

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// AuditEntry is one audit-log record.
type AuditEntry struct {
	Timestamp time.Time
	Operation string
	Detail    string
}

// auditLog is an in-memory ring buffer of the last capacity entries, plus
// an append-only file sink when configured.
type auditLog struct {
	mu       sync.Mutex
	entries  []AuditEntry
	capacity int
	file     *os.File
}

func newAuditLog(capacity int) *auditLog {
	return &auditLog{capacity: capacity}
}

// SetFile directs subsequent entries to also be appended to path.
func (a *auditLog) SetFile(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("vault: open audit log file: %w", err)
	}
	a.mu.Lock()
	a.file = f
	a.mu.Unlock()
	return nil
}

// Record appends an entry, sanitizing newlines out of detail to prevent
// log injection.
func (a *auditLog) Record(operation, detail string) {
	sanitized := strings.NewReplacer("\n", "\\n", "\r", "\\r").Replace(detail)
	entry := AuditEntry{Timestamp: time.Now().UTC(), Operation: operation, Detail: sanitized}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	if len(a.entries) > a.capacity {
		a.entries = a.entries[len(a.entries)-a.capacity:]
	}
	if a.file != nil {
		line := fmt.Sprintf("%s\t%s\t%s\n", entry.Timestamp.Format(time.RFC3339), entry.Operation, entry.Detail)
		a.file.WriteString(line)
	}
}

// Recent returns a copy of the last n recorded entries (or fewer if the
// buffer holds less).
func (a *auditLog) Recent(n int) []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n > len(a.entries) {
		n = len(a.entries)
	}
	out := make([]AuditEntry, n)
	copy(out, a.entries[len(a.entries)-n:])
	return out
}

// Audit records an entry in the Store's audit log; RecentAudit reads the
// log back (the CLI's `vault audit` subcommand).
func (s *Store) Audit(operation, detail string) {
	s.audit.Record(operation, detail)
}

// RecentAudit returns the last n audit entries.
func (s *Store) RecentAudit(n int) []AuditEntry {
	return s.audit.Recent(n)
}

// SetAuditFile directs the audit log to also append to the file at path.
func (s *Store) SetAuditFile(path string) error {
	return s.audit.SetFile(path)
}
