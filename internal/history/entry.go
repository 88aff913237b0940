// Package history keeps a journal of applied transactions in BoltDB.
package history

import "time"

// Operation is the kind of transaction that was applied.
type Operation string

const (
	OpInstall    Operation = "install"
	OpRemove     Operation = "remove"
	OpPurge      Operation = "purge"
	OpUpgrade    Operation = "upgrade"
	OpAutoRemove Operation = "autoremove"
)

// Entry is one journal record. The ID is assigned by the store.
type Entry struct {
	ID        uint64    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Operation Operation `json:"operation"`
	Packages  []string  `json:"packages,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`

	// Counts from the engine's change set, for display.
	Installed int `json:"installed,omitempty"`
	Upgraded  int `json:"upgraded,omitempty"`
	Removed   int `json:"removed,omitempty"`
}

// NewEntry creates an unrecorded entry for an operation about to run.
func NewEntry(op Operation, packages []string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Operation: op,
		Packages:  packages,
	}
}

// MarkSuccess flags the entry as applied.
func (e *Entry) MarkSuccess() {
	e.Success = true
}

// MarkFailed flags the entry as failed and keeps the error text.
func (e *Entry) MarkFailed(err error) {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
}

// Undoable reports whether the entry describes a transaction with a
// well-defined inverse.
func (e *Entry) Undoable() bool {
	if !e.Success || len(e.Packages) == 0 {
		return false
	}
	switch e.Operation {
	case OpInstall, OpRemove, OpPurge:
		return true
	}
	return false
}

// InverseOperation returns the operation that undoes this entry.
func (e *Entry) InverseOperation() Operation {
	switch e.Operation {
	case OpInstall:
		return OpRemove
	case OpRemove, OpPurge:
		return OpInstall
	}
	return ""
}

// FormatTime renders the timestamp for tables.
func (e *Entry) FormatTime() string {
	return e.Timestamp.Format("2006-01-02 15:04:05")
}
