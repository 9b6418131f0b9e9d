// Package domaintest provides a recording domain.Target for tests.
package domaintest

import (
	"fmt"
	"sync"

	"github.com/yndnr/migrations-go/internal/core/domain"
)

var _ domain.Target = (*Recorder)(nil)

// Call is one recorded target invocation.
type Call struct {
	Method string
	Args   []any
}

// String renders the call as Method(arg, ...).
func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Method, c.Args)
}

// Recorder implements domain.Target and records every invocation.
//
// Errors returned by the registration methods can be injected through
// RegisterMigrationErr and RegisterDirectoryErr.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	RegisterMigrationErr func(version, class string) error
	RegisterDirectoryErr func(dir string) error
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many times method was called.
func (r *Recorder) Count(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *Recorder) record(method string, args ...any) {
	r.mu.Lock()
	if args == nil {
		args = []any{}
	}
	r.calls = append(r.calls, Call{Method: method, Args: args})
	r.mu.Unlock()
}

func (r *Recorder) SetMigrationsNamespace(namespace string) {
	r.record("SetMigrationsNamespace", namespace)
}

func (r *Recorder) SetMigrationsTableName(name string) {
	r.record("SetMigrationsTableName", name)
}

func (r *Recorder) SetMigrationsColumnName(name string) {
	r.record("SetMigrationsColumnName", name)
}

func (r *Recorder) SetMigrationsColumnLength(length int) {
	r.record("SetMigrationsColumnLength", length)
}

func (r *Recorder) SetMigrationsExecutedAtColumnName(name string) {
	r.record("SetMigrationsExecutedAtColumnName", name)
}

func (r *Recorder) SetMigrationsAreOrganizedByYearAndMonth() {
	r.record("SetMigrationsAreOrganizedByYearAndMonth")
}

func (r *Recorder) SetName(name string) {
	r.record("SetName", name)
}

func (r *Recorder) SetMigrationsDirectory(dir string) {
	r.record("SetMigrationsDirectory", dir)
}

func (r *Recorder) RegisterMigrationsFromDirectory(dir string) error {
	r.record("RegisterMigrationsFromDirectory", dir)
	if r.RegisterDirectoryErr != nil {
		return r.RegisterDirectoryErr(dir)
	}
	return nil
}

func (r *Recorder) RegisterMigration(version, class string) error {
	r.record("RegisterMigration", version, class)
	if r.RegisterMigrationErr != nil {
		return r.RegisterMigrationErr(version, class)
	}
	return nil
}

func (r *Recorder) SetCustomTemplate(path string) {
	r.record("SetCustomTemplate", path)
}

func (r *Recorder) SetAllOrNothing(enabled bool) {
	r.record("SetAllOrNothing", enabled)
}
