// Package directory maintains the console's in-memory snapshot of the user
// population, refreshed from the user-management service on demand and after
// every mutation.
package directory

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/macquiz/admin-console-api/internal/models"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
)

// Source is the upstream surface the directory reads from and deletes
// through.
type Source interface {
	ListUsers(ctx context.Context) ([]models.UserRecord, error)
	DeleteUser(ctx context.Context, id string) error
}

// FetchObserver receives the duration of every completed snapshot fetch.
type FetchObserver interface {
	ObserveDirectoryFetch(duration time.Duration)
}

// ErrConfirmRequired gates destructive removal behind an explicit
// confirmation from the administrator.
var ErrConfirmRequired = appErrors.New("CONFIRM_REQUIRED", 428, "deletion must be confirmed")

// ErrAdminImmutable rejects edits and deletions aimed at administrator
// accounts.
var ErrAdminImmutable = appErrors.New("ADMIN_IMMUTABLE", 403, "administrator accounts cannot be modified from the console")

// Directory holds the latest user snapshot. Concurrent refreshes settle
// last-write-wins: a slower, older fetch may overwrite a newer snapshot, and
// when that happens the overwrite is logged rather than prevented.
type Directory struct {
	mu      sync.Mutex
	users   []models.UserRecord
	issued  uint64
	applied uint64

	source   Source
	observer FetchObserver
	logger   *zap.Logger
}

// New constructs an empty directory over the given source. observer may be
// nil when fetch timing is not collected.
func New(source Source, observer FetchObserver, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{source: source, observer: observer, logger: logger}
}

// Refresh fetches the full user list and installs it as the current
// snapshot. Every fetch is applied in completion order, including ones that
// started before a newer fetch finished.
func (d *Directory) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.issued++
	token := d.issued
	d.mu.Unlock()

	start := time.Now()
	records, err := d.source.ListUsers(ctx)
	if d.observer != nil {
		d.observer.ObserveDirectoryFetch(time.Since(start))
	}
	if err != nil {
		d.logger.Warn("directory refresh failed", zap.Error(err))
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if token < d.applied {
		d.logger.Warn("stale fetch overwrote newer snapshot",
			zap.Uint64("fetch", token),
			zap.Uint64("current", d.applied),
		)
	}
	d.users = records
	d.applied = token
	return nil
}

// Signal marks the snapshot stale after a mutation and refreshes it. The
// refetch is unconditional: even when it fails the caller's mutation already
// happened, so the error is logged and swallowed.
func (d *Directory) Signal(ctx context.Context) {
	if err := d.Refresh(ctx); err != nil {
		d.logger.Warn("post-mutation refresh failed", zap.Error(err))
	}
}

// Snapshot returns a copy of the current user list in upstream order.
func (d *Directory) Snapshot() []models.UserRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.UserRecord, len(d.users))
	copy(out, d.users)
	return out
}

// Find returns the snapshot record with the given id.
func (d *Directory) Find(id string) (models.UserRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.UserRecord{}, false
}

// Filter returns the snapshot restricted to a role. "all" (or an empty
// filter) returns everyone, administrators included.
func (d *Directory) Filter(filter string) []models.UserRecord {
	users := d.Snapshot()
	if filter == "" || filter == "all" {
		return users
	}

	role, ok := models.ParseRole(filter)
	if !ok {
		return nil
	}
	out := make([]models.UserRecord, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// Search filters records by a case-insensitive substring over name, email
// and student id.
func (d *Directory) Search(filter, query string) []models.UserRecord {
	users := d.Filter(filter)
	if query == "" {
		return users
	}
	out := make([]models.UserRecord, 0, len(users))
	for _, u := range users {
		if MatchSearch(u, query) {
			out = append(out, u)
		}
	}
	return out
}

// MatchSearch reports whether a record matches a free-text query.
func MatchSearch(u models.UserRecord, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(u.FullName()), q) {
		return true
	}
	if strings.Contains(strings.ToLower(u.Email), q) {
		return true
	}
	if u.StudentID != nil && strings.Contains(strings.ToLower(*u.StudentID), q) {
		return true
	}
	return false
}

// Delete removes a user after an explicit confirmation, then refetches the
// snapshot whether or not the removal succeeded. Cancelling (confirmed
// false) leaves the list untouched. Administrator accounts are never
// deletable.
func (d *Directory) Delete(ctx context.Context, id string, confirmed bool) error {
	record, found := d.Find(id)
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if record.Role == models.RoleAdmin {
		return ErrAdminImmutable
	}
	if !confirmed {
		return ErrConfirmRequired
	}

	err := d.source.DeleteUser(ctx, id)
	d.Signal(ctx)
	if err != nil {
		return err
	}
	d.logger.Info("user deleted",
		zap.String("user_id", id),
		zap.String("role", record.Role.Lower()),
	)
	return nil
}
