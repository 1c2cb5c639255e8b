package directory

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macquiz/admin-console-api/internal/models"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
)

type mockSource struct {
	mu      sync.Mutex
	lists   [][]models.UserRecord
	listErr error
	calls   int

	deleted   []string
	deleteErr error

	gate chan struct{}
}

func (m *mockSource) ListUsers(_ context.Context) ([]models.UserRecord, error) {
	m.mu.Lock()
	call := m.calls
	m.calls++
	gate := m.gate
	m.mu.Unlock()

	if gate != nil && call == 0 {
		<-gate
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	if call < len(m.lists) {
		return m.lists[call], nil
	}
	return m.lists[len(m.lists)-1], nil
}

func (m *mockSource) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return m.deleteErr
}

func (m *mockSource) listCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func users(ids ...string) []models.UserRecord {
	out := make([]models.UserRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.UserRecord{ID: id, Role: models.RoleStudent})
	}
	return out
}

func TestDirectoryRefresh(t *testing.T) {
	src := &mockSource{lists: [][]models.UserRecord{users("a", "b")}}
	d := New(src, nil, nil)

	require.NoError(t, d.Refresh(context.Background()))
	snapshot := d.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "a", snapshot[0].ID, "upstream order is preserved")
}

type fakeFetchObserver struct {
	durations []time.Duration
}

func (f *fakeFetchObserver) ObserveDirectoryFetch(d time.Duration) {
	f.durations = append(f.durations, d)
}

func TestDirectoryRefreshReportsFetchDuration(t *testing.T) {
	src := &mockSource{lists: [][]models.UserRecord{users("a")}}
	obs := &fakeFetchObserver{}
	d := New(src, obs, nil)

	require.NoError(t, d.Refresh(context.Background()))
	require.Len(t, obs.durations, 1)

	src.mu.Lock()
	src.listErr = appErrors.ErrService
	src.mu.Unlock()

	require.Error(t, d.Refresh(context.Background()))
	assert.Len(t, obs.durations, 2, "failed fetches are timed too")
}

func TestDirectoryRefreshFailureKeepsSnapshot(t *testing.T) {
	src := &mockSource{lists: [][]models.UserRecord{users("a")}}
	d := New(src, nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	src.mu.Lock()
	src.listErr = appErrors.ErrService
	src.mu.Unlock()

	require.Error(t, d.Refresh(context.Background()))
	assert.Len(t, d.Snapshot(), 1, "a failed refresh keeps the previous snapshot")
}

func TestDirectoryLastWriteWins(t *testing.T) {
	// The first fetch is held open until a second, newer fetch has been
	// applied; when it completes it still overwrites the snapshot.
	gate := make(chan struct{})
	src := &mockSource{
		lists: [][]models.UserRecord{users("old"), users("new")},
		gate:  gate,
	}
	d := New(src, nil, nil)

	done := make(chan struct{})
	go func() {
		_ = d.Refresh(context.Background())
		close(done)
	}()

	// Wait until the first fetch has taken its token and is blocked.
	for src.listCalls() < 1 {
		runtime.Gosched()
	}

	require.NoError(t, d.Refresh(context.Background()))
	require.Equal(t, "new", d.Snapshot()[0].ID)

	close(gate)
	<-done
	assert.Equal(t, "old", d.Snapshot()[0].ID, "the slower fetch wins by finishing last")
}

func TestDirectoryFilter(t *testing.T) {
	src := &mockSource{lists: [][]models.UserRecord{{
		{ID: "a", Role: models.RoleAdmin},
		{ID: "t", Role: models.RoleTeacher},
		{ID: "s1", Role: models.RoleStudent},
		{ID: "s2", Role: models.RoleStudent},
	}}}
	d := New(src, nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	assert.Len(t, d.Filter("all"), 4)
	assert.Len(t, d.Filter(""), 4)
	assert.Len(t, d.Filter("teacher"), 1)
	assert.Len(t, d.Filter("student"), 2)
	assert.Nil(t, d.Filter("janitor"))
}

func TestDirectorySearch(t *testing.T) {
	sid := "CS2024001"
	src := &mockSource{lists: [][]models.UserRecord{{
		{ID: "1", FirstName: "Jane", LastName: "Doe", Email: "jane@rbmi.in", Role: models.RoleStudent, StudentID: &sid},
		{ID: "2", FirstName: "Ravi", LastName: "Sharma", Email: "ravi@gmail.com", Role: models.RoleTeacher},
	}}}
	d := New(src, nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	assert.Len(t, d.Search("all", "jane doe"), 1)
	assert.Len(t, d.Search("all", "RAVI@"), 1)
	assert.Len(t, d.Search("all", "cs2024"), 1)
	assert.Len(t, d.Search("student", "sharma"), 0)
	assert.Len(t, d.Search("all", ""), 2)
}

func TestDirectoryDeleteRequiresConfirmation(t *testing.T) {
	src := &mockSource{lists: [][]models.UserRecord{users("a")}}
	d := New(src, nil, nil)
	require.NoError(t, d.Refresh(context.Background()))
	before := src.listCalls()

	err := d.Delete(context.Background(), "a", false)
	assert.ErrorIs(t, err, ErrConfirmRequired)
	assert.Empty(t, src.deleted)
	assert.Equal(t, before, src.listCalls(), "cancelling leaves the list untouched")
	assert.Len(t, d.Snapshot(), 1)
}

func TestDirectoryDeleteConfirmed(t *testing.T) {
	src := &mockSource{lists: [][]models.UserRecord{users("a", "b"), users("b")}}
	d := New(src, nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	require.NoError(t, d.Delete(context.Background(), "a", true))
	assert.Equal(t, []string{"a"}, src.deleted)
	assert.Len(t, d.Snapshot(), 1, "deletion triggers a refetch")
}

func TestDirectoryDeleteRefetchesOnFailure(t *testing.T) {
	src := &mockSource{
		lists:     [][]models.UserRecord{users("a"), users("a")},
		deleteErr: appErrors.ErrService,
	}
	d := New(src, nil, nil)
	require.NoError(t, d.Refresh(context.Background()))
	before := src.listCalls()

	err := d.Delete(context.Background(), "a", true)
	require.Error(t, err)
	assert.Equal(t, before+1, src.listCalls(), "the refetch happens even when removal fails")
}

func TestDirectoryDeleteAdminRejected(t *testing.T) {
	src := &mockSource{lists: [][]models.UserRecord{{{ID: "root", Role: models.RoleAdmin}}}}
	d := New(src, nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	err := d.Delete(context.Background(), "root", true)
	assert.ErrorIs(t, err, ErrAdminImmutable)
	assert.Empty(t, src.deleted)
}

func TestDirectoryDeleteUnknownUser(t *testing.T) {
	src := &mockSource{lists: [][]models.UserRecord{users("a")}}
	d := New(src, nil, nil)
	require.NoError(t, d.Refresh(context.Background()))

	err := d.Delete(context.Background(), "ghost", true)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrNotFound.Code))
}
