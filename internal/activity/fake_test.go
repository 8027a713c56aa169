package activity_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/saulo-duarte/streaker/internal/activity"
	"github.com/saulo-duarte/streaker/internal/apperror"
	"github.com/saulo-duarte/streaker/internal/streak"
)

// fakeRepo is an in-memory ActivityRepository. Records are copied on the way
// in and out so callers cannot mutate stored state without Save.
type fakeRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]activity.Activity
	listErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[uuid.UUID]activity.Activity{}}
}

func clone(a activity.Activity) activity.Activity {
	a.Description = append(pq.StringArray{}, a.Description...)
	a.Completed = append(pq.BoolArray{}, a.Completed...)
	a.Category = append(pq.StringArray{}, a.Category...)
	return a
}

func (f *fakeRepo) seed(userID uuid.UUID, day time.Time, items ...streak.Item) activity.Activity {
	a := activity.Activity{ID: uuid.New(), UserID: userID}
	a.Date = dateOf(day)
	a.SetItems(items)
	f.records[a.ID] = clone(a)
	return a
}

func (f *fakeRepo) byUser(userID uuid.UUID) []activity.Activity {
	var out []activity.Activity
	for _, a := range f.records {
		if a.UserID == userID {
			out = append(out, clone(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day().After(out[j].Day()) })
	return out
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]activity.Activity, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byUser(userID), nil
}

func (f *fakeRepo) ListSince(_ context.Context, userID uuid.UUID, since time.Time) ([]activity.Activity, error) {
	var out []activity.Activity
	for _, a := range f.byUser(userID) {
		if !a.Day().Before(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListPage(_ context.Context, userID uuid.UUID, offset, limit int) ([]activity.Activity, int64, error) {
	all := f.byUser(userID)
	total := int64(len(all))
	if limit == 0 {
		return all, total, nil
	}
	if offset >= len(all) {
		return []activity.Activity{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(tx activity.ActivityRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := make(map[uuid.UUID]activity.Activity, len(f.records))
	for k, v := range f.records {
		snapshot[k] = clone(v)
	}
	if err := fn(f); err != nil {
		f.records = snapshot
		return err
	}
	return nil
}

func (f *fakeRepo) FindByDateForUpdate(_ context.Context, userID uuid.UUID, date time.Time) (*activity.Activity, error) {
	for _, a := range f.records {
		if a.UserID == userID && a.Day().Equal(date) {
			c := clone(a)
			return &c, nil
		}
	}
	return nil, apperror.NotFound("activity")
}

func (f *fakeRepo) FindByIDForUpdate(_ context.Context, id, userID uuid.UUID) (*activity.Activity, error) {
	a, ok := f.records[id]
	if !ok || a.UserID != userID {
		return nil, apperror.NotFound("activity")
	}
	c := clone(a)
	return &c, nil
}

func (f *fakeRepo) CreateIfAbsent(ctx context.Context, a *activity.Activity) (bool, error) {
	if _, err := f.FindByDateForUpdate(ctx, a.UserID, a.Day()); err == nil {
		return false, nil
	}
	f.records[a.ID] = clone(*a)
	return true, nil
}

func (f *fakeRepo) Save(_ context.Context, a *activity.Activity) error {
	f.records[a.ID] = clone(*a)
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.records, id)
	return nil
}

type fakeStreaks struct {
	calls   int
	last    streak.Snapshot
	failing bool
}

func (f *fakeStreaks) UpdateStreaks(_ context.Context, _ uuid.UUID, current, longest int) error {
	f.calls++
	if f.failing {
		return errors.New("connection reset")
	}
	f.last = streak.Snapshot{Current: current, Longest: longest}
	return nil
}
