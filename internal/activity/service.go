package activity

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/saulo-duarte/streaker/internal/apperror"
	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/metrics"
	"github.com/saulo-duarte/streaker/internal/streak"
	util "github.com/saulo-duarte/streaker/internal/utils"
)

const (
	DefaultRecentDays = 20
	DefaultPageLimit  = 5
)

// StreakWriter persists the derived streak pair on the user aggregate.
type StreakWriter interface {
	UpdateStreaks(ctx context.Context, userID uuid.UUID, current, longest int) error
}

type Service interface {
	LogActivity(ctx context.Context, userID uuid.UUID, dto CreateActivityDTO) (*Activity, error)
	ListRecent(ctx context.Context, userID uuid.UUID, days int) ([]Activity, error)
	ListAll(ctx context.Context, userID uuid.UUID, page, limit int) (*PageResponse, error)
	EditItem(ctx context.Context, userID, activityID uuid.UUID, index int, dto EditItemDTO) (*Activity, error)
	// DeleteItem returns the remaining record, or nil when the removed item
	// was the last one and the record itself was deleted.
	DeleteItem(ctx context.Context, userID, activityID uuid.UUID, index int) (*Activity, error)
	ToggleItem(ctx context.Context, userID, activityID uuid.UUID, index int) (*Activity, error)

	Streaks(ctx context.Context, userID uuid.UUID) (streak.Snapshot, error)
	CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error)
	LongestStreak(ctx context.Context, userID uuid.UUID) (int, error)
	CategoryStats(ctx context.Context, userID uuid.UUID) (map[string]streak.CategoryStat, error)
	CategoryStreak(ctx context.Context, userID uuid.UUID, category string) (int, error)
}

type service struct {
	repo    ActivityRepository
	streaks StreakWriter
	now     util.Clock
}

func NewService(repo ActivityRepository, streaks StreakWriter, clock util.Clock) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: repo, streaks: streaks, now: clock}
}

func (s *service) LogActivity(ctx context.Context, userID uuid.UUID, dto CreateActivityDTO) (*Activity, error) {
	description := strings.TrimSpace(dto.Description)
	if description == "" {
		return nil, apperror.Validation("description is required")
	}
	category := strings.TrimSpace(dto.Category)
	if category == "" {
		category = streak.DefaultCategory
	}
	day := util.StartOfDay(s.now())
	if !dto.Date.IsZero() {
		day = util.StartOfDay(dto.Date.Time)
	}

	var saved *Activity
	err := s.repo.Transaction(ctx, func(tx ActivityRepository) error {
		fresh := &Activity{ID: uuid.New(), UserID: userID, Date: datatypes.Date(day)}
		fresh.SetItems(nil)
		if _, err := tx.CreateIfAbsent(ctx, fresh); err != nil {
			return err
		}

		a, err := tx.FindByDateForUpdate(ctx, userID, day)
		if err != nil {
			return err
		}
		a.SetItems(append(a.Items(), streak.Item{Description: description, Category: category}))
		if err := tx.Save(ctx, a); err != nil {
			return err
		}
		saved = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mutated(ctx, "log", saved)
	return saved, s.recompute(ctx, userID)
}

func (s *service) ListRecent(ctx context.Context, userID uuid.UUID, days int) ([]Activity, error) {
	if days < 1 {
		return nil, apperror.Validation("days must be at least 1")
	}
	since := util.StartOfDay(s.now()).AddDate(0, 0, -days)
	return s.repo.ListSince(ctx, userID, since)
}

func (s *service) ListAll(ctx context.Context, userID uuid.UUID, page, limit int) (*PageResponse, error) {
	if limit < 0 {
		return nil, apperror.Validation("limit must not be negative")
	}
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		page = 1
	}

	activities, total, err := s.repo.ListPage(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := 1
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &PageResponse{
		Activities:      activities,
		TotalActivities: total,
		TotalPages:      totalPages,
		CurrentPage:     page,
	}, nil
}

func (s *service) EditItem(ctx context.Context, userID, activityID uuid.UUID, index int, dto EditItemDTO) (*Activity, error) {
	description := strings.TrimSpace(dto.Description)
	if description == "" {
		return nil, apperror.Validation("description is required")
	}

	saved, err := s.mutate(ctx, userID, activityID, index, func(items []streak.Item) []streak.Item {
		items[index].Description = description
		if dto.Category != nil {
			items[index].Category = strings.TrimSpace(*dto.Category)
			if items[index].Category == "" {
				items[index].Category = streak.DefaultCategory
			}
		}
		return items
	})
	if err != nil {
		return nil, err
	}

	s.mutated(ctx, "edit", saved)
	return saved, s.recompute(ctx, userID)
}

func (s *service) DeleteItem(ctx context.Context, userID, activityID uuid.UUID, index int) (*Activity, error) {
	saved, err := s.mutate(ctx, userID, activityID, index, func(items []streak.Item) []streak.Item {
		return append(items[:index], items[index+1:]...)
	})
	if err != nil {
		return nil, err
	}

	s.mutated(ctx, "delete", saved)
	return saved, s.recompute(ctx, userID)
}

func (s *service) ToggleItem(ctx context.Context, userID, activityID uuid.UUID, index int) (*Activity, error) {
	saved, err := s.mutate(ctx, userID, activityID, index, func(items []streak.Item) []streak.Item {
		items[index].Completed = !items[index].Completed
		return items
	})
	if err != nil {
		return nil, err
	}

	s.mutated(ctx, "toggle", saved)
	return saved, s.recompute(ctx, userID)
}

// mutate applies change to the items of one locked record. A record left
// without items is deleted and the returned activity is nil.
func (s *service) mutate(ctx context.Context, userID, activityID uuid.UUID, index int, change func([]streak.Item) []streak.Item) (*Activity, error) {
	var saved *Activity
	err := s.repo.Transaction(ctx, func(tx ActivityRepository) error {
		a, err := tx.FindByIDForUpdate(ctx, activityID, userID)
		if err != nil {
			return err
		}
		items := a.Items()
		if index < 0 || index >= len(items) {
			return apperror.Validation("item index %d out of range", index)
		}

		items = change(items)
		if len(items) == 0 {
			return tx.Delete(ctx, a.ID)
		}
		a.SetItems(items)
		if err := tx.Save(ctx, a); err != nil {
			return err
		}
		saved = a
		return nil
	})
	return saved, err
}

func (s *service) mutated(ctx context.Context, op string, a *Activity) {
	metrics.ActivityMutations.WithLabelValues(op).Inc()
	fields := logrus.Fields{"op": op}
	if a != nil {
		fields["activity_id"] = a.ID
		fields["items"] = len(a.Description)
	}
	config.WithContext(ctx).WithFields(fields).Info("Activity updated")
}

// recompute refreshes the user aggregate after a committed mutation. Its
// failure is reported as a RecomputeError so callers can tell it apart from
// a failed primary write.
func (s *service) recompute(ctx context.Context, userID uuid.UUID) error {
	_, err := s.Streaks(ctx, userID)
	var re *apperror.RecomputeError
	if err == nil || errors.As(err, &re) {
		return err
	}
	return s.recomputeFailed(ctx, userID, err)
}

func (s *service) recomputeFailed(ctx context.Context, userID uuid.UUID, err error) error {
	metrics.StreakRecomputeFailures.Inc()
	config.WithContext(ctx).WithError(err).WithField("user_id", userID).Error("Failed to recompute streaks")
	return &apperror.RecomputeError{Err: err}
}

func (s *service) records(ctx context.Context, userID uuid.UUID) ([]streak.Record, error) {
	activities, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Records(activities), nil
}

// Streaks computes both values from the activity history and writes them
// back to the user aggregate before returning. A failed write-back still
// returns the computed values alongside a RecomputeError.
func (s *service) Streaks(ctx context.Context, userID uuid.UUID) (streak.Snapshot, error) {
	records, err := s.records(ctx, userID)
	if err != nil {
		return streak.Snapshot{}, err
	}
	snap := streak.Compute(records, s.now())
	if err := s.streaks.UpdateStreaks(ctx, userID, snap.Current, snap.Longest); err != nil {
		return snap, s.recomputeFailed(ctx, userID, err)
	}
	return snap, nil
}

func (s *service) CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	snap, err := s.Streaks(ctx, userID)
	return snap.Current, err
}

func (s *service) LongestStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	snap, err := s.Streaks(ctx, userID)
	return snap.Longest, err
}

func (s *service) CategoryStats(ctx context.Context, userID uuid.UUID) (map[string]streak.CategoryStat, error) {
	records, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}
	return streak.CategoryStats(records, s.now()), nil
}

func (s *service) CategoryStreak(ctx context.Context, userID uuid.UUID, category string) (int, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return 0, apperror.Validation("category is required")
	}
	records, err := s.records(ctx, userID)
	if err != nil {
		return 0, err
	}
	return streak.CategoryStreak(records, category, s.now()), nil
}
