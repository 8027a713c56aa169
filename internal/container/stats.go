package container

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/saulo-duarte/streaker/internal/activity"
	"github.com/saulo-duarte/streaker/internal/apperror"
	"github.com/saulo-duarte/streaker/internal/badge"
	"github.com/saulo-duarte/streaker/internal/goal"
)

// badgeStats reads goal counts from the goal table and recomputes streaks
// from activity history, so badge checks never trust the cached aggregate.
type badgeStats struct {
	goals      goal.Repository
	activities activity.Service
}

func (s *badgeStats) BadgeStats(ctx context.Context, userID uuid.UUID) (badge.Stats, error) {
	total, completed, err := s.goals.CountByUser(ctx, userID)
	if err != nil {
		return badge.Stats{}, err
	}

	// A failed write-back still yields freshly computed values.
	snap, err := s.activities.Streaks(ctx, userID)
	var re *apperror.RecomputeError
	if err != nil && !errors.As(err, &re) {
		return badge.Stats{}, err
	}

	return badge.Stats{
		TotalGoals:     total,
		CompletedGoals: completed,
		CurrentStreak:  snap.Current,
		LongestStreak:  snap.Longest,
	}, nil
}
