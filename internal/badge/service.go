package badge

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/metrics"
	util "github.com/saulo-duarte/streaker/internal/utils"
)

// StatsSource supplies fresh aggregate counters for a user.
type StatsSource interface {
	BadgeStats(ctx context.Context, userID uuid.UUID) (Stats, error)
}

type Service interface {
	ListEarned(ctx context.Context, userID uuid.UUID) ([]EarnedBadge, error)
	ListAll(ctx context.Context) ([]Badge, error)
	Check(ctx context.Context, userID uuid.UUID) (*CheckResponse, error)
	// CheckBadges is Check for callers that only care about failure.
	CheckBadges(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo  Repository
	stats StatsSource
	now   util.Clock
}

func NewService(repo Repository, stats StatsSource, clock util.Clock) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: repo, stats: stats, now: clock}
}

func (s *service) ListEarned(ctx context.Context, userID uuid.UUID) ([]EarnedBadge, error) {
	earned, err := s.repo.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]EarnedBadge, len(earned))
	for i, ub := range earned {
		out[i] = EarnedBadge{Badge: ub.Badge, EarnedAt: ub.EarnedAt}
	}
	return out, nil
}

func (s *service) ListAll(ctx context.Context) ([]Badge, error) {
	badges, err := s.repo.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(badges, func(i, j int) bool {
		if ri, rj := badges[i].Rarity.rank(), badges[j].Rarity.rank(); ri != rj {
			return ri < rj
		}
		return badges[i].Name < badges[j].Name
	})
	return badges, nil
}

func (s *service) Check(ctx context.Context, userID uuid.UUID) (*CheckResponse, error) {
	log := config.WithContext(ctx)

	stats, err := s.stats.BadgeStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.repo.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := s.repo.EarnedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	awarded := []Badge{}
	for _, b := range Evaluate(stats, catalog, earned) {
		inserted, err := s.repo.Insert(ctx, userID, b.ID, s.now())
		if err != nil {
			return nil, err
		}
		// A concurrent check may have awarded it between the read and the insert.
		if !inserted {
			continue
		}
		awarded = append(awarded, b)
		metrics.BadgesAwarded.WithLabelValues(b.Criteria).Inc()
		log.WithFields(logrus.Fields{"badge": b.Name, "criteria": b.Criteria}).Info("Badge awarded")
	}

	return &CheckResponse{Awarded: awarded, Message: checkMessage(len(awarded))}, nil
}

func (s *service) CheckBadges(ctx context.Context, userID uuid.UUID) error {
	_, err := s.Check(ctx, userID)
	return err
}

func checkMessage(n int) string {
	if n == 0 {
		return "No new badges earned yet. Keep going!"
	}
	return fmt.Sprintf("Congratulations! You earned %d new badge(s)!", n)
}
