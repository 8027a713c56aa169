package badge

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saulo-duarte/streaker/internal/apperror"
)

type Repository interface {
	ListCatalog(ctx context.Context) ([]Badge, error)
	ListEarned(ctx context.Context, userID uuid.UUID) ([]UserBadge, error)
	EarnedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	// Insert awards badgeID to userID. It reports false, without error, when
	// the user already holds the badge.
	Insert(ctx context.Context, userID, badgeID uuid.UUID, earnedAt time.Time) (bool, error)
	UpsertCatalog(ctx context.Context, badges []Badge) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListCatalog(ctx context.Context) ([]Badge, error) {
	var badges []Badge
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&badges).Error; err != nil {
		return nil, apperror.Storage("list badges", err)
	}
	return badges, nil
}

func (r *repository) ListEarned(ctx context.Context, userID uuid.UUID) ([]UserBadge, error) {
	var earned []UserBadge
	if err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&earned).Error; err != nil {
		return nil, apperror.Storage("list user badges", err)
	}
	return earned, nil
}

func (r *repository) EarnedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error; err != nil {
		return nil, apperror.Storage("list earned badge ids", err)
	}

	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *repository) Insert(ctx context.Context, userID, badgeID uuid.UUID, earnedAt time.Time) (bool, error) {
	ub := UserBadge{ID: uuid.New(), UserID: userID, BadgeID: badgeID, EarnedAt: earnedAt}
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(&ub)
	if res.Error != nil {
		return false, apperror.Storage("award badge", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpsertCatalog writes the catalog keyed by badge id, which is derived from
// the criteria.
func (r *repository) UpsertCatalog(ctx context.Context, badges []Badge) error {
	if len(badges) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon", "criteria", "rarity", "updated_at"}),
	}).Create(&badges).Error
	return apperror.Storage("seed badges", err)
}
