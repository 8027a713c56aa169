package activity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saulo-duarte/streaker/internal/apperror"
	"github.com/saulo-duarte/streaker/internal/config"
)

type ActivityRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Activity, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Activity, error)
	ListPage(ctx context.Context, userID uuid.UUID, offset, limit int) ([]Activity, int64, error)

	// Transaction runs fn against a repository bound to one database
	// transaction. Reads done through the *ForUpdate methods lock their row.
	Transaction(ctx context.Context, fn func(tx ActivityRepository) error) error
	FindByDateForUpdate(ctx context.Context, userID uuid.UUID, date time.Time) (*Activity, error)
	FindByIDForUpdate(ctx context.Context, id, userID uuid.UUID) (*Activity, error)
	// CreateIfAbsent inserts a, reporting false when the (user, date) row
	// already exists.
	CreateIfAbsent(ctx context.Context, a *Activity) (bool, error)
	Save(ctx context.Context, a *Activity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type activityRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Activity, error) {
	var activities []Activity
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&activities).Error; err != nil {
		return nil, apperror.Storage("list activities", err)
	}
	return activities, nil
}

func (r *activityRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Activity, error) {
	var activities []Activity
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date DESC").
		Find(&activities).Error; err != nil {
		return nil, apperror.Storage("list recent activities", err)
	}
	return activities, nil
}

func (r *activityRepository) ListPage(ctx context.Context, userID uuid.UUID, offset, limit int) ([]Activity, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Activity{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, apperror.Storage("count activities", err)
	}

	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	var activities []Activity
	if err := q.Find(&activities).Error; err != nil {
		return nil, 0, apperror.Storage("page activities", err)
	}
	return activities, total, nil
}

func (r *activityRepository) Transaction(ctx context.Context, fn func(tx ActivityRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&activityRepository{db: tx})
	})
}

func (r *activityRepository) FindByDateForUpdate(ctx context.Context, userID uuid.UUID, date time.Time) (*Activity, error) {
	var a Activity
	err := config.ForUpdate(r.db.WithContext(ctx)).
		Where("user_id = ? AND date = ?", userID, date).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("activity")
		}
		return nil, apperror.Storage("find activity by date", err)
	}
	return &a, nil
}

func (r *activityRepository) FindByIDForUpdate(ctx context.Context, id, userID uuid.UUID) (*Activity, error) {
	var a Activity
	err := config.ForUpdate(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("activity")
		}
		return nil, apperror.Storage("find activity", err)
	}
	return &a, nil
}

func (r *activityRepository) CreateIfAbsent(ctx context.Context, a *Activity) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, apperror.Storage("create activity", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *activityRepository) Save(ctx context.Context, a *Activity) error {
	return apperror.Storage("save activity", r.db.WithContext(ctx).Save(a).Error)
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return apperror.Storage("delete activity", r.db.WithContext(ctx).Delete(&Activity{}, "id = ?", id).Error)
}
