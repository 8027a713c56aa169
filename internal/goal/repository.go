package goal

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

type Repository interface {
	Create(ctx context.Context, g *Goal) error
	FindAllByUserID(ctx context.Context, userID uuid.UUID, status Status) ([]Goal, error)
	// FindByID returns the goal only if it belongs to userID. Progress logs
	// are loaded newest period first when withLogs is set.
	FindByID(ctx context.Context, id, userID uuid.UUID, withLogs bool) (*Goal, error)
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (total, completed int64, err error)

	Transaction(ctx context.Context, fn func(tx Repository) error) error
	FindByIDForUpdate(ctx context.Context, id, userID uuid.UUID) (*Goal, error)
	UpsertProgressLog(ctx context.Context, goalID uuid.UUID, u LogUpsert) error
	ProgressLogs(ctx context.Context, goalID uuid.UUID) ([]ProgressLog, error)

	ListTemplates(ctx context.Context, category string) ([]Template, error)
	FindTemplate(ctx context.Context, id uuid.UUID) (*Template, error)
	UpsertTemplates(ctx context.Context, templates []Template) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, g *Goal) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return apperror.Storage("create goal", r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error)
}

func (r *repository) FindAllByUserID(ctx context.Context, userID uuid.UUID, status Status) ([]Goal, error) {
	q := r.db.WithContext(ctx).Preload("Template").Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var goals []Goal
	if err := q.Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, apperror.Storage("list goals", err)
	}
	return goals, nil
}

func (r *repository) FindByID(ctx context.Context, id, userID uuid.UUID, withLogs bool) (*Goal, error) {
	q := r.db.WithContext(ctx).Preload("Template")
	if withLogs {
		q = q.Preload("ProgressLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("period_start DESC")
		})
	}
	return first(q, id, userID)
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id, userID uuid.UUID) (*Goal, error) {
	return first(config.ForUpdate(r.db.WithContext(ctx)), id, userID)
}

func first(q *gorm.DB, id, userID uuid.UUID) (*Goal, error) {
	var g Goal
	if err := q.Where("id = ? AND user_id = ?", id, userID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("goal")
		}
		return nil, apperror.Storage("find goal", err)
	}
	return &g, nil
}

func (r *repository) Update(ctx context.Context, g *Goal) error {
	return apperror.Storage("update goal", r.db.WithContext(ctx).Omit(clause.Associations).Save(g).Error)
}

// Delete removes the goal and its progress logs together.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", id).Delete(&ProgressLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Goal{}, "id = ?", id).Error
	})
	return apperror.Storage("delete goal", err)
}

func (r *repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	var total, completed int64
	if err := r.db.WithContext(ctx).Model(&Goal{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, apperror.Storage("count goals", err)
	}
	if err := r.db.WithContext(ctx).Model(&Goal{}).
		Where("user_id = ? AND status = ?", userID, StatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, apperror.Storage("count completed goals", err)
	}
	return total, completed, nil
}

func (r *repository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

// UpsertProgressLog creates the bucket row or adds to its achieved count.
func (r *repository) UpsertProgressLog(ctx context.Context, goalID uuid.UUID, u LogUpsert) error {
	entry := ProgressLog{
		ID:            uuid.New(),
		GoalID:        goalID,
		PeriodStart:   u.PeriodStart,
		PeriodEnd:     u.PeriodEnd,
		TargetCount:   u.TargetCount,
		AchievedCount: u.IncrementBy,
		IsCompleted:   u.IsCompleted,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "goal_id"}, {Name: "period_start"}},
		DoUpdates: clause.Assignments(map[string]any{
			"achieved_count": gorm.Expr("goal_progress.achieved_count + ?", u.IncrementBy),
			"is_completed":   u.IsCompleted,
			"updated_at":     time.Now(),
		}),
	}).Create(&entry).Error
	return apperror.Storage("upsert progress log", err)
}

func (r *repository) ProgressLogs(ctx context.Context, goalID uuid.UUID) ([]ProgressLog, error) {
	var logs []ProgressLog
	if err := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("period_start DESC").
		Find(&logs).Error; err != nil {
		return nil, apperror.Storage("list progress logs", err)
	}
	return logs, nil
}

func (r *repository) ListTemplates(ctx context.Context, category string) ([]Template, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var templates []Template
	if err := q.Order("name ASC").Find(&templates).Error; err != nil {
		return nil, apperror.Storage("list goal templates", err)
	}
	return templates, nil
}

func (r *repository) FindTemplate(ctx context.Context, id uuid.UUID) (*Template, error) {
	var t Template
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("template")
		}
		return nil, apperror.Storage("find goal template", err)
	}
	return &t, nil
}

func (r *repository) UpsertTemplates(ctx context.Context, templates []Template) error {
	if len(templates) == 0 {
		return nil
	}
	// IDs are derived from the slug, so the primary key is the conflict target.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "target_days", "period", "target_count", "category", "icon", "is_active", "updated_at",
		}),
	}).Create(&templates).Error
	return apperror.Storage("seed goal templates", err)
}
