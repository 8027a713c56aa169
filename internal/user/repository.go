package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saulo-duarte/streaker/internal/apperror"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateStreaks(ctx context.Context, id uuid.UUID, current, longest int) error
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Storage("find user", err)
	}
	return &u, nil
}

// UpdateStreaks writes the aggregate, creating the row for users that only
// exist in the identity provider so far.
func (r *userRepository) UpdateStreaks(ctx context.Context, id uuid.UUID, current, longest int) error {
	now := time.Now()
	u := User{ID: id, CurrentStreak: current, LongestStreak: longest, CreatedAt: now, UpdatedAt: now}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_streak", "longest_streak", "updated_at"}),
	}).Create(&u).Error
	return apperror.Storage("update user streaks", err)
}
