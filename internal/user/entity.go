package user

import (
	"time"

	"github.com/google/uuid"
)

// User carries the cached streak aggregate. The values are derived from
// activity history and rewritten after every completion change.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `json:"name,omitempty"`
	Email         *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	CurrentStreak int       `gorm:"column:current_streak;not null;default:0" json:"current_streak"`
	LongestStreak int       `gorm:"column:longest_streak;not null;default:0" json:"longest_streak"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
