package badge

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Criteria    string    `gorm:"size:64;not null;uniqueIndex" json:"criteria"`
	Rarity      Rarity    `gorm:"type:varchar(16);not null" json:"rarity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserBadge records an award. A user holds each badge at most once.
type UserBadge struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge" json:"badgeId"`
	Badge    Badge     `gorm:"foreignKey:BadgeID" json:"badge"`
	EarnedAt time.Time `gorm:"not null" json:"earnedAt"`
}

// EarnedBadge is a catalog badge with the time the user earned it.
type EarnedBadge struct {
	Badge
	EarnedAt time.Time `json:"earnedAt"`
}
