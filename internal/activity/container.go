package activity

import (
	"gorm.io/gorm"

	util "github.com/saulo-duarte/streaker/internal/utils"
)

type ActivityContainer struct {
	Handler *Handler
	Service Service
}

func NewActivityContainer(db *gorm.DB, streaks StreakWriter, clock util.Clock) *ActivityContainer {
	repo := NewRepository(db)
	svc := NewService(repo, streaks, clock)
	return &ActivityContainer{
		Handler: NewHandler(svc),
		Service: svc,
	}
}
