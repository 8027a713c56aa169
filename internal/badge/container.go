package badge

import (
	"gorm.io/gorm"

	util "github.com/saulo-duarte/streaker/internal/utils"
)

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(db *gorm.DB, stats StatsSource, clock util.Clock) *Container {
	repo := NewRepository(db)
	service := NewService(repo, stats, clock)

	return &Container{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}
