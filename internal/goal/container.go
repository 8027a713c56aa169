package goal

import (
	"gorm.io/gorm"

	util "github.com/saulo-duarte/streaker/internal/utils"
)

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(db *gorm.DB, badges BadgeChecker, clock util.Clock) *Container {
	repo := NewRepository(db)
	service := NewService(repo, badges, clock)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
