package user

import "gorm.io/gorm"

type UserContainer struct {
	Handler *Handler
	Repo    UserRepository
}

func NewUserContainer(db *gorm.DB) *UserContainer {
	repo := NewRepository(db)
	return &UserContainer{
		Handler: NewHandler(repo),
		Repo:    repo,
	}
}
