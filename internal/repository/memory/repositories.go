package memory

import "github.com/jafarshop/shopadmin/internal/repository"

// NewRepositories wires the in-process repositories
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Session: NewSessionRepository(),
	}
}
