package service

import (
	"context"

	"github.com/rexdotsh/praxis/internal/domain"
)

// UserService resolves identity subjects to stable user rows.
type UserService interface {
	ResolveSubject(ctx context.Context, subject string) (*domain.User, error)
}

type userServiceImpl struct {
	repo domain.UserRepository
}

func NewUserService(repo domain.UserRepository) UserService {
	return &userServiceImpl{repo: repo}
}

// ResolveSubject upserts a user row for the subject. Every protected route
// goes through this, mirroring the original's upsert-on-each-call identity
// resolution.
func (s *userServiceImpl) ResolveSubject(ctx context.Context, subject string) (*domain.User, error) {
	if subject == "" {
		return nil, domain.NewUnauthorizedError("no identity subject resolved")
	}
	user, err := s.repo.GetOrCreateBySubject(ctx, subject)
	if err != nil {
		return nil, domain.NewInternalError("failed to resolve user", err)
	}
	return user, nil
}
