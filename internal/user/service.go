package user

import (
	"context"

	"go.uber.org/zap"

	"shutterdesk-be/internal/logger"
)

type Service interface {
	// Login checks the credentials and returns a signed token. The routing
	// layer only ever learns "signed in or not"; no roles, no profiles.
	Login(ctx context.Context, email, password string) (string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "Login"))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("login lookup failed", zap.Error(err))
		return "", err
	}
	if u == nil || !CheckPasswordHash(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Email)
	if err != nil {
		log.Error("token generation failed", zap.Error(err))
		return "", err
	}

	log.Info("user signed in", zap.Uint("user_id", u.ID))
	return token, nil
}
