package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
	"github.com/developia/translation-office/internal/core/session"
)

// UserService exposes self-service operations on the calling account.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// GetProfile returns the calling user. Privileged executions carry no
// personal identity and therefore have no profile.
func (s *UserService) GetProfile(ctx context.Context) (*domain.User, error) {
	caller := session.FromContext(ctx).Caller()
	if caller == nil {
		return nil, fmt.Errorf("get profile: %w", domain.ErrUnauthorized)
	}
	return caller, nil
}

// ReplaceLanguages swaps the calling translator's language set wholesale and
// persists the change. Only the translator themself may do this.
func (s *UserService) ReplaceLanguages(ctx context.Context, languages []string) (*domain.User, error) {
	caller := session.FromContext(ctx).Caller()
	if caller == nil || caller.Role != domain.RoleTranslator {
		return nil, fmt.Errorf("replace languages: %w", domain.ErrUnauthorized)
	}
	if err := caller.ReplaceLanguages(languages); err != nil {
		return nil, fmt.Errorf("replace languages: %w", err)
	}
	if err := s.users.Save(ctx, caller); err != nil {
		return nil, fmt.Errorf("replace languages: %w", err)
	}
	s.log.Info().Str("user_id", caller.ID).Strs("languages", caller.Languages).Msg("translator languages replaced")
	return caller, nil
}

var _ ports.UserService = (*UserService)(nil)
