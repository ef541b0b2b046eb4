package ports

import (
	"context"

	"github.com/developia/translation-office/internal/core/domain"
)

// AuthService implements account registration and login. Registration goes
// through the role-specific domain factories; there is no generic constructor
// taking an unchecked role.
type AuthService interface {
	RegisterCustomer(ctx context.Context, name, email, password string) (*domain.User, error)
	RegisterTranslator(ctx context.Context, name, email, password string, languages []string) (*domain.User, error)
	RegisterAdmin(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UserService exposes operations on the calling user's own account.
type UserService interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	// ReplaceLanguages swaps the calling translator's language set wholesale.
	ReplaceLanguages(ctx context.Context, languages []string) (*domain.User, error)
}
