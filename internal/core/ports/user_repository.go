package ports

import (
	"context"

	"github.com/developia/translation-office/internal/core/domain"
)

// UserFilter narrows List results. Zero values mean "no filter".
type UserFilter struct {
	Role     domain.Role
	Language string // translators proficient in this language
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Save upserts the user by id.
	Save(ctx context.Context, u *domain.User) error
	EmailInUse(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	// TranslatorIDsByLanguage returns ids of translators proficient in lang,
	// in stable store order.
	TranslatorIDsByLanguage(ctx context.Context, lang string) ([]string, error)
	RoleByID(ctx context.Context, id string) (domain.Role, error)
	LanguagesByID(ctx context.Context, id string) ([]string, error)
}
