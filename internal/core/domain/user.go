package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies what an account may do. The set is closed: every user is
// created through one of the role-specific factories below.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleTranslator Role = "translator"
	RoleAdmin      Role = "admin"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// User models an account in the system. Languages is non-empty exactly when
// Role is RoleTranslator; the factories enforce this so it never needs to be
// re-checked downstream.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Languages    []string  `json:"languages,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCustomer creates a customer account.
func NewCustomer(name, email string) (*User, error) {
	return newUser(name, email, RoleCustomer, nil)
}

// NewTranslator creates a translator account. The language set must be
// non-empty; each code is normalised to lower case.
func NewTranslator(name, email string, languages []string) (*User, error) {
	normalised, err := normaliseLanguages(languages)
	if err != nil {
		return nil, err
	}
	return newUser(name, email, RoleTranslator, normalised)
}

// NewAdmin creates an administrator account.
func NewAdmin(name, email string) (*User, error) {
	return newUser(name, email, RoleAdmin, nil)
}

// newUser validates shared fields before any id is allocated.
func newUser(name, email string, role Role, languages []string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", ErrInvalidArgument)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: malformed email %q", ErrInvalidArgument, email)
	}
	return &User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(email),
		Role:      role,
		Languages: languages,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SetPasswordHash stores the credential hash. It may be set at most once;
// externally-authenticated accounts never set it.
func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("%w: password hash must not be empty", ErrInvalidArgument)
	}
	if u.PasswordHash != "" {
		return fmt.Errorf("%w: password hash already set", ErrInvalidArgument)
	}
	u.PasswordHash = hash
	return nil
}

// ReplaceLanguages swaps the translator's language set wholesale (never a
// merge). The new set must be non-empty and the user must be a translator.
func (u *User) ReplaceLanguages(languages []string) error {
	if u.Role != RoleTranslator {
		return fmt.Errorf("%w: only translators carry languages", ErrInvalidArgument)
	}
	normalised, err := normaliseLanguages(languages)
	if err != nil {
		return err
	}
	u.Languages = normalised
	return nil
}

// CanTranslate reports whether the user is a translator proficient in lang.
func (u *User) CanTranslate(lang string) bool {
	if u.Role != RoleTranslator {
		return false
	}
	lang = strings.ToLower(lang)
	for _, l := range u.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

func normaliseLanguages(languages []string) ([]string, error) {
	out := make([]string, 0, len(languages))
	for _, l := range languages {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			return nil, fmt.Errorf("%w: blank language code", ErrInvalidArgument)
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: translator needs at least one language", ErrInvalidArgument)
	}
	return out, nil
}
