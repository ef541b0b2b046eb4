package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
	"github.com/developia/translation-office/internal/core/session"
)

// AuthService implements registration and login. Each registration path goes
// through the matching domain factory so role invariants hold by construction.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) RegisterCustomer(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.register(ctx, password, func() (*domain.User, error) {
		return domain.NewCustomer(name, email)
	})
}

func (s *AuthService) RegisterTranslator(ctx context.Context, name, email, password string, languages []string) (*domain.User, error) {
	return s.register(ctx, password, func() (*domain.User, error) {
		return domain.NewTranslator(name, email, languages)
	})
}

// RegisterAdmin creates an administrator account. Unlike the other roles this
// is not self-service: only an existing administrator or a privileged caller
// may mint one.
func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	scope := session.FromContext(ctx)
	if !scope.IsPrivileged() {
		caller := scope.Caller()
		if caller == nil || caller.Role != domain.RoleAdmin {
			return nil, fmt.Errorf("register admin: %w", domain.ErrUnauthorized)
		}
	}
	return s.register(ctx, password, func() (*domain.User, error) {
		return domain.NewAdmin(name, email)
	})
}

func (s *AuthService) register(ctx context.Context, password string, build func() (*domain.User, error)) (*domain.User, error) {
	if password == "" {
		return nil, fmt.Errorf("register: %w: password must not be empty", domain.ErrInvalidArgument)
	}

	user, err := build()
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	inUse, err := s.users.EmailInUse(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if inUse {
		return nil, fmt.Errorf("register: %w", domain.ErrEmailInUse)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := user.SetPasswordHash(string(hash)); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.PasswordHash == "" {
		// Externally-authenticated account, no local credential.
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

var _ ports.AuthService = (*AuthService)(nil)
