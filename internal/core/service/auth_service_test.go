package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/developia/translation-office/internal/core/domain"
)

const testSecret = "test-secret"

func newAuthService(users *stubUserRepo) *AuthService {
	return NewAuthService(users, testSecret, time.Hour)
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func TestAuthService_RegisterCustomer_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	user, err := svc.RegisterCustomer(context.Background(), "Alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Errorf("expected role %q, got %q", domain.RoleCustomer, user.Role)
	}

	stored, ok := users.users[user.ID]
	if !ok {
		t.Fatal("user must be persisted")
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "s3cret-pass" {
		t.Error("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Error("stored hash must verify against the password")
	}
}

func TestAuthService_RegisterTranslator_CarriesLanguages(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	user, err := svc.RegisterTranslator(context.Background(), "Tom", "tom@example.com", "s3cret-pass", []string{"DE", "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleTranslator {
		t.Errorf("expected role %q, got %q", domain.RoleTranslator, user.Role)
	}
	if len(user.Languages) != 2 || user.Languages[0] != "de" {
		t.Errorf("languages must be normalised, got %v", user.Languages)
	}
}

func TestAuthService_Register_EmailInUse(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	if _, err := svc.RegisterCustomer(context.Background(), "Alice", "alice@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// Same email, different case and role.
	if _, err := svc.RegisterAdmin(privilegedCtx(), "Mallory", "ALICE@example.com", "other-pass"); !errors.Is(err, domain.ErrEmailInUse) {
		t.Errorf("expected ErrEmailInUse, got %v", err)
	}
}

func TestAuthService_RegisterAdmin_NotSelfService(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	customer, err := svc.RegisterCustomer(context.Background(), "Alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	cases := []struct {
		name string
		ctx  context.Context
	}{
		{"anonymous", context.Background()},
		{"customer", ctxFor(customer)},
	}
	for _, tc := range cases {
		if _, err := svc.RegisterAdmin(tc.ctx, "Mallory", "mallory@example.com", "s3cret-pass"); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("%s: expected ErrUnauthorized, got %v", tc.name, err)
		}
	}
	if len(users.users) != 1 {
		t.Errorf("no admin must be persisted, have %d users", len(users.users))
	}
}

func TestAuthService_RegisterAdmin_ByAdminOrPrivileged(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	first, err := svc.RegisterAdmin(privilegedCtx(), "Root", "root@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("privileged register: %v", err)
	}
	if first.Role != domain.RoleAdmin {
		t.Fatalf("expected role %q, got %q", domain.RoleAdmin, first.Role)
	}

	second, err := svc.RegisterAdmin(ctxFor(first), "Deputy", "deputy@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("admin register: %v", err)
	}
	if second.Role != domain.RoleAdmin {
		t.Errorf("expected role %q, got %q", domain.RoleAdmin, second.Role)
	}
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	if _, err := svc.RegisterCustomer(context.Background(), "Alice", "alice@example.com", ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if len(users.users) != 0 {
		t.Error("nothing must be persisted")
	}
}

func TestAuthService_RegisterTranslator_NoLanguages(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	if _, err := svc.RegisterTranslator(context.Background(), "Tom", "tom@example.com", "s3cret-pass", nil); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	registered, err := svc.RegisterCustomer(context.Background(), "Alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user: want %q, got %q", registered.ID, user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must parse and verify: %v", err)
	}
	if sub, _ := claims["sub"].(string); sub != registered.ID {
		t.Errorf("sub claim: want %q, got %q", registered.ID, sub)
	}
	if role, _ := claims["role"].(string); role != "customer" {
		t.Errorf("role claim: want %q, got %q", "customer", role)
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token must carry an expiry")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)
	_, _ = svc.RegisterCustomer(context.Background(), "Alice", "alice@example.com", "s3cret-pass")

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	// Unknown accounts report the same error as bad passwords.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_AccountWithoutLocalCredential(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users)

	u, _ := domain.NewCustomer("Alice", "alice@example.com")
	users.add(u) // never set a password hash

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "anything"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
