package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/developia/translation-office/internal/core/domain"
)

type stubAuthService struct {
	registerCustomerFn   func(ctx context.Context, name, email, password string) (*domain.User, error)
	registerTranslatorFn func(ctx context.Context, name, email, password string, languages []string) (*domain.User, error)
	registerAdminFn      func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn              func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) RegisterCustomer(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerCustomerFn(ctx, name, email, password)
}

func (s *stubAuthService) RegisterTranslator(ctx context.Context, name, email, password string, languages []string) (*domain.User, error) {
	return s.registerTranslatorFn(ctx, name, email, password, languages)
}

func (s *stubAuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerAdminFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Customer(t *testing.T) {
	stub := &stubAuthService{
		registerCustomerFn: func(_ context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "alice@example.com" || password != "super-secret" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: "u1", Name: name, Email: email, Role: domain.RoleCustomer}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"super-secret","role":"customer"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" || resp["role"] != "customer" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_TranslatorPassesLanguages(t *testing.T) {
	stub := &stubAuthService{
		registerTranslatorFn: func(_ context.Context, name, email, password string, languages []string) (*domain.User, error) {
			if len(languages) != 2 || languages[0] != "de" {
				t.Fatalf("unexpected languages: %v", languages)
			}
			return &domain.User{ID: "u2", Name: name, Email: email, Role: domain.RoleTranslator, Languages: languages}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Tom","email":"tom@example.com","password":"super-secret","role":"translator","languages":["de","fr"]}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_EmailInUse(t *testing.T) {
	stub := &stubAuthService{
		registerCustomerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrEmailInUse
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"super-secret","role":"customer"}`)

	// Domain errors flow to the central error handler untouched.
	if err := handler.Register(c); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	cases := []struct {
		name string
		body string
		want int
	}{
		{"not json", `not-json`, http.StatusBadRequest},
		{"short password", `{"name":"A","email":"a@example.com","password":"short","role":"customer"}`, http.StatusUnprocessableEntity},
		{"bad role", `{"name":"A","email":"a@example.com","password":"super-secret","role":"root"}`, http.StatusUnprocessableEntity},
		{"missing email", `{"name":"A","password":"super-secret","role":"customer"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/auth/register", tc.body)
		err := handler.Register(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			t.Errorf("%s: expected HTTPError, got %v", tc.name, err)
			continue
		}
		if he.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, he.Code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "super-secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Name: "Alice", Role: domain.RoleCustomer}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"super-secret"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["name"] != "Alice" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong-one"}`)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", "{")
	err := handler.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
