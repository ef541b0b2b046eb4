package service

import (
	"context"
	"errors"
	"testing"

	"github.com/developia/translation-office/internal/core/domain"
)

func TestUserService_GetProfile(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, discardLogger)

	alice, _ := domain.NewCustomer("Alice", "alice@example.com")
	users.add(alice)

	got, err := svc.GetProfile(ctxFor(alice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != alice.ID {
		t.Errorf("want %q, got %q", alice.ID, got.ID)
	}
}

func TestUserService_GetProfile_NoCaller(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)

	if _, err := svc.GetProfile(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("anonymous: expected ErrUnauthorized, got %v", err)
	}
	// Privileged executions have no personal profile either.
	if _, err := svc.GetProfile(privilegedCtx()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("privileged: expected ErrUnauthorized, got %v", err)
	}
}

func TestUserService_ReplaceLanguages_Persists(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, discardLogger)

	tom, _ := domain.NewTranslator("Tom", "tom@example.com", []string{"de", "fr"})
	users.add(tom)

	updated, err := svc.ReplaceLanguages(ctxFor(tom), []string{"ES", "it"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Languages) != 2 || updated.Languages[0] != "es" || updated.Languages[1] != "it" {
		t.Errorf("expected wholesale replacement [es it], got %v", updated.Languages)
	}

	stored := users.users[tom.ID]
	if len(stored.Languages) != 2 || stored.Languages[0] != "es" {
		t.Errorf("replacement must be persisted, got %v", stored.Languages)
	}
}

func TestUserService_ReplaceLanguages_TranslatorOnly(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, discardLogger)

	alice, _ := domain.NewCustomer("Alice", "alice@example.com")
	users.add(alice)

	if _, err := svc.ReplaceLanguages(ctxFor(alice), []string{"de"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("customer: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.ReplaceLanguages(context.Background(), []string{"de"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("anonymous: expected ErrUnauthorized, got %v", err)
	}
}

func TestUserService_ReplaceLanguages_EmptySet(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, discardLogger)

	tom, _ := domain.NewTranslator("Tom", "tom@example.com", []string{"de"})
	users.add(tom)

	if _, err := svc.ReplaceLanguages(ctxFor(tom), nil); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	stored := users.users[tom.ID]
	if len(stored.Languages) != 1 || stored.Languages[0] != "de" {
		t.Errorf("language set must be unchanged, got %v", stored.Languages)
	}
}
