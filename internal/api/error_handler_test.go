package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/developia/translation-office/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp.Error
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrProjectNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrFeedbackNotFound, http.StatusNotFound},
		{domain.ErrOriginalFileNotFound, http.StatusNotFound},
		{domain.ErrTranslatedFileNotFound, http.StatusNotFound},
		{domain.ErrUnauthorized, http.StatusForbidden},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrInvalidArgument, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrEmailInUse, http.StatusConflict},
	}

	for _, tc := range cases {
		// Services always wrap; the mapping must survive wrapping.
		code, _ := renderError(t, fmt.Errorf("some operation: %w", tc.err))
		if code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, code)
		}
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", code)
	}
	if msg != "short and stout" {
		t.Errorf("message: got %q", msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", code)
	}
	// Internal causes never leak to the client.
	if msg != "internal server error" {
		t.Errorf("expected generic message, got %q", msg)
	}
}
