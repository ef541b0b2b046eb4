// Package session carries the caller identity for one unit of work. The HTTP
// middleware builds a Scope per request and stores it in the request context,
// so the scope's lifetime is bounded by the request and cleanup is guaranteed
// even when a handler panics.
package session

import (
	"context"

	"github.com/developia/translation-office/internal/core/domain"
)

// Scope tracks who is calling during one unit of work: either an
// authenticated user, or a privileged system actor exempt from ownership and
// role checks. A Scope is not safe for concurrent use across goroutines; each
// unit of work owns its own instance.
type Scope struct {
	caller     *domain.User
	privileged bool
}

// NewScope returns an empty scope: no caller, not privileged.
func NewScope() *Scope {
	return &Scope{}
}

// SetCaller binds the unit of work to user and drops any privileged flag.
func (s *Scope) SetCaller(u *domain.User) {
	s.caller = u
	s.privileged = false
}

// SetPrivileged marks the unit of work as having full access. Any bound
// caller is cleared.
func (s *Scope) SetPrivileged() {
	s.caller = nil
	s.privileged = true
}

// Caller returns the bound user, or nil when privileged or unset. Absence of
// a caller is a valid state; guarded operations must check and reject it.
func (s *Scope) Caller() *domain.User {
	if s.privileged {
		return nil
	}
	return s.caller
}

// IsPrivileged reports whether the unit of work bypasses ownership and role checks.
func (s *Scope) IsPrivileged() bool {
	return s.privileged
}

// RunPrivileged executes action with full access and restores the exact
// caller/privileged state that was active before the call, whether action
// succeeds or fails. Nested calls restore their respective prior states.
func (s *Scope) RunPrivileged(action func() error) error {
	prevCaller, prevPrivileged := s.caller, s.privileged
	s.caller, s.privileged = nil, true
	defer func() {
		s.caller, s.privileged = prevCaller, prevPrivileged
	}()
	return action()
}

// Clear unconditionally drops the caller and the privileged flag.
func (s *Scope) Clear() {
	s.caller = nil
	s.privileged = false
}

type ctxKey struct{}

// WithScope returns a context carrying the scope.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the scope bound to ctx. A context without a scope
// yields an empty one, so callers never branch on nil; an empty scope simply
// fails every authorization check downstream.
func FromContext(ctx context.Context) *Scope {
	if s, ok := ctx.Value(ctxKey{}).(*Scope); ok {
		return s
	}
	return NewScope()
}
