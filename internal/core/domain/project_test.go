package domain

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testCustomer(t *testing.T) *User {
	t.Helper()
	u, err := NewCustomer("Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("customer: %v", err)
	}
	return u
}

func testTranslator(t *testing.T, languages ...string) *User {
	t.Helper()
	if len(languages) == 0 {
		languages = []string{"de"}
	}
	u, err := NewTranslator("Tom", "tom@example.com", languages)
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	return u
}

func testProject(t *testing.T) *Project {
	t.Helper()
	p, err := NewProject(testCustomer(t), "de", "document.txt")
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// Transition table
// ---------------------------------------------------------------------------

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from ProjectStatus
		to   ProjectStatus
		want bool
	}{
		{StatusCreated, StatusAssigned, true},
		{StatusCreated, StatusClosed, true},
		{StatusCreated, StatusCompleted, false},
		{StatusAssigned, StatusCompleted, true},
		{StatusAssigned, StatusClosed, false},
		{StatusCompleted, StatusApproved, true},
		{StatusCompleted, StatusAssigned, true}, // rejection back-edge
		{StatusCompleted, StatusClosed, false},
		{StatusApproved, StatusClosed, true},
		{StatusApproved, StatusAssigned, false},
		{StatusClosed, StatusCreated, false},
		{StatusClosed, StatusClosed, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s → %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// NewProject
// ---------------------------------------------------------------------------

func TestNewProject_Success(t *testing.T) {
	customer := testCustomer(t)
	p, err := NewProject(customer, " DE ", "document.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("id must be allocated")
	}
	if p.CustomerID != customer.ID {
		t.Errorf("owner: want %q, got %q", customer.ID, p.CustomerID)
	}
	if p.TargetLanguage != "de" {
		t.Errorf("target language must be normalised, got %q", p.TargetLanguage)
	}
	if p.Status != StatusCreated {
		t.Errorf("expected status %q, got %q", StatusCreated, p.Status)
	}
	if p.TranslatorID != "" {
		t.Error("fresh project must carry no translator")
	}
}

func TestNewProject_RequiresCustomerOwner(t *testing.T) {
	if _, err := NewProject(nil, "de", "f.txt"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil owner: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := NewProject(testTranslator(t), "de", "f.txt"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("translator owner: expected ErrInvalidArgument, got %v", err)
	}
}

func TestNewProject_BlankFields(t *testing.T) {
	customer := testCustomer(t)
	if _, err := NewProject(customer, "  ", "f.txt"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("blank language: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := NewProject(customer, "de", "  "); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("blank file ref: expected ErrInvalidArgument, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// AssignTranslator
// ---------------------------------------------------------------------------

func TestAssignTranslator_Success(t *testing.T) {
	p := testProject(t)
	translator := testTranslator(t)

	if err := p.AssignTranslator(translator); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusAssigned {
		t.Errorf("expected status %q, got %q", StatusAssigned, p.Status)
	}
	if p.TranslatorID != translator.ID {
		t.Errorf("translator: want %q, got %q", translator.ID, p.TranslatorID)
	}
}

func TestAssignTranslator_OnlyFromCreated(t *testing.T) {
	p := testProject(t)
	translator := testTranslator(t)
	_ = p.AssignTranslator(translator)
	_ = p.Complete("translated.txt")

	// Rework goes through Reject, not a second assignment.
	if err := p.AssignTranslator(translator); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition from completed, got %v", err)
	}
}

func TestAssignTranslator_RejectsNonTranslator(t *testing.T) {
	p := testProject(t)
	if err := p.AssignTranslator(testCustomer(t)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if p.Status != StatusCreated {
		t.Errorf("status must be unchanged, got %q", p.Status)
	}
}

// ---------------------------------------------------------------------------
// Complete / Approve / Reject / Close
// ---------------------------------------------------------------------------

func TestComplete_Success(t *testing.T) {
	p := testProject(t)
	_ = p.AssignTranslator(testTranslator(t))

	if err := p.Complete("translated.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusCompleted {
		t.Errorf("expected status %q, got %q", StatusCompleted, p.Status)
	}
	if p.TranslatedFile != "translated.txt" {
		t.Errorf("translated file: want %q, got %q", "translated.txt", p.TranslatedFile)
	}
}

func TestComplete_InvalidState(t *testing.T) {
	p := testProject(t)
	if err := p.Complete("translated.txt"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition from created, got %v", err)
	}
}

func TestApprove_OnlyFromCompleted(t *testing.T) {
	p := testProject(t)
	_ = p.AssignTranslator(testTranslator(t))

	if err := p.Approve(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition from assigned, got %v", err)
	}

	_ = p.Complete("translated.txt")
	if err := p.Approve(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusApproved {
		t.Errorf("expected status %q, got %q", StatusApproved, p.Status)
	}
}

func TestReject_KeepsTranslatorAndReturnsFeedback(t *testing.T) {
	p := testProject(t)
	translator := testTranslator(t)
	_ = p.AssignTranslator(translator)
	_ = p.Complete("translated.txt")

	fb, err := p.Reject("terminology is off")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusAssigned {
		t.Errorf("expected status %q, got %q", StatusAssigned, p.Status)
	}
	if p.TranslatorID != translator.ID {
		t.Error("rejection must retain the translator binding")
	}
	if p.TranslatedFile == "" {
		t.Error("rejection must keep the stale translated file for overwrite")
	}
	if fb.ProjectID != p.ID {
		t.Errorf("feedback project: want %q, got %q", p.ID, fb.ProjectID)
	}
	if fb.Reason != "terminology is off" {
		t.Errorf("feedback reason: got %q", fb.Reason)
	}
}

func TestReject_BlankReason(t *testing.T) {
	p := testProject(t)
	_ = p.AssignTranslator(testTranslator(t))
	_ = p.Complete("translated.txt")

	if _, err := p.Reject("   "); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if p.Status != StatusCompleted {
		t.Errorf("status must be unchanged on bad reason, got %q", p.Status)
	}
}

func TestReject_InvalidState(t *testing.T) {
	p := testProject(t)
	if _, err := p.Reject("nope"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition from created, got %v", err)
	}
}

func TestClose_FromCreatedAndApproved(t *testing.T) {
	fresh := testProject(t)
	if err := fresh.Close(); err != nil {
		t.Fatalf("close from created: %v", err)
	}
	if fresh.Status != StatusClosed {
		t.Errorf("expected status %q, got %q", StatusClosed, fresh.Status)
	}

	approved := testProject(t)
	_ = approved.AssignTranslator(testTranslator(t))
	_ = approved.Complete("translated.txt")
	_ = approved.Approve()
	if err := approved.Close(); err != nil {
		t.Fatalf("close from approved: %v", err)
	}
}

func TestClose_InvalidStates(t *testing.T) {
	p := testProject(t)
	_ = p.AssignTranslator(testTranslator(t))

	if err := p.Close(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("close from assigned: expected ErrInvalidTransition, got %v", err)
	}

	_ = p.Complete("translated.txt")
	if err := p.Close(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("close from completed: expected ErrInvalidTransition, got %v", err)
	}
}

func TestClosedIsTerminal(t *testing.T) {
	p := testProject(t)
	_ = p.Close()

	if err := p.AssignTranslator(testTranslator(t)); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("assign after close: expected ErrInvalidTransition, got %v", err)
	}
	if err := p.Close(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("double close: expected ErrInvalidTransition, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Rework cycle
// ---------------------------------------------------------------------------

func TestRejectCycle_CanRepeatUntilApproval(t *testing.T) {
	p := testProject(t)
	translator := testTranslator(t)
	_ = p.AssignTranslator(translator)

	for i := 0; i < 3; i++ {
		if err := p.Complete("translated.txt"); err != nil {
			t.Fatalf("cycle %d complete: %v", i, err)
		}
		if _, err := p.Reject("again"); err != nil {
			t.Fatalf("cycle %d reject: %v", i, err)
		}
		if p.TranslatorID != translator.ID {
			t.Fatalf("cycle %d: translator binding lost", i)
		}
	}

	_ = p.Complete("final.txt")
	if err := p.Approve(); err != nil {
		t.Fatalf("final approve: %v", err)
	}
}
