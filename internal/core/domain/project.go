package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a translation project.
type ProjectStatus string

const (
	StatusCreated   ProjectStatus = "created"
	StatusAssigned  ProjectStatus = "assigned"
	StatusCompleted ProjectStatus = "completed"
	StatusApproved  ProjectStatus = "approved"
	StatusClosed    ProjectStatus = "closed"
)

// validTransitions defines the allowed state machine transitions. The
// completed → assigned back-edge is the rejection path; the translator is
// retained across it.
var validTransitions = map[ProjectStatus][]ProjectStatus{
	StatusCreated:   {StatusAssigned, StatusClosed},
	StatusAssigned:  {StatusCompleted},
	StatusCompleted: {StatusApproved, StatusAssigned},
	StatusApproved:  {StatusClosed},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Project is the core aggregate root. TranslatorID is empty until assignment
// and survives rejection cycles; TranslatedFile is set on completion and kept
// through a later rejection so reworked uploads overwrite it.
type Project struct {
	ID             string        `json:"id"`
	CustomerID     string        `json:"customer_id"`
	TranslatorID   string        `json:"translator_id,omitempty"`
	TargetLanguage string        `json:"target_language"`
	OriginalFile   string        `json:"original_file"`
	TranslatedFile string        `json:"translated_file,omitempty"`
	Status         ProjectStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewProject creates a project owned by the given customer.
func NewProject(customer *User, targetLanguage, originalFile string) (*Project, error) {
	if customer == nil || customer.Role != RoleCustomer {
		return nil, fmt.Errorf("%w: project owner must be a customer", ErrInvalidArgument)
	}
	targetLanguage = strings.ToLower(strings.TrimSpace(targetLanguage))
	if targetLanguage == "" {
		return nil, fmt.Errorf("%w: target language must not be empty", ErrInvalidArgument)
	}
	if strings.TrimSpace(originalFile) == "" {
		return nil, fmt.Errorf("%w: original file reference must not be empty", ErrInvalidArgument)
	}
	return &Project{
		ID:             uuid.NewString(),
		CustomerID:     customer.ID,
		TargetLanguage: targetLanguage,
		OriginalFile:   originalFile,
		Status:         StatusCreated,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// AssignTranslator binds a translator and moves the project to assigned.
func (p *Project) AssignTranslator(u *User) error {
	if u == nil || u.Role != RoleTranslator {
		return fmt.Errorf("%w: assignee must be a translator", ErrInvalidArgument)
	}
	// Only fresh projects take an assignment; the completed → assigned
	// back-edge belongs to Reject and keeps the existing translator.
	if p.Status != StatusCreated {
		return fmt.Errorf("%w: cannot assign from %s", ErrInvalidTransition, p.Status)
	}
	p.TranslatorID = u.ID
	p.Status = StatusAssigned
	return nil
}

// Complete records the translated file reference and moves the project to completed.
func (p *Project) Complete(fileRef string) error {
	if strings.TrimSpace(fileRef) == "" {
		return fmt.Errorf("%w: translated file reference must not be empty", ErrInvalidArgument)
	}
	if p.Status != StatusAssigned {
		return fmt.Errorf("%w: cannot complete from %s", ErrInvalidTransition, p.Status)
	}
	p.TranslatedFile = fileRef
	p.Status = StatusCompleted
	return nil
}

// Approve accepts the completed translation.
func (p *Project) Approve() error {
	if p.Status != StatusCompleted {
		return fmt.Errorf("%w: cannot approve from %s", ErrInvalidTransition, p.Status)
	}
	p.Status = StatusApproved
	return nil
}

// Reject sends a completed project back to the assigned translator for rework
// and returns the feedback carrying the rejection reason. The translator
// binding is retained.
func (p *Project) Reject(reason string) (*Feedback, error) {
	if p.Status != StatusCompleted {
		return nil, fmt.Errorf("%w: cannot reject from %s", ErrInvalidTransition, p.Status)
	}
	feedback, err := NewFeedback(p.ID, reason)
	if err != nil {
		return nil, err
	}
	p.Status = StatusAssigned
	return feedback, nil
}

// Close ends the project. Only never-assigned or approved projects can close;
// the record is retained for audit.
func (p *Project) Close() error {
	return p.checkThenSet(StatusClosed)
}

func (p *Project) checkTransition(next ProjectStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, p.Status, next)
	}
	return nil
}

func (p *Project) checkThenSet(next ProjectStatus) error {
	if err := p.checkTransition(next); err != nil {
		return err
	}
	p.Status = next
	return nil
}
