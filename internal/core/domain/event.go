package domain

import "time"

// EventKind names a workflow occurrence worth notifying someone about.
type EventKind string

const (
	EventTranslatorAssigned    EventKind = "translator_assigned"
	EventNoTranslatorAvailable EventKind = "no_translator_available"
	EventProjectCompleted      EventKind = "project_completed"
	EventProjectApproved       EventKind = "project_approved"
	EventProjectRejected       EventKind = "project_rejected"
	EventProjectClosed         EventKind = "project_closed"
)

// Event is published by the workflow after a successful transition. Delivery
// is fire-and-forget, at most once; no consumer acknowledgment flows back.
type Event struct {
	Kind           EventKind `json:"kind"`
	ProjectID      string    `json:"project_id"`
	CustomerID     string    `json:"customer_id"`
	TranslatorID   string    `json:"translator_id,omitempty"`
	TargetLanguage string    `json:"target_language"`
	Reason         string    `json:"reason,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewProjectEvent builds an event snapshotting the project's parties.
func NewProjectEvent(kind EventKind, p *Project) Event {
	return Event{
		Kind:           kind,
		ProjectID:      p.ID,
		CustomerID:     p.CustomerID,
		TranslatorID:   p.TranslatorID,
		TargetLanguage: p.TargetLanguage,
		OccurredAt:     time.Now().UTC(),
	}
}
