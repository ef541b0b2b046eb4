package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Feedback carries the customer's rejection reason for one rejection cycle.
// The workflow keeps at most one current feedback per project by deleting
// before a new rejection inserts.
type Feedback struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFeedback creates feedback bound to a project.
func NewFeedback(projectID, reason string) (*Feedback, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: feedback needs a project", ErrInvalidArgument)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason must not be empty", ErrInvalidArgument)
	}
	return &Feedback{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Reason:    strings.TrimSpace(reason),
		CreatedAt: time.Now().UTC(),
	}, nil
}
