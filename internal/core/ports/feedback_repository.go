package ports

import (
	"context"

	"github.com/developia/translation-office/internal/core/domain"
)

// FeedbackRepository defines persistence operations for rejection feedback.
// The workflow's delete-before-insert discipline keeps at most one current
// row per project.
type FeedbackRepository interface {
	GetByProjectID(ctx context.Context, projectID string) (*domain.Feedback, error)
	Save(ctx context.Context, f *domain.Feedback) error
	// DeleteByProjectID removes the project's feedback. Deleting a project
	// without feedback is not an error.
	DeleteByProjectID(ctx context.Context, projectID string) error
	DeleteAll(ctx context.Context) error
	GetAllByProjectIDs(ctx context.Context, projectIDs []string) ([]*domain.Feedback, error)
}
