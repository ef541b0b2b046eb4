package ports

import (
	"context"

	"github.com/developia/translation-office/internal/core/domain"
)

// CreateProjectInput carries everything needed to open a new project. The
// caller identity comes from the session scope in ctx, never from the input.
type CreateProjectInput struct {
	TargetLanguage string
	FileName       string
	Content        []byte
}

// ProjectService sequences the project workflow: creation with translator
// assignment, upload, approval, rejection, closing, and visibility-scoped
// reads. Every operation authorizes against the session scope before acting.
type ProjectService interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	GetAllProjects(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	GetProjectByID(ctx context.Context, id string) (*domain.Project, error)
	GetOriginalFile(ctx context.Context, id string) (*StoredFile, error)
	GetTranslatedFile(ctx context.Context, id string) (*StoredFile, error)
	UploadTranslatedFile(ctx context.Context, id, fileName string, content []byte) (*domain.Project, error)
	ApproveProject(ctx context.Context, id string) (*domain.Project, error)
	RejectProject(ctx context.Context, id, reason string) (*domain.Project, error)
	CloseProject(ctx context.Context, id string) (*domain.Project, error)
}

// FeedbackService exposes authorization-gated access to rejection feedback.
type FeedbackService interface {
	GetFeedbackByProjectID(ctx context.Context, projectID string) (*domain.Feedback, error)
	SaveFeedback(ctx context.Context, f *domain.Feedback) error
	DeleteProjectFeedbackByProjectID(ctx context.Context, projectID string) error
	// GetAllFeedbacksByProjectIDs is restricted to privileged callers.
	GetAllFeedbacksByProjectIDs(ctx context.Context, projectIDs []string) ([]*domain.Feedback, error)
}
