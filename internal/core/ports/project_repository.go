package ports

import (
	"context"

	"github.com/developia/translation-office/internal/core/domain"
)

// ProjectFilter narrows List results. Zero values mean "no filter"; the
// service layer forces CustomerID/TranslatorID for non-privileged callers.
type ProjectFilter struct {
	Status         domain.ProjectStatus
	TargetLanguage string
	TranslatorID   string
	CustomerID     string
	HasFeedback    *bool // nil = don't care
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	// Save upserts the project by id. Writes are last-writer-wins; the
	// orchestrator treats load-mutate-save as a critical section per project.
	Save(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	// CountByTranslator returns the translator's current load: projects
	// bound to them that have not been closed.
	CountByTranslator(ctx context.Context, translatorID string) (int64, error)
	ListIDs(ctx context.Context) ([]string, error)
	DeleteAll(ctx context.Context) error
}
