package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
	"github.com/developia/translation-office/internal/core/session"
)

// ProjectService sequences the project workflow. Every operation resolves the
// caller from the session scope, authorizes before touching any entity, runs
// the domain transition, persists, and publishes an event. Publishing is
// fire-and-forget; a lost event never fails the operation.
type ProjectService struct {
	projects  ports.ProjectRepository
	users     ports.UserRepository
	feedback  ports.FeedbackRepository
	files     ports.FileStorage
	selector  TranslatorSelector
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	users ports.UserRepository,
	feedback ports.FeedbackRepository,
	files ports.FileStorage,
	selector TranslatorSelector,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:  projects,
		users:     users,
		feedback:  feedback,
		files:     files,
		selector:  selector,
		publisher: publisher,
		log:       log,
	}
}

// CreateProject opens a project for the calling customer, stores the original
// document, and attempts translator assignment. When no translator is
// proficient in the target language the project stays in created and a
// no-translator event is published instead.
//
// The file write happens before the first project save. A failure in either
// step fails the whole call without compensation, so a storage crash between
// the two can leave an orphaned blob behind.
func (s *ProjectService) CreateProject(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	caller := session.FromContext(ctx).Caller()
	if caller == nil || caller.Role != domain.RoleCustomer {
		return nil, fmt.Errorf("create project: %w", domain.ErrUnauthorized)
	}

	project, err := domain.NewProject(caller, in.TargetLanguage, in.FileName)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if err := s.files.SaveOriginal(ctx, project.ID, in.FileName, in.Content); err != nil {
		s.log.Error().Err(err).Str("project_id", project.ID).Msg("failed to store original file")
		return nil, fmt.Errorf("create project: store original: %w", err)
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	translator, ok, err := s.selector.SelectTranslator(ctx, project.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if !ok {
		s.log.Info().Str("project_id", project.ID).Str("target_language", project.TargetLanguage).Msg("project created without translator")
		s.publisher.Publish(domain.NewProjectEvent(domain.EventNoTranslatorAvailable, project))
		return project, nil
	}

	if err := project.AssignTranslator(translator); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().
		Str("project_id", project.ID).
		Str("customer_id", caller.ID).
		Str("translator_id", translator.ID).
		Str("target_language", project.TargetLanguage).
		Msg("project created and assigned")
	s.publisher.Publish(domain.NewProjectEvent(domain.EventTranslatorAssigned, project))
	return project, nil
}

// GetAllProjects lists projects matching filter. Non-privileged customers and
// translators are implicitly restricted to their own projects regardless of
// what the filter asks for; admins and privileged callers see everything.
func (s *ProjectService) GetAllProjects(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, error) {
	scope := session.FromContext(ctx)
	if !scope.IsPrivileged() {
		caller := scope.Caller()
		if caller == nil {
			return nil, fmt.Errorf("list projects: %w", domain.ErrUnauthorized)
		}
		switch caller.Role {
		case domain.RoleCustomer:
			filter.CustomerID = caller.ID
		case domain.RoleTranslator:
			filter.TranslatorID = caller.ID
		case domain.RoleAdmin:
			// unrestricted
		}
	}
	return s.projects.List(ctx, filter)
}

// GetProjectByID returns the project when the caller may see it: the owning
// customer, the assigned translator, an admin, or a privileged caller.
func (s *ProjectService) GetProjectByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.loadVisible(ctx, id)
}

// GetOriginalFile returns the stored original document of a visible project.
func (s *ProjectService) GetOriginalFile(ctx context.Context, id string) (*ports.StoredFile, error) {
	project, err := s.loadVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	file, err := s.files.OriginalFile(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("get original file: %w", err)
	}
	return file, nil
}

// GetTranslatedFile returns the stored translation of a visible project. A
// project that has never been completed reports translated-file-not-found,
// distinct from the original side.
func (s *ProjectService) GetTranslatedFile(ctx context.Context, id string) (*ports.StoredFile, error) {
	project, err := s.loadVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.TranslatedFile == "" {
		return nil, fmt.Errorf("get translated file: %w", domain.ErrTranslatedFileNotFound)
	}
	file, err := s.files.TranslatedFile(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("get translated file: %w", err)
	}
	return file, nil
}

// UploadTranslatedFile stores the translation and completes the project. Only
// the assigned translator (or a privileged caller) may upload.
func (s *ProjectService) UploadTranslatedFile(ctx context.Context, id, fileName string, content []byte) (*domain.Project, error) {
	scope := session.FromContext(ctx)
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("upload translation: %w", err)
	}
	if !scope.IsPrivileged() {
		caller := scope.Caller()
		if caller == nil || project.TranslatorID == "" || caller.ID != project.TranslatorID {
			return nil, fmt.Errorf("upload translation: %w", domain.ErrUnauthorized)
		}
	}

	// The transition gate runs before storage is touched; a rejected upload
	// must leave the previously stored translation intact. Completing the
	// in-memory copy first is free: if the store write fails, the mutation is
	// simply never persisted.
	if err := project.Complete(fileName); err != nil {
		return nil, fmt.Errorf("upload translation: %w", err)
	}
	if err := s.files.SaveTranslated(ctx, project.ID, fileName, content); err != nil {
		s.log.Error().Err(err).Str("project_id", project.ID).Msg("failed to store translated file")
		return nil, fmt.Errorf("upload translation: store file: %w", err)
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("upload translation: %w", err)
	}

	s.log.Info().Str("project_id", project.ID).Str("translator_id", project.TranslatorID).Msg("translation uploaded")
	s.publisher.Publish(domain.NewProjectEvent(domain.EventProjectCompleted, project))
	return project, nil
}

// ApproveProject accepts the completed translation. Owner only.
func (s *ProjectService) ApproveProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.loadOwned(ctx, id, "approve project")
	if err != nil {
		return nil, err
	}
	if err := project.Approve(); err != nil {
		return nil, fmt.Errorf("approve project: %w", err)
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("approve project: %w", err)
	}

	s.log.Info().Str("project_id", project.ID).Msg("project approved")
	s.publisher.Publish(domain.NewProjectEvent(domain.EventProjectApproved, project))
	return project, nil
}

// RejectProject sends a completed project back to its translator with the
// given reason. Owner only. Existing feedback is deleted before the domain
// transition so a failure mid-sequence can never leave two feedback rows for
// one rejection cycle; no transaction spans the two stores, so a crash after
// the project save may leave the new feedback unwritten.
func (s *ProjectService) RejectProject(ctx context.Context, id, reason string) (*domain.Project, error) {
	project, err := s.loadOwned(ctx, id, "reject project")
	if err != nil {
		return nil, err
	}

	if err := s.feedback.DeleteByProjectID(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("reject project: clear feedback: %w", err)
	}
	fb, err := project.Reject(reason)
	if err != nil {
		return nil, fmt.Errorf("reject project: %w", err)
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("reject project: %w", err)
	}

	event := domain.NewProjectEvent(domain.EventProjectRejected, project)
	event.Reason = fb.Reason
	s.publisher.Publish(event)

	if err := s.feedback.Save(ctx, fb); err != nil {
		return nil, fmt.Errorf("reject project: save feedback: %w", err)
	}

	s.log.Info().Str("project_id", project.ID).Str("translator_id", project.TranslatorID).Msg("project rejected")
	return project, nil
}

// CloseProject ends the project. Admin (or privileged) only.
func (s *ProjectService) CloseProject(ctx context.Context, id string) (*domain.Project, error) {
	scope := session.FromContext(ctx)
	if !scope.IsPrivileged() {
		caller := scope.Caller()
		if caller == nil || caller.Role != domain.RoleAdmin {
			return nil, fmt.Errorf("close project: %w", domain.ErrUnauthorized)
		}
	}

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("close project: %w", err)
	}
	if err := project.Close(); err != nil {
		return nil, fmt.Errorf("close project: %w", err)
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("close project: %w", err)
	}

	s.log.Info().Str("project_id", project.ID).Msg("project closed")
	s.publisher.Publish(domain.NewProjectEvent(domain.EventProjectClosed, project))
	return project, nil
}

// loadVisible loads a project and enforces the shared visibility rule:
// owner, assigned translator, admin, or privileged.
func (s *ProjectService) loadVisible(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if !CanViewProject(session.FromContext(ctx), project) {
		return nil, fmt.Errorf("get project: %w", domain.ErrUnauthorized)
	}
	return project, nil
}

// loadOwned loads a project and requires the caller to be the owning customer
// (privileged callers pass).
func (s *ProjectService) loadOwned(ctx context.Context, id, op string) (*domain.Project, error) {
	scope := session.FromContext(ctx)
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !scope.IsPrivileged() {
		caller := scope.Caller()
		if caller == nil || caller.ID != project.CustomerID {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
		}
	}
	return project, nil
}

// CanViewProject is the visibility rule shared by project and feedback reads.
func CanViewProject(scope *session.Scope, p *domain.Project) bool {
	if scope.IsPrivileged() {
		return true
	}
	caller := scope.Caller()
	if caller == nil {
		return false
	}
	if caller.Role == domain.RoleAdmin {
		return true
	}
	return caller.ID == p.CustomerID || (p.TranslatorID != "" && caller.ID == p.TranslatorID)
}

var _ ports.ProjectService = (*ProjectService)(nil)
