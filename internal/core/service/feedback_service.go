package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
	"github.com/developia/translation-office/internal/core/session"
)

// FeedbackService gates access to rejection feedback. Reads follow the
// project visibility rule; writes are owner-only — administrators are
// deliberately not special-cased for writes, only the owning customer shapes
// the feedback on their own project.
type FeedbackService struct {
	feedback ports.FeedbackRepository
	projects ports.ProjectRepository
	log      zerolog.Logger
}

func NewFeedbackService(feedback ports.FeedbackRepository, projects ports.ProjectRepository, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{feedback: feedback, projects: projects, log: log}
}

// GetFeedbackByProjectID returns the project's current feedback. Visible to
// the owning customer, the assigned translator, admins, and privileged callers.
func (s *FeedbackService) GetFeedbackByProjectID(ctx context.Context, projectID string) (*domain.Feedback, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	if !CanViewProject(session.FromContext(ctx), project) {
		return nil, fmt.Errorf("get feedback: %w", domain.ErrUnauthorized)
	}
	fb, err := s.feedback.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return fb, nil
}

// SaveFeedback persists feedback for the caller's own project.
func (s *FeedbackService) SaveFeedback(ctx context.Context, f *domain.Feedback) error {
	if f == nil || f.ProjectID == "" {
		return fmt.Errorf("save feedback: %w", domain.ErrInvalidArgument)
	}
	if err := s.requireOwner(ctx, f.ProjectID, "save feedback"); err != nil {
		return err
	}
	if err := s.feedback.Save(ctx, f); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	s.log.Info().Str("project_id", f.ProjectID).Str("feedback_id", f.ID).Msg("feedback saved")
	return nil
}

// DeleteProjectFeedbackByProjectID removes the project's feedback.
func (s *FeedbackService) DeleteProjectFeedbackByProjectID(ctx context.Context, projectID string) error {
	if err := s.requireOwner(ctx, projectID, "delete feedback"); err != nil {
		return err
	}
	if err := s.feedback.DeleteByProjectID(ctx, projectID); err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	s.log.Info().Str("project_id", projectID).Msg("feedback deleted")
	return nil
}

// GetAllFeedbacksByProjectIDs bulk-reads feedback across projects. Privileged
// callers only; every authenticated role is rejected outright.
func (s *FeedbackService) GetAllFeedbacksByProjectIDs(ctx context.Context, projectIDs []string) ([]*domain.Feedback, error) {
	if !session.FromContext(ctx).IsPrivileged() {
		return nil, fmt.Errorf("bulk feedback: %w", domain.ErrUnauthorized)
	}
	return s.feedback.GetAllByProjectIDs(ctx, projectIDs)
}

func (s *FeedbackService) requireOwner(ctx context.Context, projectID, op string) error {
	scope := session.FromContext(ctx)
	if scope.IsPrivileged() {
		return nil
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	caller := scope.Caller()
	if caller == nil || caller.ID != project.CustomerID {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}
	return nil
}

var _ ports.FeedbackService = (*FeedbackService)(nil)
