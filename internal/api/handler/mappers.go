package handler

import "github.com/developia/translation-office/internal/core/domain"

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Languages: u.Languages,
		CreatedAt: u.CreatedAt,
	}
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		TranslatorID:   p.TranslatorID,
		TargetLanguage: p.TargetLanguage,
		OriginalFile:   p.OriginalFile,
		TranslatedFile: p.TranslatedFile,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
	}
}

func toFeedbackResponse(f *domain.Feedback) feedbackResponse {
	return feedbackResponse{
		ID:        f.ID,
		ProjectID: f.ProjectID,
		Reason:    f.Reason,
		CreatedAt: f.CreatedAt,
	}
}
