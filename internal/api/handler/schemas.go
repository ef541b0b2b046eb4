package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name      string   `json:"name"      validate:"required"`
	Email     string   `json:"email"     validate:"required,email"`
	Password  string   `json:"password"  validate:"required,min=8"`
	Role      string   `json:"role"      validate:"required,oneof=customer translator admin"`
	Languages []string `json:"languages,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// --- Users ---

// Response-only types owned by the transport layer, intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Languages []string  `json:"languages,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type replaceLanguagesRequest struct {
	Languages []string `json:"languages" validate:"required,min=1"`
}

// --- Projects ---

type rejectProjectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type projectResponse struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customer_id"`
	TranslatorID   string    `json:"translator_id,omitempty"`
	TargetLanguage string    `json:"target_language"`
	OriginalFile   string    `json:"original_file"`
	TranslatedFile string    `json:"translated_file,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type listProjectsResponse struct {
	Data []projectResponse `json:"data"`
}

// --- Feedback ---

type saveFeedbackRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type feedbackResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type bulkFeedbackRequest struct {
	ProjectIDs []string `json:"project_ids" validate:"required,min=1"`
}

type listFeedbackResponse struct {
	Data []feedbackResponse `json:"data"`
}
