package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
)

// TranslatorSelector picks a translator for a newly created project.
type TranslatorSelector interface {
	// SelectTranslator returns the chosen translator and ok=true, or ok=false
	// when no suitable translator exists. "None available" is an expected,
	// recoverable outcome, never an error.
	SelectTranslator(ctx context.Context, lang string) (*domain.User, bool, error)
}

// Assigner selects the proficient translator with the fewest open projects.
// Ties go to the first candidate in store order, so selection is reproducible.
type Assigner struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	log      zerolog.Logger
}

func NewAssigner(users ports.UserRepository, projects ports.ProjectRepository, log zerolog.Logger) *Assigner {
	return &Assigner{users: users, projects: projects, log: log}
}

func (a *Assigner) SelectTranslator(ctx context.Context, lang string) (*domain.User, bool, error) {
	ids, err := a.users.TranslatorIDsByLanguage(ctx, lang)
	if err != nil {
		return nil, false, fmt.Errorf("assignment: list translators: %w", err)
	}
	if len(ids) == 0 {
		a.log.Info().Str("target_language", lang).Msg("no translator proficient in language")
		return nil, false, nil
	}

	bestID := ""
	var bestLoad int64
	for _, id := range ids {
		load, err := a.projects.CountByTranslator(ctx, id)
		if err != nil {
			return nil, false, fmt.Errorf("assignment: count load for %s: %w", id, err)
		}
		if bestID == "" || load < bestLoad {
			bestID = id
			bestLoad = load
		}
	}

	translator, err := a.users.FindByID(ctx, bestID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Stale index entry: the id no longer resolves to a live account.
			a.log.Warn().Str("translator_id", bestID).Msg("selected translator no longer exists")
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("assignment: resolve translator: %w", err)
	}

	a.log.Info().
		Str("translator_id", translator.ID).
		Str("target_language", lang).
		Int64("load", bestLoad).
		Msg("translator selected")
	return translator, true, nil
}
