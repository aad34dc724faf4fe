// Package cookinglog provides use cases for "cooked it" journal
// entries: recording a log against a recipe and listing a recipe's
// history under the cursor contract.
package cookinglog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/infra/collaborator"
	"fork-kitchen/internal/repository"
)

// ErrRecipeNotFound indicates the recipe being logged does not exist,
// was deleted, or is a private recipe of another user.
var ErrRecipeNotFound = errors.New("recipe not found")

// CreateInput represents the input parameters for recording a log.
type CreateInput struct {
	RecipePublicID string
	UserID         int64
	Note           string
}

// ListResult pairs a page of logs with pagination metadata.
type ListResult struct {
	Logs       []*entity.RecipeLog
	Pagination pagination.Metadata
}

// Service provides cooking-log use cases. Writing a log bumps the
// recipe's log_count in the same request; the recipe creator is
// notified out of band and never blocks the write.
type Service struct {
	Logs    repository.RecipeLogRepository
	Recipes repository.RecipeRepository
	Collab  collaborator.Set
	PageCfg pagination.Config

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Create records a cooking log against a recipe. The first log against
// a recipe also freezes its content through the edit lock, which is why
// the write goes through even when the note is empty.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.RecipeLog, error) {
	r, err := s.visible(ctx, input.RecipePublicID, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := entity.ValidateNote(input.Note); err != nil {
		return nil, err
	}

	log := &entity.RecipeLog{
		RecipeID:  r.ID,
		UserID:    input.UserID,
		Note:      input.Note,
		CreatedAt: s.now(),
	}
	if err := s.Logs.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create log: %w", err)
	}
	if err := s.Recipes.AdjustLogCount(ctx, r.ID, 1); err != nil {
		return nil, fmt.Errorf("adjust log count: %w", err)
	}

	// Cooking your own recipe is not news to you.
	if input.UserID != r.CreatorID {
		s.Collab.Notifier.NotifyLog(ctx, collaborator.LogEvent{
			RecipePublicID: r.PublicID,
			CreatorID:      r.CreatorID,
			CookID:         input.UserID,
		})
	}
	return log, nil
}

// ListByRecipe returns a recipe's cooking history under the cursor
// contract, newest entry first.
func (s *Service) ListByRecipe(ctx context.Context, recipePublicID string, viewerID *int64, params pagination.Params) (*ListResult, error) {
	var viewer int64 = -1
	if viewerID != nil {
		viewer = *viewerID
	}
	r, err := s.visible(ctx, recipePublicID, viewer)
	if err != nil {
		return nil, err
	}

	params.Mode = pagination.ModeCursor
	params = params.WithDefaults(s.PageCfg)
	if err := params.Validate(s.PageCfg); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}
	strategy := pagination.StrategyFor(params.Mode)
	qp := strategy.CalculateQuery(params)

	logs, err := s.Logs.ListByRecipeCursor(ctx, r.ID, qp.Cursor, qp.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	hasMore := len(logs) > qp.Limit
	if hasMore {
		logs = logs[:qp.Limit]
	}
	var next *pagination.Cursor
	if hasMore && len(logs) > 0 {
		last := logs[len(logs)-1]
		next = &pagination.Cursor{Time: last.CreatedAt, ID: last.ID}
	}
	return &ListResult{
		Logs:       logs,
		Pagination: strategy.BuildMetadata(params, 0, hasMore, next),
	}, nil
}

func (s *Service) visible(ctx context.Context, publicID string, viewerID int64) (*entity.Recipe, error) {
	r, err := s.Recipes.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if r == nil || r.DeletedAt != nil {
		return nil, ErrRecipeNotFound
	}
	if r.Visibility == entity.VisibilityPrivate && r.CreatorID != viewerID {
		return nil, ErrRecipeNotFound
	}
	return r, nil
}
