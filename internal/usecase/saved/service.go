// Package saved provides use cases for the user's saved-recipes
// library: saving, unsaving, and the cursor-paginated listing.
package saved

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/repository"
)

// ErrRecipeNotFound indicates the recipe being saved does not exist,
// was deleted, or is a private recipe of another user.
var ErrRecipeNotFound = errors.New("recipe not found")

// ListResult pairs a page of library entries with pagination metadata.
type ListResult struct {
	Items      []repository.SavedWithRecipe
	Pagination pagination.Metadata
}

// Service provides saved-recipes use cases. The denormalized
// saved_count on the recipe moves only when the library state actually
// changes, so repeated saves and unsaves stay idempotent.
type Service struct {
	Saved   repository.SavedRecipeRepository
	Recipes repository.RecipeRepository
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

// Save adds the recipe to the user's library. Returns false when the
// recipe was already saved; the recipe's saved_count is only bumped on
// an actual state change.
func (s *Service) Save(ctx context.Context, userID int64, recipePublicID string) (bool, error) {
	r, err := s.Recipes.GetByPublicID(ctx, recipePublicID)
	if err != nil {
		return false, fmt.Errorf("get recipe: %w", err)
	}
	if r == nil || r.DeletedAt != nil {
		return false, ErrRecipeNotFound
	}
	if r.Visibility == entity.VisibilityPrivate && r.CreatorID != userID {
		return false, ErrRecipeNotFound
	}

	created, err := s.Saved.Save(ctx, userID, r.ID, s.now())
	if err != nil {
		return false, fmt.Errorf("save recipe: %w", err)
	}
	if created {
		if err := s.Recipes.AdjustSavedCount(ctx, r.ID, 1); err != nil {
			return true, fmt.Errorf("adjust saved count: %w", err)
		}
	}
	return created, nil
}

// Unsave removes the recipe from the user's library. Returns false when
// there was nothing to remove. Unsaving a soft-deleted recipe still
// works; its counter is left alone since the row is on its way out.
func (s *Service) Unsave(ctx context.Context, userID int64, recipePublicID string) (bool, error) {
	r, err := s.Recipes.GetByPublicID(ctx, recipePublicID)
	if err != nil {
		return false, fmt.Errorf("get recipe: %w", err)
	}
	if r == nil {
		return false, ErrRecipeNotFound
	}

	removed, err := s.Saved.Unsave(ctx, userID, r.ID)
	if err != nil {
		return false, fmt.Errorf("unsave recipe: %w", err)
	}
	if removed && r.DeletedAt == nil {
		if err := s.Recipes.AdjustSavedCount(ctx, r.ID, -1); err != nil {
			return true, fmt.Errorf("adjust saved count: %w", err)
		}
	}
	return removed, nil
}

// List returns the user's library under the cursor contract, newest
// save first. The cursor points at the save row, not the recipe, so
// re-saving a recipe moves it back to the top of the library.
func (s *Service) List(ctx context.Context, userID int64, params pagination.Params) (*ListResult, error) {
	params.Mode = pagination.ModeCursor
	params = params.WithDefaults(s.PageCfg)
	if err := params.Validate(s.PageCfg); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}
	strategy := pagination.StrategyFor(params.Mode)
	qp := strategy.CalculateQuery(params)

	rows, err := s.Saved.ListByUserCursor(ctx, userID, qp.Cursor, qp.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("list saved recipes: %w", err)
	}

	hasMore := len(rows) > qp.Limit
	if hasMore {
		rows = rows[:qp.Limit]
	}
	var next *pagination.Cursor
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1].Saved
		next = &pagination.Cursor{Time: last.CreatedAt, ID: last.ID}
	}
	return &ListResult{
		Items:      rows,
		Pagination: strategy.BuildMetadata(params, 0, hasMore, next),
	}, nil
}
