package repository

import (
	"context"
	"time"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
)

// SavedWithRecipe pairs a saved-recipe row with the recipe it points at,
// so library listings do not need an N+1 lookup per row.
type SavedWithRecipe struct {
	Saved  *entity.SavedRecipe
	Recipe *entity.Recipe
}

// SavedRecipeRepository persists the user's saved-recipes library.
type SavedRecipeRepository interface {
	// Save records the save; returns false when the recipe was already
	// saved by this user (the operation is idempotent).
	Save(ctx context.Context, userID, recipeID int64, at time.Time) (bool, error)

	// Unsave removes the save; returns false when there was nothing to
	// remove.
	Unsave(ctx context.Context, userID, recipeID int64) (bool, error)

	// ListByUserCursor lists a user's saves under the cursor contract,
	// ordered by the save's own created_at DESC, id DESC.
	ListByUserCursor(ctx context.Context, userID int64, cursor *pagination.Cursor, limit int) ([]SavedWithRecipe, error)
}

// RecipeLogRepository persists cooking-log entries.
type RecipeLogRepository interface {
	Create(ctx context.Context, log *entity.RecipeLog) error
	CountByRecipe(ctx context.Context, recipeID int64) (int64, error)

	// ListByRecipeCursor lists a recipe's logs under the cursor contract,
	// ordered by the log's own created_at DESC, id DESC.
	ListByRecipeCursor(ctx context.Context, recipeID int64, cursor *pagination.Cursor, limit int) ([]*entity.RecipeLog, error)
}
