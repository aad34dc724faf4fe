package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/repository"
)

type SavedRecipeRepo struct {
	db *sql.DB
}

func NewSavedRecipeRepo(db *sql.DB) repository.SavedRecipeRepository {
	return &SavedRecipeRepo{db: db}
}

func (repo *SavedRecipeRepo) Save(ctx context.Context, userID, recipeID int64, at time.Time) (bool, error) {
	// The unique (user_id, recipe_id) constraint makes re-saving a
	// no-op rather than an error.
	const query = `
INSERT INTO saved_recipes (user_id, recipe_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, recipe_id) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query, userID, recipeID, at)
	if err != nil {
		return false, fmt.Errorf("Save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Save: rows affected: %w", err)
	}
	return n > 0, nil
}

func (repo *SavedRecipeRepo) Unsave(ctx context.Context, userID, recipeID int64) (bool, error) {
	const query = `DELETE FROM saved_recipes WHERE user_id = $1 AND recipe_id = $2`
	res, err := repo.db.ExecContext(ctx, query, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("Unsave: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Unsave: rows affected: %w", err)
	}
	return n > 0, nil
}

const (
	savedColumns = `s.id, s.user_id, s.recipe_id, s.created_at`

	savedFirstQuery = `
SELECT ` + savedColumns + `, r.id, r.public_id, r.parent_id, r.root_id, r.creator_id, r.locale, r.title, r.description, r.visibility, r.fork_count, r.log_count, r.saved_count, r.view_count, r.created_at, r.updated_at, r.deleted_at
FROM saved_recipes s
INNER JOIN recipes r ON s.recipe_id = r.id AND r.deleted_at IS NULL
WHERE s.user_id = $1
ORDER BY s.created_at DESC, s.id DESC
LIMIT $2`

	savedAfterQuery = `
SELECT ` + savedColumns + `, r.id, r.public_id, r.parent_id, r.root_id, r.creator_id, r.locale, r.title, r.description, r.visibility, r.fork_count, r.log_count, r.saved_count, r.view_count, r.created_at, r.updated_at, r.deleted_at
FROM saved_recipes s
INNER JOIN recipes r ON s.recipe_id = r.id AND r.deleted_at IS NULL
WHERE s.user_id = $1
  AND (s.created_at < $2 OR (s.created_at = $2 AND s.id < $3))
ORDER BY s.created_at DESC, s.id DESC
LIMIT $4`
)

// ListByUserCursor pages over a user's library by the save's own
// timestamp, not the recipe's, so saving an old recipe surfaces it at
// the top. Saves whose recipe was soft-deleted are filtered out by the
// join rather than cleaned up eagerly.
func (repo *SavedRecipeRepo) ListByUserCursor(ctx context.Context, userID int64, cursor *pagination.Cursor, limit int) ([]repository.SavedWithRecipe, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cursor == nil {
		rows, err = repo.db.QueryContext(ctx, savedFirstQuery, userID, limit)
	} else {
		rows, err = repo.db.QueryContext(ctx, savedAfterQuery, userID, cursor.Time, cursor.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("ListByUserCursor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.SavedWithRecipe, 0, limit)
	for rows.Next() {
		var s entity.SavedRecipe
		var r entity.Recipe
		if err := rows.Scan(&s.ID, &s.UserID, &s.RecipeID, &s.CreatedAt,
			&r.ID, &r.PublicID, &r.ParentID, &r.RootID, &r.CreatorID,
			&r.Locale, &r.Title, &r.Description, &r.Visibility,
			&r.ForkCount, &r.LogCount, &r.SavedCount, &r.ViewCount,
			&r.CreatedAt, &r.UpdatedAt, &r.DeletedAt); err != nil {
			return nil, fmt.Errorf("ListByUserCursor: scan: %w", err)
		}
		result = append(result, repository.SavedWithRecipe{Saved: &s, Recipe: &r})
	}
	return result, rows.Err()
}
