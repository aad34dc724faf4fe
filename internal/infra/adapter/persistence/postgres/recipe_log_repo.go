package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/repository"
)

type RecipeLogRepo struct {
	db *sql.DB
}

func NewRecipeLogRepo(db *sql.DB) repository.RecipeLogRepository {
	return &RecipeLogRepo{db: db}
}

func (repo *RecipeLogRepo) Create(ctx context.Context, log *entity.RecipeLog) error {
	const query = `
INSERT INTO recipe_logs (recipe_id, user_id, note, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		log.RecipeID, log.UserID, log.Note, log.CreatedAt).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *RecipeLogRepo) CountByRecipe(ctx context.Context, recipeID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM recipe_logs WHERE recipe_id = $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, recipeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByRecipe: %w", err)
	}
	return count, nil
}

const (
	logColumns = `id, recipe_id, user_id, note, created_at`

	logsFirstQuery = `
SELECT ` + logColumns + `
FROM recipe_logs
WHERE recipe_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

	logsAfterQuery = `
SELECT ` + logColumns + `
FROM recipe_logs
WHERE recipe_id = $1
  AND (created_at < $2 OR (created_at = $2 AND id < $3))
ORDER BY created_at DESC, id DESC
LIMIT $4`
)

func (repo *RecipeLogRepo) ListByRecipeCursor(ctx context.Context, recipeID int64, cursor *pagination.Cursor, limit int) ([]*entity.RecipeLog, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cursor == nil {
		rows, err = repo.db.QueryContext(ctx, logsFirstQuery, recipeID, limit)
	} else {
		rows, err = repo.db.QueryContext(ctx, logsAfterQuery, recipeID, cursor.Time, cursor.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("ListByRecipeCursor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	logs := make([]*entity.RecipeLog, 0, limit)
	for rows.Next() {
		var l entity.RecipeLog
		if err := rows.Scan(&l.ID, &l.RecipeID, &l.UserID, &l.Note, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListByRecipeCursor: scan: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
