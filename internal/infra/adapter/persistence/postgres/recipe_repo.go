package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/pkg/search"
	"fork-kitchen/internal/repository"
)

type RecipeRepo struct {
	db *sql.DB
}

func NewRecipeRepo(db *sql.DB) repository.RecipeRepository {
	return &RecipeRepo{db: db}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s rowScanner) (*entity.Recipe, error) {
	var r entity.Recipe
	err := s.Scan(&r.ID, &r.PublicID, &r.ParentID, &r.RootID, &r.CreatorID,
		&r.Locale, &r.Title, &r.Description, &r.Visibility,
		&r.ForkCount, &r.LogCount, &r.SavedCount, &r.ViewCount,
		&r.CreatedAt, &r.UpdatedAt, &r.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func collectRecipes(rows *sql.Rows, capHint int) ([]*entity.Recipe, error) {
	recipes := make([]*entity.Recipe, 0, capHint)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

func (repo *RecipeRepo) Create(ctx context.Context, recipe *entity.Recipe, ingredients []entity.Ingredient, steps []entity.Step, tags []string) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertRecipe = `
INSERT INTO recipes (public_id, parent_id, root_id, creator_id, locale, title, description, visibility, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
RETURNING id`
	err = tx.QueryRowContext(ctx, insertRecipe,
		recipe.PublicID, recipe.ParentID, recipe.RootID, recipe.CreatorID,
		recipe.Locale, recipe.Title, recipe.Description, string(recipe.Visibility),
		recipe.CreatedAt).Scan(&recipe.ID)
	if err != nil {
		return fmt.Errorf("Create: insert recipe: %w", err)
	}

	if err := insertContent(ctx, tx, recipe.ID, ingredients, steps); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	if err := insertTags(ctx, tx, recipe.ID, tags); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	// Source-locale translation row, so relevance search matches the
	// recipe in its own language through the same path as translations.
	const upsertTranslation = `
INSERT INTO recipe_translations (recipe_id, locale, title, description, ingredient_names)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (recipe_id, locale)
DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description, ingredient_names = EXCLUDED.ingredient_names`
	if _, err := tx.ExecContext(ctx, upsertTranslation,
		recipe.ID, recipe.Locale, recipe.Title, recipe.Description,
		joinIngredientNames(ingredients)); err != nil {
		return fmt.Errorf("Create: translation: %w", err)
	}

	if recipe.ParentID != nil {
		const bumpParent = `UPDATE recipes SET fork_count = fork_count + 1 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, bumpParent, *recipe.ParentID); err != nil {
			return fmt.Errorf("Create: parent fork_count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Create: commit: %w", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertContent(ctx context.Context, tx execer, recipeID int64, ingredients []entity.Ingredient, steps []entity.Step) error {
	const insertIngredient = `
INSERT INTO recipe_ingredients (recipe_id, name, quantity, position)
VALUES ($1, $2, $3, $4)`
	for i := range ingredients {
		if _, err := tx.ExecContext(ctx, insertIngredient,
			recipeID, ingredients[i].Name, ingredients[i].Quantity, ingredients[i].Position); err != nil {
			return fmt.Errorf("insert ingredient: %w", err)
		}
	}
	const insertStep = `
INSERT INTO recipe_steps (recipe_id, position, instruction)
VALUES ($1, $2, $3)`
	for i := range steps {
		if _, err := tx.ExecContext(ctx, insertStep,
			recipeID, steps[i].Position, steps[i].Instruction); err != nil {
			return fmt.Errorf("insert step: %w", err)
		}
	}
	return nil
}

func insertTags(ctx context.Context, tx execer, recipeID int64, tags []string) error {
	const insertTag = `
INSERT INTO recipe_tags (recipe_id, tag)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, insertTag, recipeID, tag); err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
	}
	return nil
}

func joinIngredientNames(ingredients []entity.Ingredient) string {
	names := make([]string, 0, len(ingredients))
	for i := range ingredients {
		names = append(names, ingredients[i].Name)
	}
	return strings.Join(names, ", ")
}

func (repo *RecipeRepo) GetByID(ctx context.Context, id int64) (*entity.Recipe, error) {
	const query = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE id = $1
LIMIT 1`
	r, err := scanRecipe(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return r, nil
}

func (repo *RecipeRepo) GetByPublicID(ctx context.Context, publicID string) (*entity.Recipe, error) {
	const query = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE public_id = $1
LIMIT 1`
	r, err := scanRecipe(repo.db.QueryRowContext(ctx, query, publicID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByPublicID: %w", err)
	}
	return r, nil
}

func (repo *RecipeRepo) Update(ctx context.Context, recipe *entity.Recipe) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// The stored locale decides whether the source-locale translation
	// row moves; read it under lock before overwriting.
	var oldLocale string
	err = tx.QueryRowContext(ctx,
		`SELECT locale FROM recipes WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
		recipe.ID).Scan(&oldLocale)
	if err == sql.ErrNoRows {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("Update: current locale: %w", err)
	}

	// Lineage pointers are immutable; only the editable columns appear.
	const query = `
UPDATE recipes
SET title = $1, description = $2, locale = $3, visibility = $4, updated_at = $5
WHERE id = $6 AND deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, query,
		recipe.Title, recipe.Description, recipe.Locale, string(recipe.Visibility),
		recipe.UpdatedAt, recipe.ID); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	// A locale change leaves the previous source-locale row behind with
	// text no translator produced; drop it.
	if oldLocale != recipe.Locale {
		const dropStale = `DELETE FROM recipe_translations WHERE recipe_id = $1 AND locale = $2`
		if _, err := tx.ExecContext(ctx, dropStale, recipe.ID, oldLocale); err != nil {
			return fmt.Errorf("Update: stale translation: %w", err)
		}
	}

	const upsertTranslation = `
INSERT INTO recipe_translations (recipe_id, locale, title, description, ingredient_names)
VALUES ($1, $2, $3, $4,
        (SELECT COALESCE(string_agg(name, ', ' ORDER BY position), '') FROM recipe_ingredients WHERE recipe_id = $1))
ON CONFLICT (recipe_id, locale)
DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description, ingredient_names = EXCLUDED.ingredient_names`
	if _, err := tx.ExecContext(ctx, upsertTranslation,
		recipe.ID, recipe.Locale, recipe.Title, recipe.Description); err != nil {
		return fmt.Errorf("Update: translation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Update: commit: %w", err)
	}
	return nil
}

func (repo *RecipeRepo) SoftDelete(ctx context.Context, id int64, parentID *int64, at time.Time) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("SoftDelete: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
UPDATE recipes
SET deleted_at = $1, updated_at = $1
WHERE id = $2 AND deleted_at IS NULL`
	res, err := tx.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("SoftDelete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("SoftDelete: rows affected: %w", err)
	}
	if n == 0 {
		return entity.ErrNotFound
	}

	if parentID != nil {
		const dropParent = `UPDATE recipes SET fork_count = GREATEST(fork_count - 1, 0) WHERE id = $1`
		if _, err := tx.ExecContext(ctx, dropParent, *parentID); err != nil {
			return fmt.Errorf("SoftDelete: parent fork_count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SoftDelete: commit: %w", err)
	}
	return nil
}

func (repo *RecipeRepo) FindByRoot(ctx context.Context, rootID int64) ([]*entity.Recipe, error) {
	// The root itself carries a NULL root_id, so the family is the root
	// row plus every row pointing at it.
	const query = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE (id = $1 OR root_id = $1) AND deleted_at IS NULL
ORDER BY created_at ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query, rootID)
	if err != nil {
		return nil, fmt.Errorf("FindByRoot: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectRecipes(rows, 16)
}

func (repo *RecipeRepo) FindByParent(ctx context.Context, parentID int64) ([]*entity.Recipe, error) {
	const query = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE parent_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("FindByParent: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectRecipes(rows, 16)
}

func (repo *RecipeRepo) CountByRoot(ctx context.Context, rootID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM recipes WHERE root_id = $1 AND deleted_at IS NULL`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, rootID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByRoot: %w", err)
	}
	return count, nil
}

func (repo *RecipeRepo) CountByParent(ctx context.Context, parentID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM recipes WHERE parent_id = $1 AND deleted_at IS NULL`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, parentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByParent: %w", err)
	}
	return count, nil
}

func (repo *RecipeRepo) ListCursor(ctx context.Context, filters repository.ListFilters, cursor *pagination.Cursor, limit int) ([]*entity.Recipe, error) {
	query, err := listShapeFor(pagination.ModeCursor, repository.RankingRecent, filters, cursor != nil)
	if err != nil {
		return nil, fmt.Errorf("ListCursor: %w", err)
	}
	args := filterArgs(filters)
	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
	}
	args = append(args, limit)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListCursor: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectRecipes(rows, limit)
}

func (repo *RecipeRepo) ListPage(ctx context.Context, filters repository.ListFilters, ranking repository.Ranking, offset, limit int) ([]*entity.Recipe, error) {
	query, err := listShapeFor(pagination.ModeOffset, ranking, filters, false)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	args := filterArgs(filters)
	args = append(args, limit, offset)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectRecipes(rows, limit)
}

func (repo *RecipeRepo) Count(ctx context.Context, filters repository.ListFilters) (int64, error) {
	query, err := countShapeFor(filters)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, filterArgs(filters)...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

const (
	variantsFirstQuery = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE parent_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC
LIMIT $2`

	variantsAfterQuery = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE parent_id = $1 AND deleted_at IS NULL
  AND (created_at < $2 OR (created_at = $2 AND id < $3))
ORDER BY created_at DESC, id DESC
LIMIT $4`
)

func (repo *RecipeRepo) ListVariantsCursor(ctx context.Context, parentID int64, cursor *pagination.Cursor, limit int) ([]*entity.Recipe, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cursor == nil {
		rows, err = repo.db.QueryContext(ctx, variantsFirstQuery, parentID, limit)
	} else {
		rows, err = repo.db.QueryContext(ctx, variantsAfterQuery, parentID, cursor.Time, cursor.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("ListVariantsCursor: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectRecipes(rows, limit)
}

func (repo *RecipeRepo) AddView(ctx context.Context, id int64) error {
	const query = `UPDATE recipes SET view_count = view_count + 1 WHERE id = $1 AND deleted_at IS NULL`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("AddView: %w", err)
	}
	return nil
}

// AdjustSavedCount moves the denormalized saved_count by delta in one
// statement. Doing the arithmetic in SQL rather than read-modify-write
// in Go keeps concurrent adjustments from losing updates.
func (repo *RecipeRepo) AdjustSavedCount(ctx context.Context, id int64, delta int64) error {
	const query = `UPDATE recipes SET saved_count = GREATEST(saved_count + $2, 0) WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id, delta); err != nil {
		return fmt.Errorf("AdjustSavedCount: %w", err)
	}
	return nil
}

func (repo *RecipeRepo) AdjustLogCount(ctx context.Context, id int64, delta int64) error {
	const query = `UPDATE recipes SET log_count = GREATEST(log_count + $2, 0) WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id, delta); err != nil {
		return fmt.Errorf("AdjustLogCount: %w", err)
	}
	return nil
}

func (repo *RecipeRepo) ListIngredients(ctx context.Context, recipeID int64) ([]entity.Ingredient, error) {
	const query = `
SELECT id, recipe_id, name, quantity, position
FROM recipe_ingredients
WHERE recipe_id = $1
ORDER BY position ASC`
	rows, err := repo.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("ListIngredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ingredients := make([]entity.Ingredient, 0, 16)
	for rows.Next() {
		var ing entity.Ingredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.Name, &ing.Quantity, &ing.Position); err != nil {
			return nil, fmt.Errorf("ListIngredients: scan: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (repo *RecipeRepo) ListSteps(ctx context.Context, recipeID int64) ([]entity.Step, error) {
	const query = `
SELECT id, recipe_id, position, instruction
FROM recipe_steps
WHERE recipe_id = $1
ORDER BY position ASC`
	rows, err := repo.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("ListSteps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	steps := make([]entity.Step, 0, 16)
	for rows.Next() {
		var st entity.Step
		if err := rows.Scan(&st.ID, &st.RecipeID, &st.Position, &st.Instruction); err != nil {
			return nil, fmt.Errorf("ListSteps: scan: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

func (repo *RecipeRepo) ListTags(ctx context.Context, recipeID int64) ([]string, error) {
	const query = `
SELECT tag
FROM recipe_tags
WHERE recipe_id = $1
ORDER BY tag ASC`
	rows, err := repo.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := make([]string, 0, 8)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("ListTags: scan: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (repo *RecipeRepo) ReplaceTags(ctx context.Context, recipeID int64, tags []string) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceTags: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("ReplaceTags: clear: %w", err)
	}
	if err := insertTags(ctx, tx, recipeID, tags); err != nil {
		return fmt.Errorf("ReplaceTags: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceTags: commit: %w", err)
	}
	return nil
}

func (repo *RecipeRepo) ReplaceContent(ctx context.Context, recipeID int64, ingredients []entity.Ingredient, steps []entity.Step) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceContent: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("ReplaceContent: clear ingredients: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_steps WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("ReplaceContent: clear steps: %w", err)
	}
	if err := insertContent(ctx, tx, recipeID, ingredients, steps); err != nil {
		return fmt.Errorf("ReplaceContent: %w", err)
	}

	// Keep the source-locale translation's ingredient blob in sync.
	const syncNames = `
UPDATE recipe_translations
SET ingredient_names = $2
WHERE recipe_id = $1 AND locale = (SELECT locale FROM recipes WHERE id = $1)`
	if _, err := tx.ExecContext(ctx, syncNames, recipeID, joinIngredientNames(ingredients)); err != nil {
		return fmt.Errorf("ReplaceContent: translation names: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceContent: commit: %w", err)
	}
	return nil
}

func (repo *RecipeRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	// Rows still referenced as someone's parent or root, or carrying
	// cooking logs, stay soft-deleted; hard deletion would break the
	// flattened lineage pointers of live rows.
	const query = `
DELETE FROM recipes r
WHERE r.deleted_at IS NOT NULL AND r.deleted_at < $1
  AND NOT EXISTS (SELECT 1 FROM recipes c WHERE c.parent_id = r.id OR c.root_id = r.id)
  AND NOT EXISTS (SELECT 1 FROM recipe_logs l WHERE l.recipe_id = r.id)`
	res, err := repo.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("PurgeDeletedBefore: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("PurgeDeletedBefore: rows affected: %w", err)
	}
	return n, nil
}

func (repo *RecipeRepo) Search(ctx context.Context, keyword string, locale *string, offset, limit int) ([]repository.SearchHit, error) {
	pattern := search.ILIKEPattern(keyword)
	var (
		rows *sql.Rows
		err  error
	)
	if locale != nil {
		rows, err = repo.db.QueryContext(ctx, searchLocaleQuery, keyword, pattern, *locale, limit, offset)
	} else {
		rows, err = repo.db.QueryContext(ctx, searchQuery, keyword, pattern, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	hits := make([]repository.SearchHit, 0, limit)
	for rows.Next() {
		var r entity.Recipe
		var relevance float64
		if err := rows.Scan(&r.ID, &r.PublicID, &r.ParentID, &r.RootID, &r.CreatorID,
			&r.Locale, &r.Title, &r.Description, &r.Visibility,
			&r.ForkCount, &r.LogCount, &r.SavedCount, &r.ViewCount,
			&r.CreatedAt, &r.UpdatedAt, &r.DeletedAt, &relevance); err != nil {
			return nil, fmt.Errorf("Search: scan: %w", err)
		}
		hits = append(hits, repository.SearchHit{Recipe: &r, Relevance: relevance})
	}
	return hits, rows.Err()
}

func (repo *RecipeRepo) CountSearch(ctx context.Context, keyword string, locale *string) (int64, error) {
	pattern := search.ILIKEPattern(keyword)
	var (
		count int64
		err   error
	)
	if locale != nil {
		err = repo.db.QueryRowContext(ctx, searchLocaleCountQuery, keyword, pattern, *locale).Scan(&count)
	} else {
		err = repo.db.QueryRowContext(ctx, searchCountQuery, keyword, pattern).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("CountSearch: %w", err)
	}
	return count, nil
}
