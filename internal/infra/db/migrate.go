package db

import (
	"database/sql"
)

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS recipes (
    id          BIGSERIAL PRIMARY KEY,
    public_id   TEXT NOT NULL UNIQUE,
    parent_id   BIGINT REFERENCES recipes(id),
    root_id     BIGINT REFERENCES recipes(id),
    creator_id  BIGINT NOT NULL,
    locale      VARCHAR(5) NOT NULL,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    visibility  VARCHAR(10) NOT NULL DEFAULT 'private',
    fork_count  BIGINT NOT NULL DEFAULT 0,
    log_count   BIGINT NOT NULL DEFAULT 0,
    saved_count BIGINT NOT NULL DEFAULT 0,
    view_count  BIGINT NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted_at  TIMESTAMPTZ
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS recipe_ingredients (
    id        BIGSERIAL PRIMARY KEY,
    recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    name      TEXT NOT NULL,
    quantity  TEXT NOT NULL DEFAULT '',
    position  INT NOT NULL
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS recipe_steps (
    id          BIGSERIAL PRIMARY KEY,
    recipe_id   BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    position    INT NOT NULL,
    instruction TEXT NOT NULL
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS recipe_tags (
    recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    tag       VARCHAR(50) NOT NULL,
    PRIMARY KEY (recipe_id, tag)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS recipe_translations (
    recipe_id        BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    locale           VARCHAR(5) NOT NULL,
    title            TEXT NOT NULL DEFAULT '',
    description      TEXT NOT NULL DEFAULT '',
    ingredient_names TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (recipe_id, locale)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS saved_recipes (
    id         BIGSERIAL PRIMARY KEY,
    user_id    BIGINT NOT NULL,
    recipe_id  BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, recipe_id)
)`); err != nil {
		return err
	}

	// No cascade here: recipes with logs are never hard-deleted, the
	// purge query checks for them explicitly.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS recipe_logs (
    id         BIGSERIAL PRIMARY KEY,
    recipe_id  BIGINT NOT NULL REFERENCES recipes(id),
    user_id    BIGINT NOT NULL,
    note       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// Composite index matching the cursor ordering contract.
		`CREATE INDEX IF NOT EXISTS idx_recipes_created_at_id ON recipes(created_at DESC, id DESC) WHERE deleted_at IS NULL`,
		// Flattened lineage lookups.
		`CREATE INDEX IF NOT EXISTS idx_recipes_parent_id ON recipes(parent_id) WHERE parent_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_root_id ON recipes(root_id) WHERE root_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_creator_id ON recipes(creator_id)`,
		// Retention purge scan.
		`CREATE INDEX IF NOT EXISTS idx_recipes_deleted_at ON recipes(deleted_at) WHERE deleted_at IS NOT NULL`,
		// Hashtag listing filter.
		`CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_recipes_user ON saved_recipes(user_id, created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_logs_recipe ON recipe_logs(recipe_id, created_at DESC, id DESC)`,
	}

	// Ignore the error: the extension may already exist or require
	// superuser rights. The trigram indexes below then fail quietly and
	// search falls back to sequential ILIKE scans.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)

	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_recipes_title_gin ON recipes USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_description_gin ON recipes USING gin(description gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_translations_title_gin ON recipe_translations USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_translations_ingredients_gin ON recipe_translations USING gin(ingredient_names gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		_, _ = db.Exec(idx)
	}

	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// Ignore the error when the constraint already exists.
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_recipes_visibility'
    ) THEN
        ALTER TABLE recipes ADD CONSTRAINT chk_recipes_visibility
        CHECK (visibility IN ('private', 'public'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown rolls back the database schema in reverse dependency
// order. Use with caution: this deletes all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS recipe_logs`,
		`DROP TABLE IF EXISTS saved_recipes`,
		`DROP TABLE IF EXISTS recipe_translations`,
		`DROP TABLE IF EXISTS recipe_tags`,
		`DROP TABLE IF EXISTS recipe_steps`,
		`DROP TABLE IF EXISTS recipe_ingredients`,
		`DROP TABLE IF EXISTS recipes CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
