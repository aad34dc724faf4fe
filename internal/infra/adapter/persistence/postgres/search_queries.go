package postgres

import (
	"fmt"

	"fork-kitchen/internal/pkg/search"
)

// Relevance search SQL. Four fixed statements (with/without a locale
// filter, page/count), assembled once at init so the similarity floor
// stays a single shared constant.
//
// A row matches when the keyword is a literal substring (ILIKE on the
// escaped pattern) or a trigram fuzzy match at or above the floor, in
// the recipe's own text or any of its translations. Relevance is the
// best similarity across all of those fields, used for ordering only.
var (
	searchQuery            string
	searchLocaleQuery      string
	searchCountQuery       string
	searchLocaleCountQuery string
)

func init() {
	const matchTmpl = `(title ILIKE $2 OR description ILIKE $2
       OR similarity(title, $1) >= %[1]v OR similarity(description, $1) >= %[1]v
       OR EXISTS (
            SELECT 1 FROM recipe_translations t
            WHERE t.recipe_id = recipes.id
              AND (t.title ILIKE $2 OR t.description ILIKE $2 OR t.ingredient_names ILIKE $2
                   OR similarity(t.title, $1) >= %[1]v OR similarity(t.description, $1) >= %[1]v
                   OR similarity(t.ingredient_names, $1) >= %[1]v)))`
	match := fmt.Sprintf(matchTmpl, search.MinSimilarity)

	relevance := `GREATEST(
  similarity(title, $1),
  similarity(description, $1),
  COALESCE((
    SELECT MAX(GREATEST(similarity(t.title, $1), similarity(t.description, $1), similarity(t.ingredient_names, $1)))
    FROM recipe_translations t
    WHERE t.recipe_id = recipes.id), 0)
) AS relevance`

	base := `SELECT ` + recipeColumns + `, ` + relevance + `
FROM recipes
WHERE deleted_at IS NULL AND visibility = 'public'
  AND ` + match

	searchQuery = base + `
ORDER BY relevance DESC, created_at DESC, id DESC
LIMIT $3 OFFSET $4`

	searchLocaleQuery = base + `
  AND locale = $3
ORDER BY relevance DESC, created_at DESC, id DESC
LIMIT $4 OFFSET $5`

	countBase := `SELECT COUNT(*)
FROM recipes
WHERE deleted_at IS NULL AND visibility = 'public'
  AND ` + match

	searchCountQuery = countBase
	searchLocaleCountQuery = countBase + `
  AND locale = $3`
}
