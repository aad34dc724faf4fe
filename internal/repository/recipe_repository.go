// Package repository defines the persistence interfaces of the domain.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"time"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
)

// ForkType filters a listing by a recipe's position in its fork family.
type ForkType string

const (
	ForkTypeAll      ForkType = "all"
	ForkTypeOriginal ForkType = "original"
	ForkTypeVariant  ForkType = "variant"
)

// ParseForkType maps a query-string value to a ForkType.
// Unknown or empty values fall back to ForkTypeAll.
func ParseForkType(s string) ForkType {
	switch ForkType(s) {
	case ForkTypeOriginal, ForkTypeVariant:
		return ForkType(s)
	default:
		return ForkTypeAll
	}
}

// Ranking selects the ordering strategy of an offset-mode listing.
// Cursor-mode listings are always ranked by recency; the non-monotonic
// strategies (aggregate counts, time-windowed activity) cannot be
// expressed as a stable keyset predicate.
type Ranking string

const (
	RankingRecent     Ranking = "recent"
	RankingMostForked Ranking = "mostForked"
	RankingTrending   Ranking = "trending"
	RankingPopularity Ranking = "popularity"
)

// ParseRanking maps a query-string value to a Ranking.
// Unknown or empty values fall back to RankingRecent.
func ParseRanking(s string) Ranking {
	switch Ranking(s) {
	case RankingMostForked, RankingTrending, RankingPopularity:
		return Ranking(s)
	default:
		return RankingRecent
	}
}

// TrendingWindowDays is the activity window of the trending ranking.
// It is a fixed design constant, not a per-request knob.
const TrendingWindowDays = 7

// Popularity weights. Changing any of these is a behavior-visible
// product decision, which is why they are constants and not config.
const (
	PopularityWeightView  = 1
	PopularityWeightSaved = 3
	PopularityWeightFork  = 5
	PopularityWeightLog   = 2
)

// ListFilters contains the orthogonal filters of a recipe listing.
// Nil pointer fields mean "no filter on this dimension". Tag is a
// normalized hashtag (lowercase, no leading '#').
type ListFilters struct {
	Locale     *string
	ForkType   ForkType
	Visibility *entity.Visibility
	CreatorID  *int64
	Tag        *string
}

// SearchHit is one relevance-search result row, carrying the similarity
// score alongside the recipe. The score is a ranking tiebreaker only,
// never exposed as a filter to callers.
type SearchHit struct {
	Recipe    *entity.Recipe
	Relevance float64
}

// RecipeRepository is the persistence contract of the lineage store.
//
// Conventions (shared by all repositories in this package):
//   - Get* methods return (nil, nil) when the entity does not exist.
//   - Cursor list methods fetch up to limit rows in
//     created_at DESC, id DESC order, starting after the cursor position
//     when one is given; the caller requests limit+1 rows to detect
//     whether more pages exist.
type RecipeRepository interface {
	// Create persists the recipe plus its ingredients, steps, hashtags
	// and source-locale translation in one transaction, and increments
	// the parent's fork_count when the recipe is a fork. The transaction
	// either fully commits or fully rolls back; partial lineage writes
	// are never observable. On success the recipe's ID is populated.
	Create(ctx context.Context, recipe *entity.Recipe, ingredients []entity.Ingredient, steps []entity.Step, tags []string) error

	GetByID(ctx context.Context, id int64) (*entity.Recipe, error)
	GetByPublicID(ctx context.Context, publicID string) (*entity.Recipe, error)

	// Update persists title/description/locale/visibility changes.
	// Lineage pointers are immutable and deliberately absent from the
	// UPDATE statement.
	Update(ctx context.Context, recipe *entity.Recipe) error

	// SoftDelete marks the recipe deleted and decrements the parent's
	// fork_count in the same transaction when parentID is non-nil.
	SoftDelete(ctx context.Context, id int64, parentID *int64, at time.Time) error

	// Lineage queries. All are single-index lookups over the flattened
	// root/parent pointers, never recursive.
	FindByRoot(ctx context.Context, rootID int64) ([]*entity.Recipe, error)
	FindByParent(ctx context.Context, parentID int64) ([]*entity.Recipe, error)
	CountByRoot(ctx context.Context, rootID int64) (int64, error)
	CountByParent(ctx context.Context, parentID int64) (int64, error)

	// Listing. ListCursor serves cursor mode (recency only); ListPage and
	// Count serve offset mode with a ranking strategy.
	ListCursor(ctx context.Context, filters ListFilters, cursor *pagination.Cursor, limit int) ([]*entity.Recipe, error)
	ListPage(ctx context.Context, filters ListFilters, ranking Ranking, offset, limit int) ([]*entity.Recipe, error)
	Count(ctx context.Context, filters ListFilters) (int64, error)

	// Variants of one recipe (direct forks), cursor contract.
	ListVariantsCursor(ctx context.Context, parentID int64, cursor *pagination.Cursor, limit int) ([]*entity.Recipe, error)

	// Relevance search. Offset only; ordered relevance DESC,
	// created_at DESC, id DESC.
	Search(ctx context.Context, keyword string, locale *string, offset, limit int) ([]SearchHit, error)
	CountSearch(ctx context.Context, keyword string, locale *string) (int64, error)

	// Detail content. ReplaceTags swaps the full hashtag set; callers
	// pass normalized tags.
	ListIngredients(ctx context.Context, recipeID int64) ([]entity.Ingredient, error)
	ListSteps(ctx context.Context, recipeID int64) ([]entity.Step, error)
	ListTags(ctx context.Context, recipeID int64) ([]string, error)
	ReplaceContent(ctx context.Context, recipeID int64, ingredients []entity.Ingredient, steps []entity.Step) error
	ReplaceTags(ctx context.Context, recipeID int64, tags []string) error

	// Denormalized counters are adjusted with atomic SQL arithmetic, not
	// read-modify-write in application code; decrements clamp at zero.
	AddView(ctx context.Context, id int64) error
	AdjustSavedCount(ctx context.Context, id int64, delta int64) error
	AdjustLogCount(ctx context.Context, id int64, delta int64) error

	// PurgeDeletedBefore hard-deletes soft-deleted recipes older than
	// cutoff, skipping rows still referenced as a parent or root or by
	// cooking logs. Returns the number of purged rows. This is the only
	// path that ever hard-deletes a recipe.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
