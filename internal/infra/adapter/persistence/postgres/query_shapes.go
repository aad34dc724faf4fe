// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/repository"
)

// recipeColumns is the canonical column list of the recipes table. Every
// listing shape selects exactly these columns so one scan helper serves
// them all.
const recipeColumns = `id, public_id, parent_id, root_id, creator_id, locale, title, description, visibility, fork_count, log_count, saved_count, view_count, created_at, updated_at, deleted_at`

// listShapeKey identifies one precompiled listing query shape.
//
// The hot-path listing queries are never concatenated at request time:
// every valid combination of (pagination mode, ranking, fork-type
// filter, optional filters, cursor position) maps to one fixed SQL
// string built once at package init. This keeps query plans cacheable
// and the whole query surface auditable by iterating listShapes.
type listShapeKey struct {
	mode        pagination.Mode
	ranking     repository.Ranking
	forkType    repository.ForkType
	hasLocale   bool
	hasVis      bool
	hasCreator  bool
	hasTag      bool
	afterCursor bool // cursor mode only: position predicate present
}

// countShapeKey identifies one precompiled COUNT query shape.
type countShapeKey struct {
	forkType   repository.ForkType
	hasLocale  bool
	hasVis     bool
	hasCreator bool
	hasTag     bool
}

var (
	listShapes  = map[listShapeKey]string{}
	countShapes = map[countShapeKey]string{}
)

var forkTypes = []repository.ForkType{
	repository.ForkTypeAll,
	repository.ForkTypeOriginal,
	repository.ForkTypeVariant,
}

var rankings = []repository.Ranking{
	repository.RankingRecent,
	repository.RankingMostForked,
	repository.RankingTrending,
	repository.RankingPopularity,
}

func init() {
	for _, ft := range forkTypes {
		for _, hasLocale := range []bool{false, true} {
			for _, hasVis := range []bool{false, true} {
				for _, hasCreator := range []bool{false, true} {
					for _, hasTag := range []bool{false, true} {
						// Cursor mode is restricted to recency ordering.
						for _, after := range []bool{false, true} {
							k := listShapeKey{
								mode: pagination.ModeCursor, ranking: repository.RankingRecent,
								forkType: ft, hasLocale: hasLocale, hasVis: hasVis,
								hasCreator: hasCreator, hasTag: hasTag, afterCursor: after,
							}
							listShapes[k] = buildListShape(k)
						}
						// Offset mode honors every ranking strategy.
						for _, rk := range rankings {
							k := listShapeKey{
								mode: pagination.ModeOffset, ranking: rk,
								forkType: ft, hasLocale: hasLocale, hasVis: hasVis,
								hasCreator: hasCreator, hasTag: hasTag,
							}
							listShapes[k] = buildListShape(k)
						}
						ck := countShapeKey{forkType: ft, hasLocale: hasLocale, hasVis: hasVis, hasCreator: hasCreator, hasTag: hasTag}
						countShapes[ck] = buildCountShape(ck)
					}
				}
			}
		}
	}
}

// filterConditions appends the WHERE conditions shared by list and count
// shapes, in the fixed argument order locale, visibility, creator, tag.
// Returns the next placeholder index.
func filterConditions(conds []string, ft repository.ForkType, hasLocale, hasVis, hasCreator, hasTag bool) ([]string, int) {
	switch ft {
	case repository.ForkTypeOriginal:
		conds = append(conds, "parent_id IS NULL")
	case repository.ForkTypeVariant:
		conds = append(conds, "parent_id IS NOT NULL")
	}
	n := 1
	if hasLocale {
		conds = append(conds, fmt.Sprintf("locale = $%d", n))
		n++
	}
	if hasVis {
		conds = append(conds, fmt.Sprintf("visibility = $%d", n))
		n++
	}
	if hasCreator {
		conds = append(conds, fmt.Sprintf("creator_id = $%d", n))
		n++
	}
	if hasTag {
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.recipe_id = recipes.id AND rt.tag = $%d)", n))
		n++
	}
	return conds, n
}

func buildListShape(k listShapeKey) string {
	conds := []string{"deleted_at IS NULL"}
	conds, n := filterConditions(conds, k.forkType, k.hasLocale, k.hasVis, k.hasCreator, k.hasTag)

	if k.afterCursor {
		// The compound keyset predicate. A bare created_at comparison
		// would drop or duplicate rows sharing a timestamp.
		conds = append(conds, fmt.Sprintf("(created_at < $%d OR (created_at = $%d AND id < $%d))", n, n, n+1))
		n += 2
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(recipeColumns)
	b.WriteString("\nFROM recipes\nWHERE ")
	b.WriteString(strings.Join(conds, " AND "))
	b.WriteString("\n")
	b.WriteString(orderBy(k.ranking))
	fmt.Fprintf(&b, "\nLIMIT $%d", n)
	n++
	if k.mode == pagination.ModeOffset {
		fmt.Fprintf(&b, " OFFSET $%d", n)
	}
	return b.String()
}

func buildCountShape(k countShapeKey) string {
	conds := []string{"deleted_at IS NULL"}
	conds, _ = filterConditions(conds, k.forkType, k.hasLocale, k.hasVis, k.hasCreator, k.hasTag)
	return "SELECT COUNT(*) FROM recipes WHERE " + strings.Join(conds, " AND ")
}

// orderBy returns the ORDER BY contract of a ranking strategy. Every
// strategy ends in created_at DESC, id DESC so ties never produce
// nondeterministic ordering across repeated calls.
func orderBy(r repository.Ranking) string {
	switch r {
	case repository.RankingMostForked:
		return "ORDER BY (SELECT COUNT(*) FROM recipes v WHERE v.root_id = recipes.id AND v.deleted_at IS NULL) DESC, created_at DESC, id DESC"
	case repository.RankingTrending:
		return fmt.Sprintf("ORDER BY ((SELECT COUNT(*) FROM recipes v WHERE v.root_id = recipes.id AND v.deleted_at IS NULL AND v.created_at >= now() - interval '%d days') + (SELECT COUNT(*) FROM recipe_logs l WHERE l.recipe_id = recipes.id AND l.created_at >= now() - interval '%d days')) DESC, created_at DESC, id DESC",
			repository.TrendingWindowDays, repository.TrendingWindowDays)
	case repository.RankingPopularity:
		return fmt.Sprintf("ORDER BY (view_count * %d + saved_count * %d + fork_count * %d + log_count * %d) DESC, created_at DESC, id DESC",
			repository.PopularityWeightView, repository.PopularityWeightSaved,
			repository.PopularityWeightFork, repository.PopularityWeightLog)
	default:
		return "ORDER BY created_at DESC, id DESC"
	}
}

// listShapeFor resolves filters to a precompiled listing shape.
func listShapeFor(mode pagination.Mode, ranking repository.Ranking, f repository.ListFilters, afterCursor bool) (string, error) {
	ft := f.ForkType
	if ft == "" {
		ft = repository.ForkTypeAll
	}
	if mode == pagination.ModeCursor {
		// Cursor mode resolves to recency by contract.
		ranking = repository.RankingRecent
	}
	k := listShapeKey{
		mode:        mode,
		ranking:     ranking,
		forkType:    ft,
		hasLocale:   f.Locale != nil,
		hasVis:      f.Visibility != nil,
		hasCreator:  f.CreatorID != nil,
		hasTag:      f.Tag != nil,
		afterCursor: afterCursor,
	}
	q, ok := listShapes[k]
	if !ok {
		return "", fmt.Errorf("no list shape for %+v", k)
	}
	return q, nil
}

// countShapeFor resolves filters to a precompiled COUNT shape.
func countShapeFor(f repository.ListFilters) (string, error) {
	ft := f.ForkType
	if ft == "" {
		ft = repository.ForkTypeAll
	}
	k := countShapeKey{
		forkType:   ft,
		hasLocale:  f.Locale != nil,
		hasVis:     f.Visibility != nil,
		hasCreator: f.CreatorID != nil,
		hasTag:     f.Tag != nil,
	}
	q, ok := countShapes[k]
	if !ok {
		return "", fmt.Errorf("no count shape for %+v", k)
	}
	return q, nil
}

// filterArgs assembles the arguments matching the fixed placeholder
// order of filterConditions.
func filterArgs(f repository.ListFilters) []any {
	args := make([]any, 0, 4)
	if f.Locale != nil {
		args = append(args, *f.Locale)
	}
	if f.Visibility != nil {
		args = append(args, string(*f.Visibility))
	}
	if f.CreatorID != nil {
		args = append(args, *f.CreatorID)
	}
	if f.Tag != nil {
		args = append(args, *f.Tag)
	}
	return args
}
