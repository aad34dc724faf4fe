package postgres

import (
	"strings"
	"testing"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/repository"
)

func TestListShapes_AllEndInStableOrder(t *testing.T) {
	if len(listShapes) == 0 {
		t.Fatal("no shapes built")
	}
	for k, q := range listShapes {
		if !strings.Contains(q, "created_at DESC, id DESC") {
			t.Errorf("shape %+v lacks the stable tiebreaker:\n%s", k, q)
		}
		if !strings.Contains(q, "deleted_at IS NULL") {
			t.Errorf("shape %+v lacks the soft-delete guard:\n%s", k, q)
		}
	}
}

func TestListShapes_CursorModeIsRecentOnly(t *testing.T) {
	for k := range listShapes {
		if k.mode == pagination.ModeCursor && k.ranking != repository.RankingRecent {
			t.Errorf("cursor-mode shape built with ranking %q", k.ranking)
		}
		if k.mode == pagination.ModeOffset && k.afterCursor {
			t.Errorf("offset-mode shape built with a cursor predicate")
		}
	}
}

func TestListShapeFor_PlaceholderOrder(t *testing.T) {
	locale := "en"
	vis := entity.VisibilityPublic
	creator := int64(7)
	f := repository.ListFilters{
		Locale:     &locale,
		Visibility: &vis,
		CreatorID:  &creator,
		ForkType:   repository.ForkTypeVariant,
	}

	q, err := listShapeFor(pagination.ModeCursor, repository.RankingRecent, f, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, frag := range []string{
		"parent_id IS NOT NULL",
		"locale = $1",
		"visibility = $2",
		"creator_id = $3",
		"(created_at < $4 OR (created_at = $4 AND id < $5))",
		"LIMIT $6",
	} {
		if !strings.Contains(q, frag) {
			t.Errorf("missing %q in:\n%s", frag, q)
		}
	}
	if strings.Contains(q, "OFFSET") {
		t.Errorf("cursor shape must not carry OFFSET:\n%s", q)
	}

	args := filterArgs(f)
	if len(args) != 3 || args[0] != "en" || args[1] != "public" || args[2] != int64(7) {
		t.Errorf("filterArgs order mismatch: %v", args)
	}
}

func TestListShapeFor_TagFilter(t *testing.T) {
	locale := "en"
	tag := "vegan"
	f := repository.ListFilters{Locale: &locale, Tag: &tag}

	q, err := listShapeFor(pagination.ModeCursor, repository.RankingRecent, f, true)
	if err != nil {
		t.Fatal(err)
	}
	// Tag binds after the other filters, before the cursor pair.
	for _, frag := range []string{
		"locale = $1",
		"EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.recipe_id = recipes.id AND rt.tag = $2)",
		"(created_at < $3 OR (created_at = $3 AND id < $4))",
		"LIMIT $5",
	} {
		if !strings.Contains(q, frag) {
			t.Errorf("missing %q in:\n%s", frag, q)
		}
	}

	args := filterArgs(f)
	if len(args) != 2 || args[0] != "en" || args[1] != "vegan" {
		t.Errorf("filterArgs order mismatch: %v", args)
	}

	cq, err := countShapeFor(f)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(cq, "rt.tag = $2") {
		t.Errorf("count shape lacks the tag predicate:\n%s", cq)
	}
}

func TestListShapeFor_RankingFragments(t *testing.T) {
	tests := []struct {
		ranking repository.Ranking
		frag    string
	}{
		{repository.RankingRecent, "ORDER BY created_at DESC, id DESC"},
		{repository.RankingMostForked, "v.root_id = recipes.id"},
		{repository.RankingTrending, "interval '7 days'"},
		{repository.RankingPopularity, "view_count * 1 + saved_count * 3 + fork_count * 5 + log_count * 2"},
	}
	for _, tt := range tests {
		q, err := listShapeFor(pagination.ModeOffset, tt.ranking, repository.ListFilters{}, false)
		if err != nil {
			t.Fatalf("%s: %v", tt.ranking, err)
		}
		if !strings.Contains(q, tt.frag) {
			t.Errorf("%s shape missing %q:\n%s", tt.ranking, tt.frag, q)
		}
		if !strings.Contains(q, "LIMIT $1 OFFSET $2") {
			t.Errorf("%s shape placeholder order off:\n%s", tt.ranking, q)
		}
	}
}

func TestListShapeFor_CursorModeOverridesRanking(t *testing.T) {
	// A cursor request carrying a ranking parameter resolves to recency.
	q, err := listShapeFor(pagination.ModeCursor, repository.RankingPopularity, repository.ListFilters{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(q, "view_count *") {
		t.Errorf("cursor shape honored a ranking strategy:\n%s", q)
	}
}

func TestSearchQueries_GateCoversRankedFields(t *testing.T) {
	// Every field the relevance expression ranks on must also appear in
	// the match gate, or rows can rank on text they cannot match by.
	// The page queries carry each term twice (gate + relevance), the
	// count queries once (gate only).
	terms := []string{
		"similarity(t.title, $1)",
		"similarity(t.description, $1)",
		"similarity(t.ingredient_names, $1)",
	}
	for _, frag := range terms {
		for _, q := range []string{searchQuery, searchLocaleQuery} {
			if strings.Count(q, frag) != 2 {
				t.Errorf("page query carries %q %d times, want 2 (gate + relevance)",
					frag, strings.Count(q, frag))
			}
		}
		for _, q := range []string{searchCountQuery, searchLocaleCountQuery} {
			if strings.Count(q, frag) != 1 {
				t.Errorf("count query carries %q %d times, want 1", frag, strings.Count(q, frag))
			}
		}
	}
}

func TestCountShapeFor(t *testing.T) {
	locale := "ja"
	q, err := countShapeFor(repository.ListFilters{Locale: &locale, ForkType: repository.ForkTypeOriginal})
	if err != nil {
		t.Fatal(err)
	}
	want := "SELECT COUNT(*) FROM recipes WHERE deleted_at IS NULL AND parent_id IS NULL AND locale = $1"
	if q != want {
		t.Errorf("count shape:\ngot  %s\nwant %s", q, want)
	}
}
