package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	pg "fork-kitchen/internal/infra/adapter/persistence/postgres"
	"fork-kitchen/internal/repository"
)

/* ─────────────────────────── helpers ─────────────────────────── */

var recipeCols = []string{
	"id", "public_id", "parent_id", "root_id", "creator_id",
	"locale", "title", "description", "visibility",
	"fork_count", "log_count", "saved_count", "view_count",
	"created_at", "updated_at", "deleted_at",
}

func recRow(r *entity.Recipe) *sqlmock.Rows {
	return recRows(r)
}

func recRows(recipes ...*entity.Recipe) *sqlmock.Rows {
	rows := sqlmock.NewRows(recipeCols)
	for _, r := range recipes {
		rows.AddRow(
			r.ID, r.PublicID, r.ParentID, r.RootID, r.CreatorID,
			r.Locale, r.Title, r.Description, string(r.Visibility),
			r.ForkCount, r.LogCount, r.SavedCount, r.ViewCount,
			r.CreatedAt, r.UpdatedAt, r.DeletedAt,
		)
	}
	return rows
}

func ptr[T any](v T) *T { return &v }

/* ─────────────────────────── 1. GetByPublicID ─────────────────────────── */

func TestRecipeRepo_GetByPublicID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	want := &entity.Recipe{
		ID: 7, PublicID: "pub-7", CreatorID: 3, Locale: "en",
		Title: "Miso ramen", Description: "rich broth",
		Visibility: entity.VisibilityPublic,
		CreatedAt:  now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE public_id = $1")).
		WithArgs("pub-7").
		WillReturnRows(recRow(want))

	repo := pg.NewRecipeRepo(db)
	got, err := repo.GetByPublicID(context.Background(), "pub-7")
	if err != nil {
		t.Fatalf("GetByPublicID err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_GetByPublicID_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE public_id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(recipeCols))

	repo := pg.NewRecipeRepo(db)
	got, err := repo.GetByPublicID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByPublicID err=%v", err)
	}
	if got != nil {
		t.Fatalf("want nil recipe for missing row, got %+v", got)
	}
}

/* ─────────────────────────── 2. Create ─────────────────────────── */

func TestRecipeRepo_Create_ForkBumpsParent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recipe := &entity.Recipe{
		PublicID: "pub-new", ParentID: ptr(int64(1)), RootID: ptr(int64(1)),
		CreatorID: 5, Locale: "en", Title: "Fork", Description: "d",
		Visibility: entity.VisibilityPublic, CreatedAt: now,
	}
	ingredients := []entity.Ingredient{{Name: "salt", Quantity: "1 tsp", Position: 1}}
	steps := []entity.Step{{Position: 1, Instruction: "mix"}}
	tags := []string{"vegan"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO recipes")).
		WithArgs("pub-new", int64(1), int64(1), int64(5), "en", "Fork", "d", "public", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_ingredients")).
		WithArgs(int64(42), "salt", "1 tsp", 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_steps")).
		WithArgs(int64(42), 1, "mix").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_tags")).
		WithArgs(int64(42), "vegan").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_translations")).
		WithArgs(int64(42), "en", "Fork", "d", "salt").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("fork_count = fork_count + 1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewRecipeRepo(db)
	if err := repo.Create(context.Background(), recipe, ingredients, steps, tags); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if recipe.ID != 42 {
		t.Fatalf("ID not populated: %d", recipe.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_Create_RootSkipsParentBump(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	recipe := &entity.Recipe{
		PublicID: "pub-root", CreatorID: 5, Locale: "en",
		Title: "Root", Description: "d",
		Visibility: entity.VisibilityPrivate, CreatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO recipes")).
		WithArgs("pub-root", nil, nil, int64(5), "en", "Root", "d", "private", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_translations")).
		WithArgs(int64(1), "en", "Root", "d", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := pg.NewRecipeRepo(db)
	if err := repo.Create(context.Background(), recipe, nil, nil, nil); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_Update_LocaleChangeMovesTranslation(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	recipe := &entity.Recipe{
		ID: 7, Locale: "ja", Title: "味噌ラーメン", Description: "濃厚",
		Visibility: entity.VisibilityPublic, UpdatedAt: now,
	}

	mock.ExpectBegin()
	// Stored locale differs from the incoming one.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT locale FROM recipes WHERE id = $1 AND deleted_at IS NULL FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"locale"}).AddRow("en"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE recipes")).
		WithArgs("味噌ラーメン", "濃厚", "ja", "public", now, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The old source-locale row is dropped, not left with stale text.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recipe_translations WHERE recipe_id = $1 AND locale = $2")).
		WithArgs(int64(7), "en").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The new row carries the stored ingredient blob, not an empty one.
	mock.ExpectExec(regexp.QuoteMeta("string_agg(name, ', ' ORDER BY position)")).
		WithArgs(int64(7), "ja", "味噌ラーメン", "濃厚").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := pg.NewRecipeRepo(db)
	if err := repo.Update(context.Background(), recipe); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_Update_SameLocaleKeepsRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	recipe := &entity.Recipe{
		ID: 7, Locale: "en", Title: "Miso ramen", Description: "rich",
		Visibility: entity.VisibilityPublic, UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT locale FROM recipes")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"locale"}).AddRow("en"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE recipes")).
		WithArgs("Miso ramen", "rich", "en", "public", now, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_translations")).
		WithArgs(int64(7), "en", "Miso ramen", "rich").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := pg.NewRecipeRepo(db)
	if err := repo.Update(context.Background(), recipe); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_Update_MissingRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT locale FROM recipes")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"locale"}))
	mock.ExpectRollback()

	repo := pg.NewRecipeRepo(db)
	err := repo.Update(context.Background(), &entity.Recipe{ID: 404, Locale: "en"})
	if err != entity.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRecipeRepo_ReplaceTags(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recipe_tags WHERE recipe_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_tags")).
		WithArgs(int64(7), "vegan").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_tags")).
		WithArgs(int64(7), "時短").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := pg.NewRecipeRepo(db)
	if err := repo.ReplaceTags(context.Background(), 7, []string{"vegan", "時短"}); err != nil {
		t.Fatalf("ReplaceTags err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_ListTags(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT tag\nFROM recipe_tags")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"tag"}).AddRow("quick").AddRow("vegan"))

	repo := pg.NewRecipeRepo(db)
	got, err := repo.ListTags(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListTags err=%v", err)
	}
	if len(got) != 2 || got[0] != "quick" || got[1] != "vegan" {
		t.Fatalf("tags = %v", got)
	}
}

/* ─────────────────────────── 3. Listing ─────────────────────────── */

func TestRecipeRepo_ListCursor_FirstPage(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs("public", 21).
		WillReturnRows(recRows(&entity.Recipe{
			ID: 1, PublicID: "a", CreatorID: 1, Locale: "en", Title: "t",
			Visibility: entity.VisibilityPublic, CreatedAt: now, UpdatedAt: now,
		}))

	repo := pg.NewRecipeRepo(db)
	vis := entity.VisibilityPublic
	got, err := repo.ListCursor(context.Background(),
		repository.ListFilters{Visibility: &vis}, nil, 21)
	if err != nil || len(got) != 1 {
		t.Fatalf("ListCursor err=%v len=%d", err, len(got))
	}
}

func TestRecipeRepo_ListCursor_AfterCursor(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	cur := &pagination.Cursor{Time: at, ID: 50}

	mock.ExpectQuery(regexp.QuoteMeta("(created_at < $1 OR (created_at = $1 AND id < $2))")).
		WithArgs(at, int64(50), 11).
		WillReturnRows(sqlmock.NewRows(recipeCols))

	repo := pg.NewRecipeRepo(db)
	got, err := repo.ListCursor(context.Background(), repository.ListFilters{}, cur, 11)
	if err != nil {
		t.Fatalf("ListCursor err=%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty page, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_ListPage_PopularityOrder(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("view_count * 1 + saved_count * 3 + fork_count * 5 + log_count * 2")).
		WithArgs("en", 20, 40).
		WillReturnRows(sqlmock.NewRows(recipeCols))

	repo := pg.NewRecipeRepo(db)
	_, err := repo.ListPage(context.Background(),
		repository.ListFilters{Locale: ptr("en")},
		repository.RankingPopularity, 40, 20)
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM recipes WHERE deleted_at IS NULL AND parent_id IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(123)))

	repo := pg.NewRecipeRepo(db)
	got, err := repo.Count(context.Background(),
		repository.ListFilters{ForkType: repository.ForkTypeOriginal})
	if err != nil || got != 123 {
		t.Fatalf("Count got=%d err=%v", got, err)
	}
}

/* ─────────────────────────── 4. Lifecycle ─────────────────────────── */

func TestRecipeRepo_SoftDelete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	at := time.Now()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET deleted_at = $1")).
		WithArgs(at, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("fork_count = GREATEST(fork_count - 1, 0)")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewRecipeRepo(db)
	if err := repo.SoftDelete(context.Background(), 9, ptr(int64(4)), at); err != nil {
		t.Fatalf("SoftDelete err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_SoftDelete_AlreadyGone(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET deleted_at = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := pg.NewRecipeRepo(db)
	err := repo.SoftDelete(context.Background(), 9, nil, time.Now())
	if err != entity.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

/* ─────────────────────────── 5. Counters ─────────────────────────── */

func TestRecipeRepo_AdjustSavedCount(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// Decrements clamp at zero inside the statement itself.
	mock.ExpectExec(regexp.QuoteMeta("saved_count = GREATEST(saved_count + $2, 0)")).
		WithArgs(int64(3), int64(-1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewRecipeRepo(db)
	if err := repo.AdjustSavedCount(context.Background(), 3, -1); err != nil {
		t.Fatalf("AdjustSavedCount err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_AddView(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("view_count = view_count + 1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewRecipeRepo(db)
	if err := repo.AddView(context.Background(), 3); err != nil {
		t.Fatalf("AddView err=%v", err)
	}
}

/* ─────────────────────────── 6. Search ─────────────────────────── */

func TestRecipeRepo_Search_EscapesPattern(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	cols := append(append([]string{}, recipeCols...), "relevance")
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY relevance DESC, created_at DESC, id DESC")).
		WithArgs("100% beef", `%100\% beef%`, 10, 0).
		WillReturnRows(sqlmock.NewRows(cols))

	repo := pg.NewRecipeRepo(db)
	if _, err := repo.Search(context.Background(), "100% beef", nil, 0, 10); err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecipeRepo_Search_WithLocale(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	cols := append(append([]string{}, recipeCols...), "relevance")
	rows := sqlmock.NewRows(cols).AddRow(
		int64(1), "pub-1", nil, nil, int64(2),
		"ja", "味噌汁", "dashi base", "public",
		int64(0), int64(0), int64(0), int64(0),
		now, now, nil, 0.82,
	)
	mock.ExpectQuery(regexp.QuoteMeta("locale = $3")).
		WithArgs("miso", "%miso%", "ja", 10, 0).
		WillReturnRows(rows)

	repo := pg.NewRecipeRepo(db)
	hits, err := repo.Search(context.Background(), "miso", ptr("ja"), 0, 10)
	if err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if len(hits) != 1 || hits[0].Relevance != 0.82 {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestRecipeRepo_CountSearch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("miso", "%miso%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	repo := pg.NewRecipeRepo(db)
	got, err := repo.CountSearch(context.Background(), "miso", nil)
	if err != nil || got != 4 {
		t.Fatalf("CountSearch got=%d err=%v", got, err)
	}
}

/* ─────────────────────────── 7. Purge ─────────────────────────── */

func TestRecipeRepo_PurgeDeletedBefore(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recipes r")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := pg.NewRecipeRepo(db)
	got, err := repo.PurgeDeletedBefore(context.Background(), cutoff)
	if err != nil || got != 3 {
		t.Fatalf("PurgeDeletedBefore got=%d err=%v", got, err)
	}
}
