package saved_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/handler/http/auth"
	hsaved "fork-kitchen/internal/handler/http/saved"
	"fork-kitchen/internal/repository"
	savedUC "fork-kitchen/internal/usecase/saved"
)

/* ───────────────────────── stubs ───────────────────────── */

type savedKey struct {
	userID   int64
	recipeID int64
}

type stubSaved struct {
	rows   map[savedKey]*entity.SavedRecipe
	nextID int64
}

func newStubSaved() *stubSaved {
	return &stubSaved{rows: map[savedKey]*entity.SavedRecipe{}}
}

func (s *stubSaved) Save(_ context.Context, userID, recipeID int64, at time.Time) (bool, error) {
	key := savedKey{userID, recipeID}
	if _, ok := s.rows[key]; ok {
		return false, nil
	}
	s.nextID++
	s.rows[key] = &entity.SavedRecipe{ID: s.nextID, UserID: userID, RecipeID: recipeID, CreatedAt: at}
	return true, nil
}

func (s *stubSaved) Unsave(_ context.Context, userID, recipeID int64) (bool, error) {
	key := savedKey{userID, recipeID}
	if _, ok := s.rows[key]; !ok {
		return false, nil
	}
	delete(s.rows, key)
	return true, nil
}

func (s *stubSaved) ListByUserCursor(_ context.Context, userID int64, _ *pagination.Cursor, limit int) ([]repository.SavedWithRecipe, error) {
	var out []repository.SavedWithRecipe
	for key, row := range s.rows {
		if key.userID != userID {
			continue
		}
		out = append(out, repository.SavedWithRecipe{Saved: row, Recipe: &entity.Recipe{
			ID:         row.RecipeID,
			PublicID:   "saved-recipe",
			Title:      "常備菜のきんぴら",
			Visibility: entity.VisibilityPublic,
		}})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// stubRecipes resolves public ids and records counter adjustments.
type stubRecipes struct {
	repository.RecipeRepository

	byPublicID map[string]*entity.Recipe
	savedDelta map[int64]int64
}

func newStubRecipes() *stubRecipes {
	return &stubRecipes{byPublicID: map[string]*entity.Recipe{}, savedDelta: map[int64]int64{}}
}

func (s *stubRecipes) GetByPublicID(_ context.Context, publicID string) (*entity.Recipe, error) {
	return s.byPublicID[publicID], nil
}

func (s *stubRecipes) AdjustSavedCount(_ context.Context, id int64, delta int64) error {
	s.savedDelta[id] += delta
	return nil
}

/* ───────────────────────── helpers ───────────────────────── */

func newService(saved *stubSaved, recipes *stubRecipes) *savedUC.Service {
	return &savedUC.Service{Saved: saved, Recipes: recipes, PageCfg: pagination.DefaultConfig()}
}

func asUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(auth.WithUser(req.Context(), userID))
}

/* ───────────────────────── tests ───────────────────────── */

func TestSaveHandler_Success(t *testing.T) {
	saved := newStubSaved()
	recipes := newStubRecipes()
	recipes.byPublicID["pub-1"] = &entity.Recipe{ID: 10, PublicID: "pub-1", CreatorID: 1, Visibility: entity.VisibilityPublic}

	handler := hsaved.SaveHandler{Svc: newService(saved, recipes)}
	req := httptest.NewRequest(http.MethodPut, "/recipes/pub-1/save", nil)
	req.SetPathValue("id", "pub-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, asUser(req, 5))

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp map[string]bool
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp["created"] {
		t.Error("created = false, want true on first save")
	}
	if recipes.savedDelta[10] != 1 {
		t.Errorf("saved_count delta = %d, want 1", recipes.savedDelta[10])
	}

	// 2回目の保存も成功するが、カウンタは動かない
	req = httptest.NewRequest(http.MethodPut, "/recipes/pub-1/save", nil)
	req.SetPathValue("id", "pub-1")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, asUser(req, 5))
	if rr.Code != http.StatusOK {
		t.Fatalf("second save: status code = %d, want %d", rr.Code, http.StatusOK)
	}
	if recipes.savedDelta[10] != 1 {
		t.Errorf("saved_count delta after repeat = %d, want still 1", recipes.savedDelta[10])
	}
}

func TestSaveHandler_RecipeNotFound(t *testing.T) {
	handler := hsaved.SaveHandler{Svc: newService(newStubSaved(), newStubRecipes())}
	req := httptest.NewRequest(http.MethodPut, "/recipes/ghost/save", nil)
	req.SetPathValue("id", "ghost")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, asUser(req, 5))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestSaveHandler_Unauthenticated(t *testing.T) {
	handler := hsaved.SaveHandler{Svc: newService(newStubSaved(), newStubRecipes())}
	req := httptest.NewRequest(http.MethodPut, "/recipes/pub-1/save", nil)
	req.SetPathValue("id", "pub-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestUnsaveHandler_Idempotent(t *testing.T) {
	saved := newStubSaved()
	recipes := newStubRecipes()
	recipes.byPublicID["pub-1"] = &entity.Recipe{ID: 10, PublicID: "pub-1", CreatorID: 1, Visibility: entity.VisibilityPublic}
	if _, err := saved.Save(context.Background(), 5, 10, time.Now()); err != nil {
		t.Fatal(err)
	}

	handler := hsaved.UnsaveHandler{Svc: newService(saved, recipes)}
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/recipes/pub-1/save", nil)
		req.SetPathValue("id", "pub-1")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, asUser(req, 5))
		if rr.Code != http.StatusNoContent {
			t.Fatalf("unsave #%d: status code = %d, want %d", i+1, rr.Code, http.StatusNoContent)
		}
	}
	if recipes.savedDelta[10] != -1 {
		t.Errorf("saved_count delta = %d, want -1 (one real removal)", recipes.savedDelta[10])
	}
}

func TestListHandler_OwnLibraryOnly(t *testing.T) {
	saved := newStubSaved()
	recipes := newStubRecipes()
	if _, err := saved.Save(context.Background(), 5, 10, time.Now()); err != nil {
		t.Fatal(err)
	}
	if _, err := saved.Save(context.Background(), 6, 11, time.Now()); err != nil {
		t.Fatal(err)
	}

	handler := hsaved.ListHandler{Svc: newService(saved, recipes), PaginationCfg: pagination.DefaultConfig()}
	req := httptest.NewRequest(http.MethodGet, "/me/saved", nil)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, asUser(req, 5))

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp struct {
		Items []hsaved.DTO `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("items = %d, want 1 (only own saves)", len(resp.Items))
	}
	if resp.Items[0].Recipe.Title != "常備菜のきんぴら" {
		t.Errorf("recipe title = %q, want the stubbed recipe", resp.Items[0].Recipe.Title)
	}
}
