package cookinglog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/handler/http/auth"
	hlog "fork-kitchen/internal/handler/http/cookinglog"
	"fork-kitchen/internal/infra/collaborator"
	"fork-kitchen/internal/repository"
	logUC "fork-kitchen/internal/usecase/cookinglog"
)

/* ───────────────────────── stubs ───────────────────────── */

type stubLogs struct {
	logs   []*entity.RecipeLog
	nextID int64
}

func (s *stubLogs) Create(_ context.Context, log *entity.RecipeLog) error {
	s.nextID++
	log.ID = s.nextID
	s.logs = append(s.logs, log)
	return nil
}

func (s *stubLogs) CountByRecipe(_ context.Context, recipeID int64) (int64, error) {
	var n int64
	for _, l := range s.logs {
		if l.RecipeID == recipeID {
			n++
		}
	}
	return n, nil
}

func (s *stubLogs) ListByRecipeCursor(_ context.Context, recipeID int64, _ *pagination.Cursor, limit int) ([]*entity.RecipeLog, error) {
	var out []*entity.RecipeLog
	for _, l := range s.logs {
		if l.RecipeID != recipeID {
			continue
		}
		out = append(out, l)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubRecipes struct {
	repository.RecipeRepository

	byPublicID map[string]*entity.Recipe
	logDelta   map[int64]int64
}

func (s *stubRecipes) GetByPublicID(_ context.Context, publicID string) (*entity.Recipe, error) {
	return s.byPublicID[publicID], nil
}

func (s *stubRecipes) AdjustLogCount(_ context.Context, id int64, delta int64) error {
	s.logDelta[id] += delta
	return nil
}

/* ───────────────────────── helpers ───────────────────────── */

func newService(logs *stubLogs, recipes *stubRecipes) *logUC.Service {
	return &logUC.Service{
		Logs:    logs,
		Recipes: recipes,
		Collab:  collaborator.NewNoopSet(),
		PageCfg: pagination.DefaultConfig(),
	}
}

func newStubRecipes() *stubRecipes {
	return &stubRecipes{byPublicID: map[string]*entity.Recipe{}, logDelta: map[int64]int64{}}
}

func asUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(auth.WithUser(req.Context(), userID))
}

/* ───────────────────────── tests ───────────────────────── */

func TestCreateHandler_Success(t *testing.T) {
	logs := &stubLogs{}
	recipes := newStubRecipes()
	recipes.byPublicID["pub-1"] = &entity.Recipe{ID: 10, PublicID: "pub-1", CreatorID: 1, Visibility: entity.VisibilityPublic}

	handler := hlog.CreateHandler{Svc: newService(logs, recipes)}
	body := `{"note": "唐辛子を倍にしたら家族に好評だった"}`
	req := httptest.NewRequest(http.MethodPost, "/recipes/pub-1/logs", strings.NewReader(body))
	req.SetPathValue("id", "pub-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, asUser(req, 5))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status code = %d, want %d (body %s)", rr.Code, http.StatusCreated, rr.Body.String())
	}
	var got hlog.DTO
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.UserID != 5 {
		t.Errorf("UserID = %d, want 5", got.UserID)
	}
	if len(logs.logs) != 1 || logs.logs[0].RecipeID != 10 {
		t.Fatalf("logs = %+v, want one entry against recipe 10", logs.logs)
	}
	if recipes.logDelta[10] != 1 {
		t.Errorf("log_count delta = %d, want 1", recipes.logDelta[10])
	}
}

func TestCreateHandler_NoteTooLong(t *testing.T) {
	recipes := newStubRecipes()
	recipes.byPublicID["pub-1"] = &entity.Recipe{ID: 10, PublicID: "pub-1", CreatorID: 1, Visibility: entity.VisibilityPublic}

	handler := hlog.CreateHandler{Svc: newService(&stubLogs{}, recipes)}
	body := `{"note": "` + strings.Repeat("あ", entity.MaxNoteLength+1) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/recipes/pub-1/logs", strings.NewReader(body))
	req.SetPathValue("id", "pub-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, asUser(req, 5))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateHandler_RecipeNotFound(t *testing.T) {
	handler := hlog.CreateHandler{Svc: newService(&stubLogs{}, newStubRecipes())}
	req := httptest.NewRequest(http.MethodPost, "/recipes/ghost/logs", strings.NewReader(`{"note": "x"}`))
	req.SetPathValue("id", "ghost")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, asUser(req, 5))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCreateHandler_Unauthenticated(t *testing.T) {
	handler := hlog.CreateHandler{Svc: newService(&stubLogs{}, newStubRecipes())}
	req := httptest.NewRequest(http.MethodPost, "/recipes/pub-1/logs", strings.NewReader(`{"note": "x"}`))
	req.SetPathValue("id", "pub-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestListHandler_Success(t *testing.T) {
	logs := &stubLogs{}
	recipes := newStubRecipes()
	recipes.byPublicID["pub-1"] = &entity.Recipe{ID: 10, PublicID: "pub-1", CreatorID: 1, Visibility: entity.VisibilityPublic}
	now := time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := logs.Create(context.Background(), &entity.RecipeLog{RecipeID: 10, UserID: 5, CreatedAt: now}); err != nil {
			t.Fatal(err)
		}
	}

	handler := hlog.ListHandler{Svc: newService(logs, recipes), PaginationCfg: pagination.DefaultConfig()}
	req := httptest.NewRequest(http.MethodGet, "/recipes/pub-1/logs", nil)
	req.SetPathValue("id", "pub-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp struct {
		Items []hlog.DTO `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Errorf("items = %d, want 3", len(resp.Items))
	}
}

func TestListHandler_PrivateRecipeHidden(t *testing.T) {
	recipes := newStubRecipes()
	recipes.byPublicID["secret"] = &entity.Recipe{ID: 10, PublicID: "secret", CreatorID: 1, Visibility: entity.VisibilityPrivate}

	handler := hlog.ListHandler{Svc: newService(&stubLogs{}, recipes), PaginationCfg: pagination.DefaultConfig()}
	req := httptest.NewRequest(http.MethodGet, "/recipes/secret/logs", nil)
	req.SetPathValue("id", "secret")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
