package recipe

import (
	"net/http"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

type VariantsHandler struct {
	Svc           *recipeUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP 派生レシピ一覧取得
// @Summary      派生レシピ一覧取得
// @Description  指定レシピから直接フォークされたレシピをカーソル方式で取得します。
// @Tags         recipes
// @Produce      json
// @Param        id     path  string true  "レシピ公開ID"
// @Param        cursor query string false "カーソルトークン"
// @Param        limit  query int    false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO] "派生レシピ一覧"
// @Failure      404 {string} string "Not found - recipe not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /recipes/{id}/variants [get]
func (h VariantsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.Variants(r.Context(), r.PathValue("id"), auth.UserIDPtr(r.Context()), params)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(result.Recipes), result.Pagination))
}
