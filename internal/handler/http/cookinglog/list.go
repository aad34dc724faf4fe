package cookinglog

import (
	"net/http"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	logUC "fork-kitchen/internal/usecase/cookinglog"
)

type ListHandler struct {
	Svc           *logUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP 調理ログ一覧取得
// @Summary      調理ログ一覧取得
// @Description  レシピの調理ログを新しい順にカーソル方式で取得します。
// @Tags         cooking-logs
// @Produce      json
// @Param        id     path  string true  "レシピ公開ID"
// @Param        cursor query string false "カーソルトークン"
// @Param        limit  query int    false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO] "調理ログ一覧"
// @Failure      404 {string} string "Not found - recipe not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /recipes/{id}/logs [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.ListByRecipe(r.Context(), r.PathValue("id"), auth.UserIDPtr(r.Context()), params)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(result.Logs), result.Pagination))
}
