package saved

import (
	"net/http"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	savedUC "fork-kitchen/internal/usecase/saved"
)

type ListHandler struct {
	Svc           *savedUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP 保存レシピ一覧取得
// @Summary      保存レシピ一覧取得
// @Description  自分のライブラリに保存したレシピを保存日時の新しい順にカーソル方式で取得します。
// @Tags         saved
// @Security     BearerAuth
// @Produce      json
// @Param        cursor query string false "カーソルトークン"
// @Param        limit  query int    false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO] "保存レシピ一覧"
// @Failure      401 {string} string "Unauthorized - 認証エラー"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /me/saved [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errNoUser)
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.List(r.Context(), userID, params)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(result.Items), result.Pagination))
}
