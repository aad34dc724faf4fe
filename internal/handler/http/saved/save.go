package saved

import (
	"errors"
	"net/http"

	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	savedUC "fork-kitchen/internal/usecase/saved"
)

var errNoUser = errors.New("unauthorized: no authenticated user")

// statusFor maps saved-library use case errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, savedUC.ErrRecipeNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type SaveHandler struct {
	Svc *savedUC.Service
}

// ServeHTTP レシピ保存
// @Summary      レシピ保存
// @Description  レシピを自分のライブラリに保存します。既に保存済みの場合も成功します。
// @Tags         saved
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "レシピ公開ID"
// @Success      200 {object} map[string]bool "保存結果"
// @Failure      401 {string} string "Unauthorized - 認証エラー"
// @Failure      404 {string} string "Not found - recipe not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /recipes/{id}/save [put]
func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errNoUser)
		return
	}

	created, err := h.Svc.Save(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]bool{"saved": true, "created": created})
}

type UnsaveHandler struct {
	Svc *savedUC.Service
}

// ServeHTTP レシピ保存解除
// @Summary      レシピ保存解除
// @Description  レシピを自分のライブラリから削除します。未保存の場合も成功します。
// @Tags         saved
// @Security     BearerAuth
// @Param        id path string true "レシピ公開ID"
// @Success      204 {string} string "No Content"
// @Failure      401 {string} string "Unauthorized - 認証エラー"
// @Failure      404 {string} string "Not found - recipe not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /recipes/{id}/save [delete]
func (h UnsaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errNoUser)
		return
	}

	if _, err := h.Svc.Unsave(r.Context(), userID, r.PathValue("id")); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
