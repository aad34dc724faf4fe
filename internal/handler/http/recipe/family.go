package recipe

import (
	"net/http"

	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

type FamilyHandler struct{ Svc *recipeUC.Service }

// ServeHTTP フォークファミリー取得
// @Summary      フォークファミリー取得
// @Description  指定レシピが属するフォークファミリー全体（元レシピとすべての派生レシピ）を作成順で返します。
// @Tags         recipes
// @Produce      json
// @Param        id path string true "レシピ公開ID"
// @Success      200 {array} DTO "ファミリーのレシピ一覧"
// @Failure      404 {string} string "Not found - recipe not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /recipes/{id}/family [get]
func (h FamilyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	members, err := h.Svc.Family(r.Context(), r.PathValue("id"), auth.UserIDPtr(r.Context()))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTOs(members))
}
