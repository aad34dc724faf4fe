package recipe

import (
	"net/http"

	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

type GetHandler struct{ Svc *recipeUC.Service }

// ServeHTTP レシピ詳細取得
// @Summary      レシピ詳細取得
// @Description  指定されたレシピを取得します（材料・手順・派生情報を含む）。非公開レシピは作成者のみ閲覧できます。
// @Tags         recipes
// @Produce      json
// @Param        id path string true "レシピ公開ID"
// @Success      200 {object} DetailDTO "レシピ詳細"
// @Failure      404 {string} string "Not found - recipe not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /recipes/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	publicID := r.PathValue("id")

	detail, err := h.Svc.Get(r.Context(), publicID, auth.UserIDPtr(r.Context()))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDetailDTO(detail))
}
