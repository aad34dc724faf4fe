package recipe

import (
	"net/http"

	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

type DeleteHandler struct{ Svc *recipeUC.Service }

// ServeHTTP レシピ削除
// @Summary      レシピ削除
// @Description  レシピを論理削除します。更新と同じ編集ロックが適用されます。
// @Tags         recipes
// @Security     BearerAuth
// @Param        id path string true "レシピ公開ID"
// @Success      204 "No Content"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      404 {string} string "Not found - recipe not found"
// @Failure      409 {object} map[string]string "Conflict - edit lock (not-owner / has-variants / has-logs)"
// @Router       /recipes/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errNoUser)
		return
	}

	if err := h.Svc.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
