package recipe

import (
	"encoding/json"
	"net/http"

	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

type UpdateHandler struct{ Svc *recipeUC.Service }

// ServeHTTP レシピ更新
// @Summary      レシピ更新
// @Description  レシピを更新します。フォーク済み、または調理ログが付いているレシピは編集ロックにより更新できません（409）。
// @Tags         recipes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "レシピ公開ID"
// @Param        recipe body object true "更新内容"
// @Success      200 {object} DTO "更新後のレシピ"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      404 {string} string "Not found - recipe not found"
// @Failure      409 {object} map[string]string "Conflict - edit lock (not-owner / has-variants / has-logs)"
// @Router       /recipes/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errNoUser)
		return
	}

	var req struct {
		Title       *string         `json:"title"`
		Description *string         `json:"description"`
		Locale      *string         `json:"locale"`
		Visibility  *string         `json:"visibility"`
		Ingredients []IngredientDTO `json:"ingredients"`
		Steps       []StepDTO       `json:"steps"`
		Tags        []string        `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	input := recipeUC.UpdateInput{
		PublicID:    r.PathValue("id"),
		ActorID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Locale:      req.Locale,
		Ingredients: toIngredients(req.Ingredients),
		Steps:       toSteps(req.Steps),
		Tags:        req.Tags,
	}
	if req.Visibility != nil {
		v := entity.Visibility(*req.Visibility)
		input.Visibility = &v
	}

	updated, err := h.Svc.Update(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(updated))
}

// respondError renders a use case error. Edit-lock rejections carry
// their reason so clients can explain what to do (fork instead of edit).
func respondError(w http.ResponseWriter, err error) {
	if pe, ok := entity.IsPrecondition(err); ok {
		respond.JSON(w, http.StatusConflict, map[string]string{
			"error":  "recipe cannot be modified",
			"reason": string(pe.Reason),
		})
		return
	}
	respond.SafeError(w, statusFor(err), err)
}
