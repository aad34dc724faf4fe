package recipe

import (
	"encoding/json"
	"net/http"

	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	"fork-kitchen/internal/observability/metrics"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

type CreateHandler struct{ Svc *recipeUC.Service }

// ServeHTTP レシピ作成
// @Summary      レシピ作成・フォーク
// @Description  新しいレシピを作成します。parent_public_idを指定すると、そのレシピのフォーク（派生レシピ）として作成されます。
// @Tags         recipes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        recipe body object true "レシピ情報"
// @Success      201 {object} DTO "作成されたレシピ"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required - missing or invalid JWT token"
// @Failure      404 {string} string "Not found - parent recipe not found"
// @Router       /recipes [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errNoUser)
		return
	}

	var req struct {
		ParentPublicID string          `json:"parent_public_id"`
		Locale         string          `json:"locale"`
		Title          string          `json:"title"`
		Description    string          `json:"description"`
		Visibility     string          `json:"visibility"`
		Ingredients    []IngredientDTO `json:"ingredients"`
		Steps          []StepDTO       `json:"steps"`
		Tags           []string        `json:"tags"`
		ImageRefs      []string        `json:"image_refs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.Svc.Create(r.Context(), recipeUC.CreateInput{
		CreatorID:      userID,
		ParentPublicID: req.ParentPublicID,
		Locale:         req.Locale,
		Title:          req.Title,
		Description:    req.Description,
		Visibility:     entity.Visibility(req.Visibility),
		Ingredients:    toIngredients(req.Ingredients),
		Steps:          toSteps(req.Steps),
		Tags:           req.Tags,
		ImageRefs:      req.ImageRefs,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	kind := "root"
	if !created.IsRoot() {
		kind = "fork"
	}
	metrics.RecordRecipeCreated(kind)

	respond.JSON(w, http.StatusCreated, toDTO(created))
}
