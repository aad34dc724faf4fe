package cookinglog

import (
	"encoding/json"
	"errors"
	"net/http"

	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/respond"
	logUC "fork-kitchen/internal/usecase/cookinglog"
)

var errNoUser = errors.New("unauthorized: no authenticated user")

// statusFor maps cooking-log use case errors to HTTP status codes.
func statusFor(err error) int {
	var ve *entity.ValidationError
	switch {
	case errors.Is(err, logUC.ErrRecipeNotFound):
		return http.StatusNotFound
	case errors.As(err, &ve), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type CreateHandler struct {
	Svc *logUC.Service
}

type createRequest struct {
	Note string `json:"note" example:"唐辛子を倍にしたら家族に好評だった"`
}

// ServeHTTP 調理ログ作成
// @Summary      調理ログ作成
// @Description  レシピに対して「作った」記録を登録します。レシピ作成者に通知されます。
// @Tags         cooking-logs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path string        true "レシピ公開ID"
// @Param        body body createRequest true "調理ログ内容"
// @Success      201 {object} DTO "作成された調理ログ"
// @Failure      400 {string} string "Bad request - 入力エラー"
// @Failure      401 {string} string "Unauthorized - 認証エラー"
// @Failure      404 {string} string "Not found - recipe not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /recipes/{id}/logs [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errNoUser)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	log, err := h.Svc.Create(r.Context(), logUC.CreateInput{
		RecipePublicID: r.PathValue("id"),
		UserID:         userID,
		Note:           req.Note,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(log))
}
