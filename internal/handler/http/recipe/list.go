package recipe

import (
	"log/slog"
	"net/http"
	"time"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/domain/entity"
	"fork-kitchen/internal/handler/http/auth"
	"fork-kitchen/internal/handler/http/requestid"
	"fork-kitchen/internal/handler/http/respond"
	"fork-kitchen/internal/observability/logging"
	"fork-kitchen/internal/repository"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

type ListHandler struct {
	Svc           *recipeUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP レシピ一覧取得
// @Summary      レシピ一覧取得（ページネーション対応）
// @Description  公開レシピを取得します。cursorパラメータでカーソル方式、pageパラメータでページ方式を選択できます。rankingはページ方式でのみ有効です。
// @Tags         recipes
// @Produce      json
// @Param        cursor    query string false "カーソルトークン（カーソル方式）"
// @Param        page      query int    false "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit     query int    false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Param        ranking   query string false "並び順" Enums(recent, mostForked, trending, popularity)
// @Param        locale    query string false "言語フィルタ" example(ja)
// @Param        fork_type query string false "フォーク種別" Enums(all, original, variant)
// @Param        tag       query string false "ハッシュタグフィルタ（先頭の#は省略可）" example(vegan)
// @Param        creator   query int    false "作成者IDフィルタ"
// @Success      200 {object} pagination.Response[DTO] "ページネーション付きレシピ一覧"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /recipes [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	filters, err := parseFilters(r, auth.UserIDPtr(ctx))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.List(ctx, recipeUC.ListQuery{
		Params:  params,
		Filters: filters,
		Ranking: repository.ParseRanking(r.URL.Query().Get("ranking")),
	})
	if err != nil {
		logger.Error("Failed to list recipes",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("database")
		respond.SafeError(w, statusFor(err), err)
		return
	}

	response := pagination.NewResponse(toDTOs(result.Recipes), result.Pagination)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Mode)
	pagination.RecordDuration("handler", duration.Seconds())

	logger.Info("Paginated recipe list response",
		"mode", params.Mode,
		"limit", params.Limit,
		"returned_count", len(result.Recipes),
		"duration_ms", duration.Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, response)
}

// parseFilters builds the listing filters from query parameters.
// Private listings are only available for the caller's own recipes; an
// unauthenticated or mismatched request degrades to the public view.
func parseFilters(r *http.Request, viewerID *int64) (repository.ListFilters, error) {
	q := r.URL.Query()
	filters := repository.ListFilters{
		ForkType: repository.ParseForkType(q.Get("fork_type")),
	}

	if locale := q.Get("locale"); locale != "" {
		filters.Locale = &locale
	}

	// Tag comparisons run against the normalized stored form, so a
	// client may send "#Vegan" and match "vegan".
	if tag := entity.NormalizeTag(q.Get("tag")); tag != "" {
		filters.Tag = &tag
	}

	if creator := q.Get("creator"); creator != "" {
		id, err := parsePositiveInt(creator)
		if err != nil {
			return filters, err
		}
		filters.CreatorID = &id
	}

	visibility := publicOnly
	if q.Get("visibility") == "private" &&
		viewerID != nil && filters.CreatorID != nil && *filters.CreatorID == *viewerID {
		visibility = privateOnly
	}
	filters.Visibility = &visibility
	return filters, nil
}
