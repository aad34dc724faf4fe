package recipe

import (
	"net/http"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/handler/http/respond"
	"fork-kitchen/internal/observability/metrics"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

type SearchHandler struct {
	Svc           *recipeUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP レシピ検索
// @Summary      レシピ検索
// @Description  公開レシピをキーワードで検索します（タイトル・説明・翻訳を対象とした関連度順）。検索はページ方式のみ対応です。
// @Tags         recipes
// @Produce      json
// @Param        q      query string true  "検索キーワード（2文字以上）"
// @Param        locale query string false "言語フィルタ" example(ja)
// @Param        page   query int    false "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit  query int    false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[SearchHitDTO] "検索結果"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /recipes/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	q := recipeUC.SearchQuery{
		Keyword: r.URL.Query().Get("q"),
		Params:  params,
	}
	if locale := r.URL.Query().Get("locale"); locale != "" {
		q.Locale = &locale
	}

	result, err := h.Svc.Search(r.Context(), q)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	metrics.RecordSearch(len(result.Hits))

	hits := make([]SearchHitDTO, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, SearchHitDTO{
			DTO:       toDTO(hit.Recipe),
			Relevance: hit.Relevance,
		})
	}

	respond.JSON(w, http.StatusOK, pagination.NewResponse(hits, result.Pagination))
}
