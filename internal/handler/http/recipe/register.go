package recipe

import (
	"log/slog"
	"net/http"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/handler/http/auth"
	recipeUC "fork-kitchen/internal/usecase/recipe"
)

// Register registers all recipe-related HTTP handlers with the given mux.
// Read routes take an optional token so private recipes stay visible to
// their creators; write routes require authentication.
func Register(mux *http.ServeMux, svc *recipeUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /recipes", auth.Optional(ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("GET /recipes/search", SearchHandler{Svc: svc, PaginationCfg: paginationCfg})
	mux.Handle("GET /recipes/{id}", auth.Optional(GetHandler{Svc: svc}))
	mux.Handle("GET /recipes/{id}/variants", auth.Optional(VariantsHandler{Svc: svc, PaginationCfg: paginationCfg}))
	mux.Handle("GET /recipes/{id}/family", auth.Optional(FamilyHandler{Svc: svc}))

	mux.Handle("POST /recipes", auth.Authz(CreateHandler{Svc: svc}))
	mux.Handle("PUT /recipes/{id}", auth.Authz(UpdateHandler{Svc: svc}))
	mux.Handle("DELETE /recipes/{id}", auth.Authz(DeleteHandler{Svc: svc}))
}
