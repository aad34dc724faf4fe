package cookinglog

import (
	"net/http"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/handler/http/auth"
	logUC "fork-kitchen/internal/usecase/cookinglog"
)

// Register registers the cooking-log HTTP handlers with the given mux.
// Reading logs takes an optional token so a creator can see the logs
// of their private recipes; writing a log requires authentication.
func Register(mux *http.ServeMux, svc *logUC.Service, paginationCfg pagination.Config) {
	mux.Handle("GET /recipes/{id}/logs", auth.Optional(ListHandler{Svc: svc, PaginationCfg: paginationCfg}))
	mux.Handle("POST /recipes/{id}/logs", auth.Authz(CreateHandler{Svc: svc}))
}
