package saved

import (
	"net/http"

	"fork-kitchen/internal/common/pagination"
	"fork-kitchen/internal/handler/http/auth"
	savedUC "fork-kitchen/internal/usecase/saved"
)

// Register registers the saved-recipes HTTP handlers with the given
// mux. Every route operates on the caller's own library, so all of
// them require authentication.
func Register(mux *http.ServeMux, svc *savedUC.Service, paginationCfg pagination.Config) {
	mux.Handle("GET /me/saved", auth.Authz(ListHandler{Svc: svc, PaginationCfg: paginationCfg}))
	mux.Handle("PUT /recipes/{id}/save", auth.Authz(SaveHandler{Svc: svc}))
	mux.Handle("DELETE /recipes/{id}/save", auth.Authz(UnsaveHandler{Svc: svc}))
}
