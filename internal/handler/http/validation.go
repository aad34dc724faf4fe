package http

import "net/http"

// InputValidation rejects oversized request components before any
// handler work happens. Authorization headers are capped at 8KB (JWT
// payloads stay well under 1KB), paths at 2KB, and bodies at 10MB via
// MaxBytesReader.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > 8192 {
				writeValidationError(w, http.StatusBadRequest, "authorization header too large")
				return
			}
			if len(r.URL.Path) > 2048 {
				writeValidationError(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			// ボディ上限はレシピ本文込みでも十分な 10MB
			r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
			next.ServeHTTP(w, r)
		})
	}
}

func writeValidationError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
