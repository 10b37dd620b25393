package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ceramicalma/ALMA-BookingService/internal/api/handlers"
)

const adminTokenHeader = "X-Admin-Token"

// AdminAuth пропускает только запросы с корректным админским токеном
func AdminAuth(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(adminTokenHeader)
			if got == "" {
				handlers.RespondUnauthorized(w, "falta el encabezado "+adminTokenHeader)
				return
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondForbidden(w, "token de administrador inválido")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
