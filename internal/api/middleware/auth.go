package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

const (
	msgMissingToken = "missing admin token"
	msgInvalidToken = "invalid admin token"
)

// AdminAuth пропускает только запросы с верным X-Admin-Token
func AdminAuth(token string) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminTokenHeader)
			if provided == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
