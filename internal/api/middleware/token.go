package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
)

// BearerToken пропускает запрос только с заголовком Authorization: Bearer <token>.
// Используется внешним триггером батча напоминаний (cron)
func BearerToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			provided, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				handlers.RespondUnauthorized(w, "отсутствует bearer-токен")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, "некорректный bearer-токен")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
