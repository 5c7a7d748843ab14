package httpserver

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/landaireal/landai-rent/internal/auth"
	"github.com/landaireal/landai-rent/internal/contract"
)

// RequireAdmin lets through only requests bearing a valid admin token.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				writeJSON(w, http.StatusUnauthorized, contract.Message{Message: "Authorization header must be Bearer {token}"})
				return
			}
			if _, err := auth.ValidateAdminToken(strings.TrimSpace(token), secret); err != nil {
				log.Warn().Err(err).Str("remote", remoteIP(r)).Msg("admin token rejected")
				writeJSON(w, http.StatusUnauthorized, contract.Message{Message: "Invalid or expired token"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
