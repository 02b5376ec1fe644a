package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/log"
)

// Middleware rejects requests without a valid bearer token with 401 and
// stores the verified claims on the request context.
func Middleware(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := v.Verify(ExtractToken(r))
			if err != nil {
				log.FromContext(r.Context()).WithComponent(log.ComponentAuth).WarnContext(r.Context(),
					"Rejected request", log.FieldError, err, log.FieldPath, r.URL.Path)
				writeUnauthorized(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	msg := "Invalid token"
	if errors.Is(err, ErrMissingToken) {
		msg = "Missing or invalid token"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
