package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "underwriter/pkg/domain-errors"
	"underwriter/pkg/platform/httputil"
)

// Headers carrying shared secrets for non-member callers.
const (
	AdminTokenHeader    = "X-Admin-Token"
	ProviderTokenHeader = "X-Provider-Token"
)

// RequireAdminToken guards operator routes such as guideline bypass.
func RequireAdminToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return requireToken(AdminTokenHeader, expected, "admin token required", logger)
}

// RequireProviderToken guards the sign provider callbacks.
func RequireProviderToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return requireToken(ProviderTokenHeader, expected, "provider token required", logger)
}

// requireToken compares header against expected in constant time. An empty
// expected token rejects every request.
func requireToken(header, expected, msg string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(header)
			if expected == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "token mismatch",
					"request_id", GetRequestID(ctx),
					"header", header,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, msg))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
