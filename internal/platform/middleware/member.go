package middleware

import (
	"log/slog"
	"net/http"

	dErrors "underwriter/pkg/domain-errors"
	"underwriter/pkg/platform/httputil"
	"underwriter/pkg/requestcontext"
)

// MemberIDHeader carries the member id resolved by the upstream gateway.
const MemberIDHeader = "X-Member-Id"

// Member copies the gateway supplied member id into the context when present.
func Member(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(MemberIDHeader); id != "" {
			r = r.WithContext(requestcontext.WithMemberID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireMember rejects requests that reach the service without a member id.
func RequireMember(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(MemberIDHeader)
			if id == "" {
				logger.WarnContext(r.Context(), "unauthorized access - missing member id",
					"request_id", GetRequestID(r.Context()),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing member id"))
				return
			}
			ctx := requestcontext.WithMemberID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
