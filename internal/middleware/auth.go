package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stockroom/stockroom-go/internal/crypto"
	"github.com/stockroom/stockroom-go/internal/model"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate returns the request identity guard. It extracts a
// bearer token from the Authorization header, verifies it with the
// process token configuration and attaches the decoded claims to the
// request context. Requests without a valid token never reach the
// route handler.
func Authenticate(opts crypto.TokenOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r.Header.Get("Authorization"))
			if token == "" {
				writeUnauthorized(w, r, "token not found")
				return
			}

			claims, err := crypto.VerifyToken(token, opts)
			if err != nil {
				slog.Warn("token verification failed", "path", r.URL.Path, "error", err)
				writeUnauthorized(w, r, "unauthorized access")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the claims attached by Authenticate for
// the current request, valid only for that request's lifetime.
func IdentityFromContext(ctx context.Context) (*crypto.Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*crypto.Claims)
	return claims, ok
}

// extractToken pulls the token segment out of a "<scheme> <token>"
// header value. A missing header or a header with no token segment
// yields the empty string.
func extractToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(model.ErrorResponse{
		Status:    http.StatusUnauthorized,
		Message:   msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	})
}
