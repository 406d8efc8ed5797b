package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/crestviewems/supplyline-backend/api/responses"
	pkgAuth "github.com/crestviewems/supplyline-backend/pkg/auth"
	"github.com/crestviewems/supplyline-backend/pkg/config"
	pkgerrors "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
)

// SessionToucher extends a live session's idle-timeout TTL. A false result
// means the session expired or was revoked and the caller must sign in again.
type SessionToucher interface {
	TouchSession(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
}

// Auth validates a bearer token, slides the session's idle-timeout window in
// redis, and seeds the request context with the claims.
func Auth(jwtCfg config.JWTConfig, authCfg config.AuthConfig, sessions SessionToucher, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(jwtCfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if sessions != nil {
				alive, err := sessions.TouchSession(r.Context(), claims.ID, authCfg.IdleTTL())
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !alive {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired"))
					return
				}
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithUserEmail(ctx, claims.Email)
			ctx = WithRole(ctx, string(claims.Role))
			ctx = WithSessionID(ctx, claims.ID)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
