package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/favboard/favboard-api/internal/core/domain"
	"github.com/favboard/favboard-api/internal/core/ports"
	"github.com/favboard/favboard-api/internal/core/service"
	"github.com/favboard/favboard-api/internal/pkg/metrics"
	"github.com/favboard/favboard-api/pkg/logger"
)

const identityKey = "identity"

type identityCtxKey struct{}

// Gate resolves the caller from the Authorization header and enforces policy
// before the route handler runs. Every resolution failure is reported as the
// same domain.ErrUnauthorized; a resolved caller the policy rejects gets
// domain.ErrForbidden. The identity is attached to the request only when the
// policy allows it.
func Gate(resolver ports.IdentityResolver, policy Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			log := logger.FromContext(req.Context())

			identity, err := resolver.Resolve(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					return err
				}
				stage := "unknown"
				var resErr *service.ResolutionError
				if errors.As(err, &resErr) {
					stage = resErr.Stage.String()
				}
				metrics.GateResolutionFailuresTotal.WithLabelValues(stage).Inc()
				metrics.GateDecisionsTotal.WithLabelValues(policy.String(), "unauthenticated").Inc()
				log.Debug().Str("policy", policy.String()).Str("stage", stage).Err(err).Msg("request not authenticated")
				return domain.ErrUnauthorized
			}

			if !Allows(policy, identity, c.Param("id")) {
				metrics.GateDecisionsTotal.WithLabelValues(policy.String(), "forbidden").Inc()
				log.Debug().Str("policy", policy.String()).Str("user_id", identity.ID).Msg("request forbidden")
				return domain.ErrForbidden
			}

			metrics.GateDecisionsTotal.WithLabelValues(policy.String(), "allowed").Inc()
			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// SetIdentity attaches identity to the echo context and the request context.
func SetIdentity(c echo.Context, identity *domain.User) {
	c.Set(identityKey, identity)
	req := c.Request()
	c.SetRequest(req.WithContext(WithIdentity(req.Context(), identity)))
}

// IdentityFrom returns the caller attached by Gate.
func IdentityFrom(c echo.Context) (*domain.User, bool) {
	identity, ok := c.Get(identityKey).(*domain.User)
	return identity, ok && identity != nil
}

func WithIdentity(ctx context.Context, identity *domain.User) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (*domain.User, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*domain.User)
	return identity, ok && identity != nil
}
