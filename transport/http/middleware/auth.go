package middleware

import (
	"cleanbook/config"
	"cleanbook/infras/jwt"
	"cleanbook/infras/otel"
	"cleanbook/permissions"
	"cleanbook/shared/actor"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"cleanbook/transport/http/response"
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	msgMissingToken   = "missing authorization token"
	msgMalformedToken = "invalid authorization header format"
	msgExpiredToken   = "token has expired"
	msgInvalidToken   = "invalid token"
	msgInvalidClaims  = "invalid token claims"
)

type skipAuthKey struct{}

// Auth authenticates requests.
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role authorizes authenticated requests against the permission table.
type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipAuthKey{}).(bool)

	return skip
}

func reject(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(writer, err)
}

// tokenMessage maps a token validation error onto the message sent back.
func tokenMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrMissingToken):
		return msgMissingToken
	case errors.Is(err, jwt.ErrMalformedToken):
		return msgMalformedToken
	case errors.Is(err, jwt.ErrExpiredToken):
		return msgExpiredToken
	case errors.Is(err, jwt.ErrInvalidClaim):
		return msgInvalidClaims
	default:
		return msgInvalidToken
	}
}

// routePermission resolves the chi pattern that will serve request and its
// entry in the permission table.
func (m *authRoleImpl) routePermission(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path, permissions.Permission{}
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if m.permission == nil {
		return pattern, permissions.Permission{}
	}

	return pattern, m.permission.FindPermissions(pattern, request.Method)
}

// token reads the access token from the Authorization header, falling back to the session cookie.
func (m *authRoleImpl) token(request *http.Request) (string, error) {
	if header := request.Header.Get(constant.RequestHeaderAuthorization); header != "" {
		return jwt.ExtractTokenFromHeader(header) //nolint:wrapcheck
	}

	cookie, err := request.Cookie(m.cfg.App.Cookie.Name)
	if err != nil || cookie.Value == "" {
		return "", jwt.ErrMissingToken
	}

	return cookie.Value, nil
}

func (m *authRoleImpl) authenticate(ctx context.Context, request *http.Request) (*jwt.Claims, error) {
	raw, err := m.token(request)
	if err != nil {
		return nil, failure.Unauthorized(tokenMessage(err))
	}

	claims, err := m.jwtService.ValidateToken(ctx, raw, jwt.AccessToken)
	if err != nil {
		return nil, failure.Unauthorized(tokenMessage(err))
	}

	if claims.UserID == "" || claims.Email == "" {
		log.Warn().Str("user_id", claims.UserID).Msg("access token without identity")

		return nil, failure.Unauthorized(msgInvalidClaims)
	}

	return claims, nil
}

// Auth validates the access token and stores the caller identity on the context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if skipped(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		pattern, permission := m.routePermission(request)
		if permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{"http.route": pattern, "http.method": request.Method})

		claims, err := m.authenticate(ctx, request)
		if err != nil {
			reject(writer, scope, err)

			return
		}

		ctx = actor.WithActor(ctx, actor.Actor{ID: claims.UserID, Email: claims.Email, Role: claims.Role})
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the caller role against the permission table. It runs after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		switch {
		case skipped(ctx):
			next.ServeHTTP(writer, request)

			return
		case m.permission == nil:
			reject(writer, scope, failure.ForbiddenError)

			return
		case m.permission.Skip:
			next.ServeHTTP(writer, request)

			return
		}

		_, permission := m.routePermission(request)
		if permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		role := actor.FromContext(ctx).Role
		if !permission.Allows(role) {
			scope.SetAttributes(map[string]any{"user.role": role, "allowed_roles": permission.Permissions})
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey marks internal service-to-service calls. A matching key skips token
// checks and flags the context as internal. A wrong key is rejected.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			log.Warn().Str("remote_addr", request.RemoteAddr).Msg("rejected request with wrong api key")
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, skipAuthKey{}, true)
		ctx = context.WithValue(ctx, constant.ContextKeyInternal, true)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
