package middleware_test

import (
	"cleanbook/config"
	"cleanbook/infras/jwt"
	jwtMocks "cleanbook/infras/jwt/mocks"
	"cleanbook/infras/otel/mocks"
	"cleanbook/permissions"
	"cleanbook/shared/actor"
	"cleanbook/shared/constant"
	"cleanbook/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const table = `{
  "endpoints": [
    {"path": "/api/auth/login", "method": "POST", "skip": true},
    {"path": "/api/bookings/cancel/{bookingId}", "method": "DELETE", "permissions": ["admin", "user"]},
    {"path": "/api/bookings/all", "method": "GET", "permissions": ["admin"]}
  ]
}`

type server struct {
	mux    *chi.Mux
	jwt    *jwtMocks.MockJWT
	caller *actor.Actor
}

func newServer(t *testing.T) *server {
	ctrl := gomock.NewController(t)

	data, err := permissions.Parse([]byte(table))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"
	cfg.App.Cookie.Name = "token"

	s := &server{jwt: jwtMocks.NewMockJWT(ctrl), mux: chi.NewRouter()}
	authRole := middleware.NewAuthRoleMiddleware(s.jwt, mocks.NewOtel(), data, cfg)

	record := func(w http.ResponseWriter, r *http.Request) {
		caller := actor.FromContext(r.Context())
		s.caller = &caller

		if internal, _ := r.Context().Value(constant.ContextKeyInternal).(bool); internal {
			w.Header().Set("X-Internal", "true")
		}

		w.WriteHeader(http.StatusNoContent)
	}

	s.mux.Route("/api", func(r chi.Router) {
		r.Use(authRole.APIKey)
		r.Use(authRole.Auth)
		r.Use(authRole.RBAC)

		r.Post("/auth/login", record)
		r.Delete("/bookings/cancel/{bookingId}", record)
		r.Get("/bookings/all", record)
	})

	return s
}

func (s *server) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	return rec
}

func claims(role string) *jwt.Claims {
	return &jwt.Claims{UserID: "user-1", Email: "jane@example.com", Role: role, TokenID: "token-1"}
}

func TestAuth_PublicRouteSkipsToken(t *testing.T) {
	s := newServer(t)

	rec := s.do(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, s.caller)
	assert.True(t, s.caller.IsAnonymous())
}

func TestAuth_BearerToken(t *testing.T) {
	s := newServer(t)
	s.jwt.EXPECT().ValidateToken(gomock.Any(), "abc", jwt.AccessToken).Return(claims(constant.RoleUser), nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/cancel/b-1", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer abc")

	rec := s.do(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, actor.Actor{ID: "user-1", Email: "jane@example.com", Role: constant.RoleUser}, *s.caller)
}

func TestAuth_CookieToken(t *testing.T) {
	s := newServer(t)
	s.jwt.EXPECT().ValidateToken(gomock.Any(), "from-cookie", jwt.AccessToken).Return(claims(constant.RoleUser), nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/cancel/b-1", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"})

	rec := s.do(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", s.caller.ID)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		setupMock func(s *server)
		wantError string
	}{
		{
			name:      "missing token",
			setupMock: func(s *server) {},
			wantError: "missing authorization token",
		},
		{
			name:      "malformed header",
			header:    "Token abc",
			setupMock: func(s *server) {},
			wantError: "invalid authorization header format",
		},
		{
			name:   "expired token",
			header: "Bearer abc",
			setupMock: func(s *server) {
				s.jwt.EXPECT().ValidateToken(gomock.Any(), "abc", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantError: "token has expired",
		},
		{
			name:   "claims without identity",
			header: "Bearer abc",
			setupMock: func(s *server) {
				s.jwt.EXPECT().ValidateToken(gomock.Any(), "abc", jwt.AccessToken).Return(&jwt.Claims{Role: constant.RoleUser}, nil)
			},
			wantError: "invalid token claims",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)
			tt.setupMock(s)

			req := httptest.NewRequest(http.MethodDelete, "/api/bookings/cancel/b-1", nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			rec := s.do(req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
			assert.Nil(t, s.caller)
		})
	}
}

func TestRBAC_RoleTable(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{name: "admin allowed", role: constant.RoleAdmin, wantCode: http.StatusNoContent},
		{name: "customer forbidden", role: constant.RoleUser, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)
			s.jwt.EXPECT().ValidateToken(gomock.Any(), "abc", jwt.AccessToken).Return(claims(tt.role), nil)

			req := httptest.NewRequest(http.MethodGet, "/api/bookings/all", nil)
			req.Header.Set(constant.RequestHeaderAuthorization, "Bearer abc")

			assert.Equal(t, tt.wantCode, s.do(req).Code)
		})
	}
}

func TestAPIKey(t *testing.T) {
	t.Run("valid key marks internal call", func(t *testing.T) {
		s := newServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/all", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "internal-key")

		rec := s.do(req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "true", rec.Header().Get("X-Internal"))
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		s := newServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/all", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "guess")

		assert.Equal(t, http.StatusForbidden, s.do(req).Code)
		assert.Nil(t, s.caller)
	})
}
