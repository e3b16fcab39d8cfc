package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/jwt"
	jwtMocks "frontdesk/infras/jwt/mocks"
	otelMocks "frontdesk/infras/otel/mocks"
	"frontdesk/shared/constant"
	"frontdesk/transport/http/middleware"
)

func newAuthMiddleware(t *testing.T) (middleware.AuthRole, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	jwtService := jwtMocks.NewMockJWT(ctrl)

	return middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), nil, &config.Config{}), jwtService
}

func serveAuth(t *testing.T, m middleware.AuthRole, token string, next http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	mux := chi.NewRouter()
	mux.Use(m.Auth)
	mux.Get("/v1/ping", next)

	request := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	if token != "" {
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, request)

	return recorder
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	m, _ := newAuthMiddleware(t)

	invoked := false
	recorder := serveAuth(t, m, "", func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, invoked)
}

func TestAuthMiddleware_RejectsIncompleteClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims *jwt.Claims
	}{
		{
			name:   "empty user id",
			claims: &jwt.Claims{Email: "alice@example.com", Role: "frontdesk"},
		},
		{
			name:   "empty email",
			claims: &jwt.Claims{UserID: "user-1", Role: "frontdesk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, jwtService := newAuthMiddleware(t)

			jwtService.EXPECT().
				ValidateToken("token-1", jwt.AccessToken).
				Return(tt.claims, nil)

			invoked := false
			recorder := serveAuth(t, m, "token-1", func(w http.ResponseWriter, r *http.Request) {
				invoked = true
			})

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.False(t, invoked)
		})
	}
}

func TestAuthMiddleware_PassesClaimsIntoContext(t *testing.T) {
	m, jwtService := newAuthMiddleware(t)

	jwtService.EXPECT().
		ValidateToken("token-1", jwt.AccessToken).
		Return(&jwt.Claims{
			UserID:    "user-1",
			Email:     "alice@example.com",
			Role:      "frontdesk",
			StaffCode: "staff-1",
			TokenID:   "tok-1",
		}, nil)

	recorder := serveAuth(t, m, "token-1", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		assert.Equal(t, "user-1", ctx.Value(constant.ContextKeyUserID))
		assert.Equal(t, "staff-1", ctx.Value(constant.ContextKeyStaffID))
		assert.Equal(t, "frontdesk", ctx.Value(constant.ContextKeyUserRole))
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	m, jwtService := newAuthMiddleware(t)

	jwtService.EXPECT().
		ValidateToken("token-1", jwt.AccessToken).
		Return(nil, jwt.ErrExpiredToken)

	invoked := false
	recorder := serveAuth(t, m, "token-1", func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, invoked)
}
