package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saeed-Mujawar/contact-management-apis/internal/auth/handler"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/auth/service"
	apperror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/mocks"
)

// TestRegisterRoutes verifies that all user routes are mounted correctly.
func TestRegisterRoutes(t *testing.T) {
	app, f := newTestApp(t)
	_ = f

	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/users/register"},
		{http.MethodPost, "/api/users/login"},
		{http.MethodPost, "/api/users/logout"},
		{http.MethodGet, "/api/users/current"},
		{http.MethodPut, "/api/users/update"},
		{http.MethodDelete, "/api/users/delete"},
		{http.MethodPost, "/api/users/request-password-reset"},
		{http.MethodPost, "/api/users/reset-password/some-token"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s_%s_exists", tc.method, tc.path), func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)

			// We only care that the route exists. A 404 means it doesn't.
			// The handlers themselves return other codes (e.g. 400 for a
			// missing body, 401 for a missing token).
			assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

// TestRequireAuthMiddleware checks the validation order of the token gate:
// missing header, then denylist, then signature and expiry.
func TestRequireAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	denylist := service.NewDenylist()

	app := fiber.New(fiber.Config{ErrorHandler: apperror.FiberErrorHandler("test")})
	app.Get("/protected", handler.RequireAuth(mockTokens, denylist), func(c *fiber.Ctx) error {
		claims := handler.ClaimsFromCtx(c)
		return c.JSON(fiber.Map{"id": claims.UserID})
	})

	t.Run("fails without auth header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("fails with wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("fails with malformed bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "BearerNoSpace")
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("denylisted token is rejected before verification", func(t *testing.T) {
		// No VerifyAccessToken expectation: a revoked token must never
		// reach the verifier.
		denylist.Add("revoked-token", time.Now().Add(time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer revoked-token")
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		mockTokens.EXPECT().VerifyAccessToken("bad-token").Return(nil, apperror.ErrTokenInvalid)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		mockTokens.EXPECT().VerifyAccessToken("stale-token").Return(nil, apperror.ErrTokenExpired)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token attaches the claim", func(t *testing.T) {
		claims := &service.JWTCustomClaims{
			UserID:   "user-123",
			Username: "alice",
			Email:    "alice@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		mockTokens.EXPECT().VerifyAccessToken("good-token").Return(claims, nil)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
