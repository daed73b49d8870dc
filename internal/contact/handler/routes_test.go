package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/Saeed-Mujawar/contact-management-apis/internal/auth/domain"
	authhandler "github.com/Saeed-Mujawar/contact-management-apis/internal/auth/handler"
	authservice "github.com/Saeed-Mujawar/contact-management-apis/internal/auth/service"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/domain"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/dto"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/handler"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/service"
	apperror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/mocks"
)

// newTestApp mounts the contact routes behind a real token gate so the
// tests exercise exactly what production requests pass through.
func newTestApp(t *testing.T) (*fiber.App, *mocks.MockContactRepository, *authservice.TokenService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockContactRepository(ctrl)
	tokenService := authservice.NewTokenService("contact-test-secret", 30)
	denylist := authservice.NewDenylist()

	app := fiber.New(fiber.Config{ErrorHandler: apperror.FiberErrorHandler("test")})
	handler.RegisterRoutes(app, handler.NewContactHandler(service.NewContactService(repo)),
		authhandler.RequireAuth(tokenService, denylist))

	return app, repo, tokenService
}

func bearerFor(t *testing.T, tokens *authservice.TokenService, id, username, email string) string {
	t.Helper()
	token, _, err := tokens.Issue(&authdomain.User{ID: id, Username: username, Email: email})
	require.NoError(t, err)
	return "Bearer " + token
}

func authedRequest(t *testing.T, method, path, bearer string, body any) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", bearer)
	return req
}

func TestContactRoutesRequireAuth(t *testing.T) {
	app, _, _ := newTestApp(t)

	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/contacts"},
		{http.MethodPost, "/api/contacts"},
		{http.MethodGet, "/api/contacts/search"},
		{http.MethodGet, "/api/contacts/count"},
		{http.MethodDelete, "/api/contacts/bulk-delete"},
		{http.MethodGet, "/api/contacts/some-id"},
		{http.MethodPut, "/api/contacts/some-id"},
		{http.MethodDelete, "/api/contacts/some-id"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s_%s", tc.method, tc.path), func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestContactCRUD(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		app, repo, tokens := newTestApp(t)
		bearer := bearerFor(t, tokens, "user-a", "alice", "alice@example.com")

		repo.EXPECT().ListByOwner(gomock.Any(), "user-a").Return([]domain.Contact{
			{ID: "c1", OwnerID: "user-a", Name: "Bob"},
		}, nil)

		resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/contacts", bearer, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("create", func(t *testing.T) {
		app, repo, tokens := newTestApp(t)
		bearer := bearerFor(t, tokens, "user-a", "alice", "alice@example.com")

		repo.EXPECT().FindByEmailOrPhone(gomock.Any(), "user-a", "bob@example.com", "555-0100").Return(nil, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/contacts", bearer,
			dto.CreateContactInput{Name: "Bob", Email: "bob@example.com", Phone: "555-0100"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("count", func(t *testing.T) {
		app, repo, tokens := newTestApp(t)
		bearer := bearerFor(t, tokens, "user-a", "alice", "alice@example.com")

		repo.EXPECT().CountByOwner(gomock.Any(), "user-a").Return(4, nil)

		resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/contacts/count", bearer, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(4), body["total"])
	})

	t.Run("search without a term is rejected", func(t *testing.T) {
		app, _, tokens := newTestApp(t)
		bearer := bearerFor(t, tokens, "user-a", "alice", "alice@example.com")

		resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/contacts/search", bearer, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// TestCrossUserAccessIsForbidden is the two-user scenario: A reaching for
// B's contact gets 403 on read, update and delete alike.
func TestCrossUserAccessIsForbidden(t *testing.T) {
	app, repo, tokens := newTestApp(t)
	aliceBearer := bearerFor(t, tokens, "user-a", "alice", "alice@example.com")

	bobsContact := &domain.Contact{ID: "contact-b", OwnerID: "user-b", Name: "Dentist"}

	testCases := []struct {
		name string
		req  func() *http.Request
	}{
		{
			name: "GET",
			req: func() *http.Request {
				return authedRequest(t, http.MethodGet, "/api/contacts/contact-b", aliceBearer, nil)
			},
		},
		{
			name: "PUT",
			req: func() *http.Request {
				return authedRequest(t, http.MethodPut, "/api/contacts/contact-b", aliceBearer,
					dto.UpdateContactInput{Name: "Hijacked"})
			},
		},
		{
			name: "DELETE",
			req: func() *http.Request {
				return authedRequest(t, http.MethodDelete, "/api/contacts/contact-b", aliceBearer, nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo.EXPECT().GetByID(gomock.Any(), "contact-b").Return(bobsContact, nil)

			resp, err := app.Test(tc.req())
			require.NoError(t, err)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}
