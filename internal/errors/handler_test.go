package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
)

type errorBody struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace,omitempty"`
}

func appReturning(env string, err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperror.FiberErrorHandler(env)})
	app.Get("/boom", func(c *fiber.Ctx) error { return err })
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, errorBody) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestFiberErrorHandlerKinds(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
	}{
		{"validation", apperror.Validation("bad input"), http.StatusBadRequest, "Validation Failed"},
		{"not found", apperror.NotFound("user not found"), http.StatusNotFound, "Not Found"},
		{"unauthorized", apperror.Unauthorized(apperror.ErrInvalidCredentials), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", apperror.Forbidden("you do not own this contact"), http.StatusForbidden, "Forbidden"},
		{"server", apperror.Server(errors.New("pool exhausted")), http.StatusInternalServerError, "Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, appReturning("test", tc.err))
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantTitle, body.Title)
			assert.Empty(t, body.StackTrace)
		})
	}
}

func TestServerErrorHidesCause(t *testing.T) {
	_, body := doRequest(t, appReturning("production", apperror.Server(errors.New("password column corrupt"))))
	assert.Equal(t, "something went wrong", body.Message)
	assert.NotContains(t, body.Message, "password column")
}

func TestStackTraceOnlyInDevelopment(t *testing.T) {
	_, dev := doRequest(t, appReturning("development", apperror.Server(errors.New("boom"))))
	assert.NotEmpty(t, dev.StackTrace)

	_, prod := doRequest(t, appReturning("production", apperror.Server(errors.New("boom"))))
	assert.Empty(t, prod.StackTrace)
}

func TestPlainErrorsFallBackToServerError(t *testing.T) {
	status, body := doRequest(t, appReturning("test", errors.New("untyped")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Server Error", body.Title)
}
