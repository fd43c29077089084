package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-command-be/internal/apperror"
	"catalog-command-be/internal/dto"
	"catalog-command-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommandService struct {
	result *dto.CommandResult
	err    error
}

func (s *stubCommandService) Execute(ctx context.Context, req *dto.CommandRequest) (*dto.CommandResult, error) {
	return s.result, s.err
}

func (s *stubCommandService) ListTools(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"tools":[]}`), s.err
}

func (s *stubCommandService) Health(ctx context.Context) error {
	return s.err
}

func newTestApp(svc *stubCommandService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewCommandController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func postCommand(t *testing.T, app *fiber.App, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, "/api/command/v1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestExecuteReturnsEnvelope(t *testing.T) {
	svc := &stubCommandService{result: &dto.CommandResult{
		Tool:    "list_products",
		Intent:  "QUERY",
		Message: "Found 2 products",
	}}
	app := newTestApp(svc)

	resp := postCommand(t, app, `{"command":"show all products"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    dto.CommandResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "list_products", envelope.Data.Tool)
}

func TestExecuteRejectsMissingCommand(t *testing.T) {
	app := newTestApp(&stubCommandService{})

	resp := postCommand(t, app, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExecuteMapsPipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperror.Error
		wantStatus int
	}{
		{"entity not found", apperror.New(apperror.KindEntityNotFound, "Product 'X' not found"), http.StatusNotFound},
		{"criteria undetermined", apperror.New(apperror.KindCriteriaUndetermined, "Could not determine new price from command"), http.StatusUnprocessableEntity},
		{"no match", apperror.New(apperror.KindNoMatch, "No products found matching criteria: segment=Laptops"), http.StatusNotFound},
		{"unsupported tool", apperror.New(apperror.KindUnsupportedTool, "Unsupported tool 'drop_database'"), http.StatusBadRequest},
		{"classifier format", apperror.New(apperror.KindClassifierFormat, "Classifier returned invalid JSON"), http.StatusBadGateway},
		{"backend", apperror.New(apperror.KindBackend, "Catalog backend unavailable"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubCommandService{err: tt.err})

			resp := postCommand(t, app, `{"command":"whatever"}`)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var envelope struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(body, &envelope))
			assert.False(t, envelope.Success)
			assert.Equal(t, tt.err.Message, envelope.Message)
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(&stubCommandService{})

	req := httptest.NewRequest(http.MethodGet, "/api/command/v1/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
