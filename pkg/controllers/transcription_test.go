package controllers

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxscribe/voxscribe-server/pkg/config"
	"github.com/voxscribe/voxscribe-server/pkg/models"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("AZURE_SPEECH_KEY", "")
	t.Setenv("AZURE_SPEECH_REGION", "")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	appCnf := config.New(&config.AppConfig{})
	m := models.NewTranscriptionModel(appCnf, nil, nil, logger)
	ctrl := NewTranscriptionController(appCnf, m, logger)

	app := fiber.New()
	app.Post("/api/transcription", ctrl.HandleCreateTranscription)
	return app
}

func TestHandleCreateTranscription_MissingAudioUrl(t *testing.T) {
	app := newTestApp(t)

	req, err := http.NewRequest(http.MethodPost, "/api/transcription", strings.NewReader(`{"locale":"en-US"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), config.AudioUrlRequired)
	assert.Contains(t, string(body), `"success":false`)
}

func TestSanitizePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  uint64
		wantLimit uint64
	}{
		{"valid", 3, 25, 3, 25},
		{"zero falls back to defaults", 0, 0, config.DefaultFetchPage, config.DefaultFetchLimit},
		{"negative page", -1, 25, config.DefaultFetchPage, 25},
		{"negative limit", 3, -50, 3, config.DefaultFetchLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := sanitizePagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestHandleCreateTranscription_MalformedBody(t *testing.T) {
	app := newTestApp(t)

	req, err := http.NewRequest(http.MethodPost, "/api/transcription", strings.NewReader(`{"audioUrl":`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, res.StatusCode)
}
