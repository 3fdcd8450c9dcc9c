package models

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxscribe/voxscribe-server/pkg/config"
	"github.com/voxscribe/voxscribe-server/pkg/transcriber"
	"github.com/voxscribe/voxscribe-server/pkg/transcriber/providers/mock"
)

type fakeRecognizer struct {
	calls     int
	failFirst int
	failWith  error
	text      string
}

func (f *fakeRecognizer) Transcribe(_ context.Context, _ []byte, _ string) (*transcriber.Result, error) {
	f.calls++
	if f.calls <= f.failFirst {
		if f.failWith != nil {
			return nil, f.failWith
		}
		return nil, errors.New("recognition unavailable")
	}
	return transcriber.SuccessResult(f.text), nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newRealModeModel(real transcriber.Transcriber, download func(ctx context.Context, url string) ([]byte, error)) *TranscriptionModel {
	logger := discardLogger()

	fetcher := NewAudioFetchModel(&config.AppConfig{}, logger)
	fetcher.retryDelay = time.Millisecond
	fetcher.download = download

	return &TranscriptionModel{
		app:                  &config.AppConfig{},
		fetcher:              fetcher,
		logger:               logger.WithField("model", "transcription"),
		real:                 real,
		mock:                 mock.New(logger),
		maxAttempts:          config.MaxTranscribeAttempts,
		retryInitialInterval: time.Millisecond,
	}
}

func goodDownload(_ context.Context, _ string) ([]byte, error) {
	return []byte("riff-audio-data"), nil
}

func requireResultInvariant(t *testing.T, result *transcriber.Result) {
	t.Helper()
	if result.Success {
		require.NotEmpty(t, result.Transcription)
		require.Empty(t, result.Error)
	} else {
		require.Empty(t, result.Transcription)
		require.NotEmpty(t, result.Error)
	}
}

func TestTranscriptionModel_ShortKeySelectsMockMode(t *testing.T) {
	t.Setenv("AZURE_SPEECH_KEY", "")
	t.Setenv("AZURE_SPEECH_REGION", "")

	for _, key := range []string{"", "short-key"} {
		app := config.New(&config.AppConfig{
			AzureSpeech: config.AzureSpeechInfo{SubscriptionKey: key},
		})

		m := NewTranscriptionModel(app, nil, nil, discardLogger())
		require.Nil(t, m.real, "key %q should not enable real mode", key)

		m.mock.(*mock.Transcriber).Latency = time.Millisecond

		result := m.Transcribe(context.Background(), "https://x/a.wav", "fr-FR")
		requireResultInvariant(t, result)
		require.True(t, result.Success)
		assert.True(t, strings.HasPrefix(result.Transcription,
			"[Azure Mock] Bonjour, ceci est une transcription réaliste en français"))
	}
}

func TestTranscriptionModel_ValidKeySelectsRealMode(t *testing.T) {
	t.Setenv("AZURE_SPEECH_KEY", "")
	t.Setenv("AZURE_SPEECH_REGION", "")

	app := config.New(&config.AppConfig{
		AzureSpeech: config.AzureSpeechInfo{
			SubscriptionKey: "0123456789abcdef0123456789abcdef",
		},
	})

	m := NewTranscriptionModel(app, nil, nil, discardLogger())
	assert.NotNil(t, m.real)
}

func TestTranscriptionModel_RetrySucceedsOnFourthAttempt(t *testing.T) {
	real := &fakeRecognizer{failFirst: 3, text: "hello world"}
	m := newRealModeModel(real, goodDownload)

	result := m.Transcribe(context.Background(), "https://x/a.wav", "en-US")
	requireResultInvariant(t, result)
	require.True(t, result.Success)
	assert.Equal(t, "hello world", result.Transcription)
	assert.Equal(t, 4, real.calls)
}

func TestTranscriptionModel_RetryExhausted(t *testing.T) {
	real := &fakeRecognizer{failFirst: 100}
	m := newRealModeModel(real, goodDownload)

	result := m.Transcribe(context.Background(), "https://x/a.wav", "en-US")
	requireResultInvariant(t, result)
	require.False(t, result.Success)
	assert.Equal(t, int(config.MaxTranscribeAttempts), real.calls)
	assert.Contains(t, result.Error, "recognition unavailable")
}

func TestTranscriptionModel_LastFailureMessageSurfaces(t *testing.T) {
	real := &fakeRecognizer{
		failFirst: 100,
		failWith:  &transcriber.CanceledError{Reason: "quota exceeded"},
	}
	m := newRealModeModel(real, goodDownload)

	result := m.Transcribe(context.Background(), "https://x/a.wav", "en-US")
	require.False(t, result.Success)
	assert.Equal(t, "quota exceeded", result.Error)
}

func TestTranscriptionModel_FetchFailureConsumesOuterRetry(t *testing.T) {
	var downloads int
	real := &fakeRecognizer{text: "unreached"}
	m := newRealModeModel(real, func(_ context.Context, _ string) ([]byte, error) {
		downloads++
		return nil, errors.New("connection reset")
	})

	result := m.Transcribe(context.Background(), "https://x/a.wav", "en-US")
	requireResultInvariant(t, result)
	require.False(t, result.Success)
	assert.Contains(t, result.Error, "failed to download audio after 3 attempts")
	// every outer attempt runs the fetcher's own 3-attempt budget
	assert.Equal(t, int(config.MaxTranscribeAttempts)*config.MaxAudioFetchAttempts, downloads)
	assert.Zero(t, real.calls)
}
