package mock

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxscribe/voxscribe-server/pkg/config"
)

func newTestTranscriber() *Transcriber {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	t := New(logger)
	t.Latency = time.Millisecond
	return t
}

func TestMockTranscriber_KnownLocales(t *testing.T) {
	m := newTestTranscriber()

	for locale, want := range cannedTranscripts {
		result, err := m.Transcribe(context.Background(), nil, locale)
		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, want, result.Transcription)
		assert.Empty(t, result.Error)
		assert.True(t, strings.HasPrefix(result.Transcription, "[Azure Mock]"),
			"canned transcript for %s should be tagged as synthetic", locale)
	}
}

func TestMockTranscriber_UnknownLocaleFallsBackToEnUS(t *testing.T) {
	m := newTestTranscriber()

	result, err := m.Transcribe(context.Background(), nil, "sv-SE")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, cannedTranscripts[config.DefaultLocale], result.Transcription)
}

func TestMockTranscriber_FrenchScenario(t *testing.T) {
	m := newTestTranscriber()

	result, err := m.Transcribe(context.Background(), nil, "fr-FR")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.Transcription,
		"[Azure Mock] Bonjour, ceci est une transcription réaliste en français"))
}

func TestMockTranscriber_NeverFailsOnCanceledContext(t *testing.T) {
	m := newTestTranscriber()
	m.Latency = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := m.Transcribe(ctx, nil, "en-US")
	require.NoError(t, err)
	require.True(t, result.Success)
}
