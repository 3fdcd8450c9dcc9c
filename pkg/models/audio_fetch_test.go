package models

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxscribe/voxscribe-server/pkg/config"
)

func newTestFetcher(download func(ctx context.Context, url string) ([]byte, error)) *AudioFetchModel {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := NewAudioFetchModel(&config.AppConfig{}, logger)
	m.retryDelay = time.Millisecond
	m.download = download
	return m
}

func TestAudioFetch_SucceedsOnThirdAttempt(t *testing.T) {
	var calls int
	m := newTestFetcher(func(ctx context.Context, url string) ([]byte, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection reset")
		}
		return []byte("riff-audio-data"), nil
	})

	data, err := m.FetchAudio(context.Background(), "https://x/a.wav")
	require.NoError(t, err)
	assert.Equal(t, []byte("riff-audio-data"), data)
	assert.Equal(t, 3, calls)
}

func TestAudioFetch_ExhaustsRetryBudget(t *testing.T) {
	var calls int
	m := newTestFetcher(func(ctx context.Context, url string) ([]byte, error) {
		calls++
		return nil, errors.New("connection reset")
	})

	_, err := m.FetchAudio(context.Background(), "https://x/a.wav")
	require.Error(t, err)
	assert.Equal(t, config.MaxAudioFetchAttempts, calls)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, config.MaxAudioFetchAttempts, fetchErr.Attempts)
	assert.Contains(t, err.Error(), "failed to download audio after 3 attempts")
}

func TestAudioFetch_EmptyUrl(t *testing.T) {
	var calls int
	m := newTestFetcher(func(ctx context.Context, url string) ([]byte, error) {
		calls++
		return nil, nil
	})

	_, err := m.FetchAudio(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, config.AudioUrlRequired, err.Error())
	assert.Zero(t, calls)
}

func TestAudioFetch_ContextCanceledDuringRetryWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := newTestFetcher(func(ctx context.Context, url string) ([]byte, error) {
		cancel()
		return nil, errors.New("connection reset")
	})
	m.retryDelay = time.Minute

	_, err := m.FetchAudio(ctx, "https://x/a.wav")
	require.ErrorIs(t, err, context.Canceled)
}
