package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cavaliergopher/grab/v3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"github.com/voxscribe/voxscribe-server/pkg/config"
)

// FetchError is returned when audio retrieval exhausted its retry budget.
type FetchError struct {
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to download audio after %d attempts: %v", e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AudioFetchModel retrieves raw audio bytes from a URL with bounded,
// linearly backed-off retry. The concrete transport is pluggable; tests
// swap it for an in-memory one.
type AudioFetchModel struct {
	app        *config.AppConfig
	logger     *logrus.Entry
	download   func(ctx context.Context, url string) ([]byte, error)
	retryDelay time.Duration
}

func NewAudioFetchModel(app *config.AppConfig, logger *logrus.Logger) *AudioFetchModel {
	m := &AudioFetchModel{
		app:        app,
		logger:     logger.WithField("model", "audio_fetch"),
		retryDelay: config.AudioFetchRetryDelay,
	}
	m.download = m.downloadWithGrab
	return m
}

// FetchAudio downloads the audio at url, retrying up to
// config.MaxAudioFetchAttempts times with delay retryDelay*n before retry n.
func (m *AudioFetchModel) FetchAudio(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New(config.AudioUrlRequired)
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAudioFetchAttempts; attempt++ {
		m.logger.Infof("attempting to download audio from %s (attempt %d)", url, attempt)

		data, err := m.download(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
		m.logger.WithError(err).Warnf("download failed (%d/%d)", attempt, config.MaxAudioFetchAttempts)

		if attempt < config.MaxAudioFetchAttempts {
			select {
			case <-time.After(m.retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, &FetchError{Attempts: config.MaxAudioFetchAttempts, Err: lastErr}
}

// downloadWithGrab fetches the file into the scratch dir, validates that it
// is actually audio, reads it back and removes the file.
func (m *AudioFetchModel) downloadWithGrab(ctx context.Context, url string) ([]byte, error) {
	downloadDir, err := os.MkdirTemp(m.app.Transcription.ScratchDir, "voxscribe-audio-")
	if err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}
	defer os.RemoveAll(downloadDir)

	req, err := grab.NewRequest(downloadDir, url)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	resp := grab.NewClient().Do(req)
	if err = resp.Err(); err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	mType, err := mimetype.DetectFile(resp.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !isAudioMimeType(mType) {
		return nil, fmt.Errorf("%s: got %s", config.InvalidAudioPayload, mType.String())
	}

	return os.ReadFile(resp.Filename)
}

func isAudioMimeType(mType *mimetype.MIME) bool {
	// some containers (webm, mp4) report as video even when audio-only
	return strings.HasPrefix(mType.String(), "audio/") || strings.HasPrefix(mType.String(), "video/")
}
