package models

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/voxscribe/voxscribe-server/pkg/config"
	"github.com/voxscribe/voxscribe-server/pkg/dbmodels"
	dbservice "github.com/voxscribe/voxscribe-server/pkg/services/db"
	redisservice "github.com/voxscribe/voxscribe-server/pkg/services/redis"
	"github.com/voxscribe/voxscribe-server/pkg/transcriber"
	"github.com/voxscribe/voxscribe-server/pkg/transcriber/providers/azure"
	"github.com/voxscribe/voxscribe-server/pkg/transcriber/providers/mock"
)

type TranscriptionReq struct {
	AudioUrl string `json:"audioUrl"`
	Locale   string `json:"locale"`
}

// CreateTranscriptionRes carries the pipeline outcome back to the HTTP
// layer. Record is non-nil exactly when Result.Success is true.
type CreateTranscriptionRes struct {
	Result *transcriber.Result
	Record *dbmodels.Transcription
}

// TranscriptionModel is the orchestrator: it decides mock vs real mode,
// wraps the real fetch+recognize sequence in exponential-backoff retry and
// persists whatever comes out. It never returns an error to its caller;
// every failure is encoded in the result envelope.
type TranscriptionModel struct {
	app     *config.AppConfig
	ds      *dbservice.DatabaseService
	rs      *redisservice.RedisService
	fetcher *AudioFetchModel
	logger  *logrus.Entry

	// real is nil in mock mode; the switch is decided once, at
	// construction, from the immutable credential
	real transcriber.Transcriber
	mock transcriber.Transcriber

	maxAttempts          uint
	retryInitialInterval time.Duration
}

func NewTranscriptionModel(app *config.AppConfig, ds *dbservice.DatabaseService, rs *redisservice.RedisService, logger *logrus.Logger) *TranscriptionModel {
	m := &TranscriptionModel{
		app:                  app,
		ds:                   ds,
		rs:                   rs,
		fetcher:              NewAudioFetchModel(app, logger),
		logger:               logger.WithField("model", "transcription"),
		mock:                 mock.New(logger),
		maxAttempts:          config.MaxTranscribeAttempts,
		retryInitialInterval: config.TranscribeRetryInitialInterval,
	}

	if app.AzureCredentialUsable() {
		m.real = azure.New(app.AzureSpeech, logger)
	} else {
		m.logger.Warnln("no usable azure credential configured, running in mock mode")
	}

	return m
}

// CreateTranscription runs the full pipeline for one request and persists
// the transcript on success.
func (m *TranscriptionModel) CreateTranscription(ctx context.Context, req *TranscriptionReq) *CreateTranscriptionRes {
	locale := req.Locale
	if locale == "" {
		locale = config.DefaultLocale
	}

	result := m.Transcribe(ctx, req.AudioUrl, locale)
	if !result.Success {
		return &CreateTranscriptionRes{Result: result}
	}

	record := &dbmodels.Transcription{
		TranscriptionId: uuid.NewString(),
		AudioUrl:        req.AudioUrl,
		Transcription:   result.Transcription,
		Source:          m.source(),
		Locale:          locale,
	}
	if _, err := m.ds.InsertTranscription(record); err != nil {
		m.logger.WithError(err).Errorln("failed to persist transcription")
		return &CreateTranscriptionRes{
			Result: &transcriber.Result{Success: false, Error: config.TranscriptionSaveFailed},
		}
	}

	if err := m.rs.CacheTranscription(ctx, record, *m.app.Transcription.CacheTTL); err != nil {
		// cache is best effort; the record is already durable
		m.logger.WithError(err).Warnln("failed to cache transcription")
	}

	return &CreateTranscriptionRes{Result: result, Record: record}
}

// Transcribe turns an audio URL into a settled result envelope. In mock mode
// the canned transcriber answers directly; in real mode the whole
// fetch+recognize sequence is retried with exponential backoff and jitter,
// and the last failure message surfaces after the attempts are exhausted.
func (m *TranscriptionModel) Transcribe(ctx context.Context, audioUrl, locale string) *transcriber.Result {
	if m.real == nil {
		result, _ := m.mock.Transcribe(ctx, nil, locale)
		return result
	}

	operation := func() (*transcriber.Result, error) {
		audioData, err := m.fetcher.FetchAudio(ctx, audioUrl)
		if err != nil {
			return nil, err
		}
		return m.real.Transcribe(ctx, audioData, locale)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = m.retryInitialInterval
	bo.Multiplier = config.TranscribeRetryMultiplier
	bo.RandomizationFactor = 1 // jitter on every computed delay

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(m.maxAttempts),
	)
	if err != nil {
		m.logger.WithError(err).Errorf("transcription failed after %d attempts", m.maxAttempts)
		return transcriber.FailureResult(err)
	}
	return result
}

// FetchTranscriptions returns records created within the configured window,
// newest first.
func (m *TranscriptionModel) FetchTranscriptions(page, limit uint64) ([]*dbmodels.Transcription, int64, error) {
	if page == 0 {
		page = config.DefaultFetchPage
	}
	if limit == 0 {
		limit = config.DefaultFetchLimit
	}
	since := time.Now().Add(-config.TranscriptionFetchWindow)
	return m.ds.GetTranscriptions(since, (page-1)*limit, limit)
}

// GetTranscription looks up one record, cache first.
func (m *TranscriptionModel) GetTranscription(ctx context.Context, transcriptionId string) (*dbmodels.Transcription, error) {
	if cached, err := m.rs.GetCachedTranscription(ctx, transcriptionId); err == nil && cached != nil {
		return cached, nil
	}
	return m.ds.GetTranscriptionByTranscriptionId(transcriptionId)
}

// DeleteTranscription removes a record and its cached copy. It reports
// whether a record was actually deleted.
func (m *TranscriptionModel) DeleteTranscription(ctx context.Context, transcriptionId string) (bool, error) {
	affected, err := m.ds.DeleteTranscription(transcriptionId)
	if err != nil {
		return false, err
	}
	if err := m.rs.DeleteCachedTranscription(ctx, transcriptionId); err != nil {
		m.logger.WithError(err).Warnln("failed to drop cached transcription")
	}
	return affected > 0, nil
}

func (m *TranscriptionModel) source() string {
	if m.real != nil {
		return config.TranscriptionSourceAzure
	}
	return config.TranscriptionSourceMock
}
