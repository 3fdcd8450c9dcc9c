package config

import "time"

const (
	DefaultLocale      = "en-US"
	DefaultAzureRegion = "eastus"

	// Azure subscription keys are 32 characters; anything shorter than this
	// is treated as a placeholder and switches the server into mock mode.
	MinAzureKeyLength = 16

	// audio fetch: linear backoff, delay before retry n = base * n
	MaxAudioFetchAttempts = 3
	AudioFetchRetryDelay  = 1 * time.Second

	// outer retry around the whole fetch+recognize sequence
	MaxTranscribeAttempts          = 4
	TranscribeRetryInitialInterval = 1 * time.Second
	TranscribeRetryMultiplier      = 2

	// a session that produced no terminal event within this window is
	// forcibly stopped
	RecognitionDeadline = 30 * time.Second

	// the mock transcriber keeps caller-side timing assumptions intact
	MockTranscribeLatency = 1200 * time.Millisecond

	// fetchTranscriptions only returns records from this window
	TranscriptionFetchWindow = 30 * 24 * time.Hour

	DefaultTranscriptionCacheTTL = 24 * time.Hour

	DefaultFetchPage  = 1
	DefaultFetchLimit = 100

	TranscriptionSourceAzure = "azure"
	TranscriptionSourceMock  = "mock"
)
