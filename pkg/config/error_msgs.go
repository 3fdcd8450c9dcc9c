package config

const (
	AudioUrlRequired         = "audioUrl is required"
	RequestedRecordNotExist  = "requested transcription does not exist"
	InvalidAudioPayload      = "downloaded file is not an audio payload"
	TranscriptionSaveFailed  = "failed to save transcription"
	UnprocessableEntity      = "Unprocessable Entity"
	InternalServerError      = "Internal server error"
	TranscriptionFetchFailed = "failed to fetch transcriptions"
	TranscriptionCreatedMsg  = "transcribed text"
)
