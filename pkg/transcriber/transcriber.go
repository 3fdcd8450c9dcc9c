package transcriber

import (
	"context"
	"errors"
)

// NoSpeechText is returned as the transcription when a session completed
// normally without recognizing anything.
const NoSpeechText = "(No speech detected)"

// ErrRecognitionTimeout is returned when a recognition session produced no
// terminal event within the deadline and nothing had been recognized yet.
var ErrRecognitionTimeout = errors.New("timeout")

// CanceledError is returned when the remote provider aborted the session.
// Its message is the provider-supplied reason verbatim.
type CanceledError struct {
	Reason string
}

func (e *CanceledError) Error() string {
	return e.Reason
}

// Result is the single outcome type returned by every transcription path,
// mock or real. Exactly one of Transcription/Error is populated; callers
// never branch on how the result was produced.
type Result struct {
	Success       bool   `json:"success"`
	Transcription string `json:"transcription,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Transcriber is the contract every speech provider fulfils. Implementations
// return a Result on a settled session and an error for conditions the caller
// may retry (transport failures, canceled sessions, empty timeouts).
type Transcriber interface {
	Transcribe(ctx context.Context, audioData []byte, locale string) (*Result, error)
}

func SuccessResult(text string) *Result {
	return &Result{Success: true, Transcription: text}
}

func FailureResult(err error) *Result {
	return &Result{Success: false, Error: err.Error()}
}
