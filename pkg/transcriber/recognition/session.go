package recognition

import (
	"strings"
	"sync"

	"github.com/voxscribe/voxscribe-server/pkg/transcriber"
)

type terminalState int

const (
	stateNone terminalState = iota
	stateCompleted
	stateCanceled
	stateTimedOut
)

// Outcome is the final result of one streaming recognition session. Exactly
// one of Text/Err is populated.
type Outcome struct {
	Text string
	Err  error
}

// Session is the state machine behind one streaming recognition call. It
// accumulates recognized fragments in delivery order and settles exactly once
// on the first terminal event; everything arriving after that is ignored.
// A session is owned by a single Transcribe invocation and never shared.
//
// The type is deliberately free of any speech SDK dependency; providers feed
// it from their event callbacks.
type Session struct {
	mu    sync.Mutex
	acc   strings.Builder
	state terminalState
	done  chan Outcome
}

func NewSession() *Session {
	return &Session{
		// buffered so the settling callback never blocks on the consumer
		done: make(chan Outcome, 1),
	}
}

// AppendText records one recognized fragment. Fragments delivered after a
// terminal transition are dropped.
func (s *Session) AppendText(text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateNone {
		return
	}
	s.acc.WriteString(text)
	s.acc.WriteString(" ")
}

// Cancel settles the session with the provider-supplied reason.
func (s *Session) Cancel(reason string) {
	s.settle(stateCanceled, Outcome{Err: &transcriber.CanceledError{Reason: reason}})
}

// Complete settles the session with whatever was accumulated so far.
func (s *Session) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateNone {
		return
	}
	text := strings.TrimSpace(s.acc.String())
	if text == "" {
		text = transcriber.NoSpeechText
	}
	s.state = stateCompleted
	s.done <- Outcome{Text: text}
}

// Expire handles the hard deadline. It settles a timeout failure only when
// nothing was recognized yet; once any speech is in, the deadline is soft and
// the in-flight completion is allowed to resolve instead. Returns whether the
// session was settled by this call.
func (s *Session) Expire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateNone {
		return false
	}
	if s.acc.Len() > 0 {
		return false
	}
	s.state = stateTimedOut
	s.done <- Outcome{Err: transcriber.ErrRecognitionTimeout}
	return true
}

func (s *Session) settle(state terminalState, out Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateNone {
		return
	}
	s.state = state
	s.done <- out
}

// Settled returns the one-shot channel carrying the session's final outcome.
func (s *Session) Settled() <-chan Outcome {
	return s.done
}

// DrainAsync consumes the one-shot outcome channel of an asynchronous SDK
// call in the background, unblocking its producer, and reports a non-nil
// outcome to onErr. Callers that need the outcome synchronously should
// receive from the channel themselves instead.
func DrainAsync(ch <-chan error, onErr func(error)) {
	go func() {
		if err := <-ch; err != nil && onErr != nil {
			onErr(err)
		}
	}()
}
