package recognition

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxscribe/voxscribe-server/pkg/transcriber"
)

func settledOutcome(t *testing.T, s *Session) Outcome {
	t.Helper()
	select {
	case out := <-s.Settled():
		return out
	default:
		t.Fatal("session should have settled")
		return Outcome{}
	}
}

func TestSession_PartialsThenComplete(t *testing.T) {
	s := NewSession()

	s.AppendText("hello")
	s.AppendText("world")
	s.Complete()

	out := settledOutcome(t, s)
	require.NoError(t, out.Err)
	assert.Equal(t, "hello world", out.Text)
}

func TestSession_CompleteWithoutSpeech(t *testing.T) {
	s := NewSession()
	s.Complete()

	out := settledOutcome(t, s)
	require.NoError(t, out.Err)
	assert.Equal(t, transcriber.NoSpeechText, out.Text)
}

func TestSession_CancelWins(t *testing.T) {
	s := NewSession()

	s.AppendText("hello")
	s.Cancel("connection was closed by the remote host")
	// events after the terminal transition are ignored
	s.Complete()
	s.AppendText("world")

	out := settledOutcome(t, s)
	require.Error(t, out.Err)

	var canceled *transcriber.CanceledError
	require.True(t, errors.As(out.Err, &canceled))
	assert.Equal(t, "connection was closed by the remote host", canceled.Reason)
	assert.Equal(t, "connection was closed by the remote host", out.Err.Error())

	// exactly one settlement
	select {
	case <-s.Settled():
		t.Fatal("session settled more than once")
	default:
	}
}

func TestSession_DeadlineWithoutSpeech(t *testing.T) {
	s := NewSession()

	require.True(t, s.Expire())

	out := settledOutcome(t, s)
	require.ErrorIs(t, out.Err, transcriber.ErrRecognitionTimeout)
	assert.Contains(t, out.Err.Error(), "timeout")
}

func TestSession_DeadlineIsSoftOnceSpeechArrived(t *testing.T) {
	s := NewSession()

	s.AppendText("hello")
	// deadline fires but speech was already recognized, so the in-flight
	// completion resolves instead
	require.False(t, s.Expire())

	s.Complete()
	out := settledOutcome(t, s)
	require.NoError(t, out.Err)
	assert.Equal(t, "hello", out.Text)
}

func TestSession_ExpireAfterTerminalIsNoop(t *testing.T) {
	s := NewSession()

	s.Complete()
	require.False(t, s.Expire())

	out := settledOutcome(t, s)
	require.NoError(t, out.Err)
}

func TestDrainAsync_UnblocksProducerAndReportsError(t *testing.T) {
	ch := make(chan error)
	reported := make(chan error, 1)
	DrainAsync(ch, func(err error) { reported <- err })

	// an unbuffered send must complete once the drain goroutine is reading
	select {
	case ch <- errors.New("stop failed"):
	case <-time.After(time.Second):
		t.Fatal("producer send was never consumed")
	}

	select {
	case err := <-reported:
		assert.EqualError(t, err, "stop failed")
	case <-time.After(time.Second):
		t.Fatal("error outcome was never reported")
	}
}

func TestDrainAsync_NilOutcomeIsSilent(t *testing.T) {
	ch := make(chan error)
	var called bool
	DrainAsync(ch, func(error) { called = true })

	select {
	case ch <- nil:
	case <-time.After(time.Second):
		t.Fatal("producer send was never consumed")
	}

	// give the drain goroutine a moment; a nil outcome must not be reported
	time.Sleep(10 * time.Millisecond)
	assert.False(t, called)
}
