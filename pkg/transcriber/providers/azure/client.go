package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Microsoft/cognitive-services-speech-sdk-go/audio"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/common"
	"github.com/Microsoft/cognitive-services-speech-sdk-go/speech"
	"github.com/sirupsen/logrus"
	"github.com/voxscribe/voxscribe-server/pkg/config"
	"github.com/voxscribe/voxscribe-server/pkg/transcriber"
	"github.com/voxscribe/voxscribe-server/pkg/transcriber/recognition"
)

// Client drives Azure Cognitive Services continuous speech recognition over a
// push audio stream. One recognition session is created per Transcribe call;
// the client itself holds only the immutable credential.
type Client struct {
	creds    config.AzureSpeechInfo
	deadline time.Duration
	logger   *logrus.Entry
}

func New(creds config.AzureSpeechInfo, logger *logrus.Logger) *Client {
	return &Client{
		creds:    creds,
		deadline: config.RecognitionDeadline,
		logger:   logger.WithField("provider", "azure"),
	}
}

// Transcribe pushes the full audio buffer into a continuous-recognition
// session and waits for the first terminal event: normal stop, provider
// cancellation, or the deadline. The remote session is explicitly stopped on
// every terminal path.
func (c *Client) Transcribe(ctx context.Context, audioData []byte, locale string) (*transcriber.Result, error) {
	log := c.logger.WithField("locale", locale)

	speechConfig, err := speech.NewSpeechConfigFromSubscription(c.creds.SubscriptionKey, c.creds.ServiceRegion)
	if err != nil {
		return nil, fmt.Errorf("could not create speech config: %w", err)
	}
	defer speechConfig.Close()

	if err = speechConfig.SetSpeechRecognitionLanguage(locale); err != nil {
		return nil, fmt.Errorf("could not set recognition language: %w", err)
	}

	audioFormat, err := audio.GetWaveFormatPCM(16000, 16, 1)
	if err != nil {
		return nil, fmt.Errorf("could not create audio format: %w", err)
	}
	defer audioFormat.Close()

	pushStream, err := audio.CreatePushAudioInputStreamFromFormat(audioFormat)
	if err != nil {
		return nil, fmt.Errorf("could not create push stream: %w", err)
	}
	defer pushStream.Close()

	audioConfig, err := audio.NewAudioConfigFromStreamInput(pushStream)
	if err != nil {
		return nil, fmt.Errorf("could not create audio config from stream: %w", err)
	}
	defer audioConfig.Close()

	recognizer, err := speech.NewSpeechRecognizerFromConfig(speechConfig, audioConfig)
	if err != nil {
		return nil, fmt.Errorf("could not create recognizer: %w", err)
	}
	defer recognizer.Close()

	sess := recognition.NewSession()

	recognizer.SessionStarted(func(e speech.SessionEventArgs) {
		defer e.Close()
		log.Debugln("azure recognition session started")
	})
	recognizer.Recognizing(func(e speech.SpeechRecognitionEventArgs) {
		defer e.Close()
		// interim hypothesis only; the final fragment arrives via Recognized
		log.Debugf("recognizing: %s", e.Result.Text)
	})
	recognizer.Recognized(func(e speech.SpeechRecognitionEventArgs) {
		defer e.Close()
		sess.AppendText(e.Result.Text)
	})
	recognizer.Canceled(func(e speech.SpeechRecognitionCanceledEventArgs) {
		defer e.Close()
		if e.Reason == common.EndOfStream {
			// the service reports end of the pushed clip as a
			// cancellation; it is a normal completion
			sess.Complete()
			return
		}
		log.Warnf("azure recognition canceled: %v", e.ErrorDetails)
		sess.Cancel(e.ErrorDetails)
	})
	recognizer.SessionStopped(func(e speech.SessionEventArgs) {
		defer e.Close()
		log.Debugln("azure recognition session stopped")
		sess.Complete()
	})

	if err = <-recognizer.StartContinuousRecognitionAsync(); err != nil {
		return nil, fmt.Errorf("could not start recognition: %w", err)
	}

	// Write the whole clip once, then close the stream to signal end of
	// input. The closure is what lets SessionStopped eventually fire for
	// short clips.
	if err = pushStream.Write(audioData); err != nil {
		<-recognizer.StopContinuousRecognitionAsync()
		return nil, fmt.Errorf("could not write audio to push stream: %w", err)
	}
	pushStream.CloseStream()

	deadline := time.NewTimer(c.deadline)
	defer deadline.Stop()

	for {
		select {
		case out := <-sess.Settled():
			// stop is idempotent; make sure the remote stream is down
			// before returning on any terminal path
			<-recognizer.StopContinuousRecognitionAsync()
			if out.Err != nil {
				return nil, out.Err
			}
			return transcriber.SuccessResult(out.Text), nil
		case <-deadline.C:
			// always ask the remote session to stop; whether the timeout
			// settles the result depends on what was recognized so far.
			// The stop outcome is drained in the background so its
			// producer never blocks on the unread channel.
			recognition.DrainAsync(recognizer.StopContinuousRecognitionAsync(), func(err error) {
				log.WithError(err).Warnln("failed to stop recognition after deadline")
			})
			if sess.Expire() {
				log.Warnln("recognition deadline reached with no speech recognized")
			}
		case <-ctx.Done():
			<-recognizer.StopContinuousRecognitionAsync()
			return nil, ctx.Err()
		}
	}
}
