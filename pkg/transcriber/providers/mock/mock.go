package mock

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/voxscribe/voxscribe-server/pkg/config"
	"github.com/voxscribe/voxscribe-server/pkg/transcriber"
)

// cannedTranscripts maps a BCP-47 locale to a fixed, human-plausible
// transcript. Every entry is tagged so downstream consumers can't mistake it
// for real provider output.
var cannedTranscripts = map[string]string{
	"en-US": "[Azure Mock] Hello, this is a natural-sounding English transcription from Azure Speech-to-Text. The speaker is talking about technology and innovation.",
	"en-GB": "[Azure Mock] Good day. This is a British English transcription. The speaker mentioned having a cup of tea and going to the countryside.",
	"fr-FR": "[Azure Mock] Bonjour, ceci est une transcription réaliste en français provenant d'Azure Speech-to-Text. La personne parle de ses vacances à Paris et de la cuisine française.",
	"es-ES": "[Azure Mock] Hola, esta es una transcripción realista en español de Azure Speech-to-Text. El hablante menciona una reunión importante y el clima en Madrid.",
	"de-DE": "[Azure Mock] Guten Tag, dies ist eine realistische Transkription auf Deutsch von Azure Speech-to-Text. Der Sprecher spricht über ein neues Projekt und das Wetter in Berlin.",
	"it-IT": "[Azure Mock] Ciao, questa è una trascrizione realistica in italiano da Azure Speech-to-Text. Il parlante discute di cibo, vino e viaggi in Toscana.",
	"pt-BR": "[Azure Mock] Olá, esta é uma transcrição realista em português do Brasil do Azure Speech-to-Text. A pessoa está falando sobre carnaval e futebol.",
	"ja-JP": "[Azure Mock] こんにちは、これはAzure Speech-to-Textによる自然な日本語の文字起こしです。話者は東京の天気と新しいプロジェクトについて話しています。",
	"zh-CN": "[Azure Mock] 你好，这是来自 Azure Speech-to-Text 的逼真中文转录。说话者在讨论北京的天气和人工智能的未来。",
}

// Transcriber produces deterministic canned transcripts when no usable Azure
// credential is configured. It is total: it never fails, whatever the input.
type Transcriber struct {
	// Latency is the artificial delay before returning, preserving
	// caller-side timing assumptions (progress indicators and the like).
	Latency time.Duration
	logger  *logrus.Entry
}

func New(logger *logrus.Logger) *Transcriber {
	return &Transcriber{
		Latency: config.MockTranscribeLatency,
		logger:  logger.WithField("provider", "mock"),
	}
}

// Transcribe looks up the canned transcript for the locale, falling back to
// en-US for unknown tags. The audio payload is ignored.
func (t *Transcriber) Transcribe(ctx context.Context, _ []byte, locale string) (*transcriber.Result, error) {
	text, ok := cannedTranscripts[locale]
	if !ok {
		text = cannedTranscripts[config.DefaultLocale]
	}

	if t.Latency > 0 {
		select {
		case <-time.After(t.Latency):
		case <-ctx.Done():
			// the caller is gone; no point simulating the rest of the wait
		}
	}

	if t.logger != nil {
		t.logger.WithField("locale", locale).Debugln("returning canned transcription")
	}
	return transcriber.SuccessResult(text), nil
}
