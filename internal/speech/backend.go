package speech

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/config"
)

// Backend bundles the configured recognition and synthesis adapters.
// Either field may be nil when that capability is unavailable.
type Backend struct {
	Transcriber Transcriber
	Synthesizer Synthesizer

	closers []io.Closer
}

// OpenGoogle connects the Google Cloud adapters when speech is enabled.
// Client errors are logged and leave the capability unsupported.
func OpenGoogle(ctx context.Context, cfg config.SpeechConfig, log *zap.Logger) *Backend {
	b := &Backend{}
	if !cfg.Enabled {
		return b
	}

	t, err := NewGoogleTranscriber(ctx, cfg.Language, cfg.SampleRateHertz)
	if err != nil {
		log.Warn("speech recognition unavailable", zap.Error(err))
	} else {
		b.Transcriber = t
		b.closers = append(b.closers, t)
	}

	s, err := NewGoogleSynthesizer(ctx, cfg.Language)
	if err != nil {
		log.Warn("speech synthesis unavailable", zap.Error(err))
	} else {
		b.Synthesizer = s
		b.closers = append(b.closers, s)
	}
	return b
}

// Close releases every client the backend opened.
func (b *Backend) Close() {
	for _, c := range b.closers {
		_ = c.Close()
	}
	b.closers = nil
}
