// Package speech wraps speech recognition and synthesis backends behind
// small capability interfaces so the rest of the app never talks to a
// vendor SDK directly.
package speech

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrUnsupported is returned when no backend is configured.
	ErrUnsupported = errors.New("speech is not supported")

	// ErrEmptyText is returned when Speak is called with blank text.
	ErrEmptyText = errors.New("nothing to speak")
)

// Result is one recognition update.
type Result struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// Voice is a synthesis voice offered by a backend.
type Voice struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Gender   string `json:"gender,omitempty"`
}

// Transcriber turns a stream of audio chunks into recognition results.
// Transcribe returns after audio is closed and the backend has flushed its
// last result, or when ctx is cancelled.
type Transcriber interface {
	Transcribe(ctx context.Context, audio <-chan []byte, onResult func(Result)) error
}

// Synthesizer turns text into encoded audio.
type Synthesizer interface {
	Voices(ctx context.Context) ([]Voice, error)
	Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error)
}

// SelectVoice picks the first preferred voice that exists, else the first
// English voice, else the first voice. It reports false only when voices is
// empty.
func SelectVoice(voices []Voice, preferred []string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}
	for _, name := range preferred {
		for _, v := range voices {
			if v.Name == name {
				return v, true
			}
		}
	}
	for _, v := range voices {
		if strings.HasPrefix(v.Language, "en") {
			return v, true
		}
	}
	return voices[0], true
}
