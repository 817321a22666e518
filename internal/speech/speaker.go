package speech

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Speaker selects a voice and synthesizes one utterance at a time. Starting
// a new utterance cancels the one in flight.
type Speaker struct {
	synth     Synthesizer
	preferred []string
	log       *zap.Logger

	mu       sync.Mutex
	voices   []Voice
	selected *Voice
	cancel   context.CancelFunc
	gen      int
	speaking bool
}

// NewSpeaker creates a Speaker. A nil synthesizer yields an unsupported speaker.
func NewSpeaker(s Synthesizer, preferred []string, log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speaker{synth: s, preferred: preferred, log: log}
}

// Supported reports whether a synthesis backend is available.
func (s *Speaker) Supported() bool {
	return s.synth != nil
}

// LoadVoices fetches the backend's voices and picks a default voice unless
// one was already chosen with SetVoice.
func (s *Speaker) LoadVoices(ctx context.Context) error {
	if !s.Supported() {
		return ErrUnsupported
	}
	voices, err := s.synth.Voices(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.voices = voices
	if s.selected == nil {
		if v, ok := SelectVoice(voices, s.preferred); ok {
			s.selected = &v
		}
	}
	return nil
}

// Voices returns the voices loaded by LoadVoices.
func (s *Speaker) Voices() []Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Voice, len(s.voices))
	copy(out, s.voices)
	return out
}

// SetVoice overrides the selected voice.
func (s *Speaker) SetVoice(v Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &v
}

// Selected returns the current voice, if any.
func (s *Speaker) Selected() (Voice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return Voice{}, false
	}
	return *s.selected, true
}

// Speak synthesizes text with the selected voice and returns the audio.
func (s *Speaker) Speak(ctx context.Context, text string) ([]byte, error) {
	if !s.Supported() {
		return nil, ErrUnsupported
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.speaking = true
	var voice Voice
	if s.selected != nil {
		voice = *s.selected
	}
	s.mu.Unlock()

	audio, err := s.synth.Synthesize(ctx, text, voice)

	s.mu.Lock()
	if s.gen == gen {
		s.speaking = false
		s.cancel = nil
	}
	s.mu.Unlock()
	cancel()

	if err != nil {
		s.log.Warn("speech synthesis error", zap.String("voice", voice.Name), zap.Error(err))
		return nil, err
	}
	return audio, nil
}

// Stop cancels the utterance in flight, if any.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.speaking = false
}

// Speaking reports whether an utterance is being synthesized.
func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}
