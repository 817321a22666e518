package speech

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

const audioQueueSize = 64

// Capture is a start/stop wrapper over a Transcriber. Interim and final
// transcripts are delivered through the callbacks passed to Start.
type Capture struct {
	transcriber Transcriber
	log         *zap.Logger

	mu     sync.Mutex
	audio  chan []byte
	gen    int
	active bool
}

// NewCapture creates a Capture. A nil transcriber yields an unsupported capture.
func NewCapture(t Transcriber, log *zap.Logger) *Capture {
	if log == nil {
		log = zap.NewNop()
	}
	return &Capture{transcriber: t, log: log}
}

// Supported reports whether a recognition backend is available.
func (c *Capture) Supported() bool {
	return c.transcriber != nil
}

// Start begins recognition. It returns false when capture is unsupported or
// already listening. onInterim may be nil.
func (c *Capture) Start(onFinal, onInterim func(string)) bool {
	if !c.Supported() {
		return false
	}

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return false
	}
	c.gen++
	gen := c.gen
	audio := make(chan []byte, audioQueueSize)
	c.audio = audio
	c.active = true
	c.mu.Unlock()

	go func() {
		err := c.transcriber.Transcribe(context.Background(), audio, func(r Result) {
			if r.Text == "" {
				return
			}
			if r.Final {
				if onFinal != nil {
					onFinal(r.Text)
				}
			} else if onInterim != nil {
				onInterim(r.Text)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			c.log.Warn("speech recognition error", zap.Error(err))
		}

		c.mu.Lock()
		if c.gen == gen && c.active {
			c.active = false
			close(c.audio)
			c.audio = nil
		}
		c.mu.Unlock()
	}()
	return true
}

// Feed queues one audio chunk. It returns false when not listening or when
// the queue is full; dropped chunks are not retried.
func (c *Capture) Feed(chunk []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return false
	}
	select {
	case c.audio <- chunk:
		return true
	default:
		c.log.Debug("speech audio queue full, dropping chunk", zap.Int("bytes", len(chunk)))
		return false
	}
}

// Stop ends the audio stream. The backend may still deliver its last final
// result after Stop returns.
func (c *Capture) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.active = false
	close(c.audio)
	c.audio = nil
}

// Active reports whether capture is listening.
func (c *Capture) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
