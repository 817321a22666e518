package server

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/api"
	"github.com/abhisek/intervue/internal/logger"
	"github.com/abhisek/intervue/internal/speech"
)

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	if !s.speaker.Supported() {
		api.Error(w, http.StatusServiceUnavailable, speech.ErrUnsupported.Error())
		return
	}
	if len(s.speaker.Voices()) == 0 {
		if err := s.speaker.LoadVoices(r.Context()); err != nil {
			logger.WithCtx(r.Context(), s.log).Warn("failed to load voices", zap.Error(err))
			api.Error(w, http.StatusBadGateway, "failed to load voices")
			return
		}
	}

	resp := map[string]interface{}{"voices": s.speaker.Voices()}
	if v, ok := s.speaker.Selected(); ok {
		resp["selected"] = v
	}
	api.JSON(w, http.StatusOK, resp)
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	if !s.speaker.Supported() {
		api.Error(w, http.StatusServiceUnavailable, speech.ErrUnsupported.Error())
		return
	}
	var req synthesizeRequest
	if !s.decode(w, r, &req) {
		return
	}

	audio, err := s.speaker.Speak(r.Context(), req.Text)
	switch {
	case errors.Is(err, speech.ErrEmptyText):
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		api.Error(w, http.StatusBadGateway, "failed to synthesize speech")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// handleSpeechSocket streams binary audio frames into a Capture and writes
// interim and final transcripts back. Text frames "start" and "stop" control
// the capture; it starts listening as soon as the socket opens.
func (s *Server) handleSpeechSocket(w http.ResponseWriter, r *http.Request) {
	capture := speech.NewCapture(s.transcriber, s.log.Named("speech"))
	if !capture.Supported() {
		api.Error(w, http.StatusServiceUnavailable, speech.ErrUnsupported.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	log := logger.WithCtx(r.Context(), s.log)

	var writeMu sync.Mutex
	emit := func(ev speechEvent) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(ev); err != nil {
			log.Debug("failed to write speech event", zap.Error(err))
		}
	}
	onFinal := func(text string) { emit(speechEvent{Type: "final", Text: text}) }
	onInterim := func(text string) { emit(speechEvent{Type: "interim", Text: text}) }

	capture.Start(onFinal, onInterim)
	defer capture.Stop()

	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("speech socket closed", zap.Error(err))
			}
			return
		}
		switch typ {
		case websocket.BinaryMessage:
			capture.Feed(data)
		case websocket.TextMessage:
			switch string(data) {
			case "stop":
				capture.Stop()
				emit(speechEvent{Type: "stopped"})
			case "start":
				if !capture.Start(onFinal, onInterim) {
					emit(speechEvent{Type: "error", Text: "already listening"})
				}
			}
		}
	}
}
