// Package server exposes interview sessions, stateless question generation,
// speech, live rooms and resume validation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/middleware"
	"github.com/abhisek/intervue/internal/room"
	"github.com/abhisek/intervue/internal/speech"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators a Server needs.
type Deps struct {
	Config      *config.Config
	Interviewer *interview.Interviewer
	// Speech may be nil; speech routes then answer 503.
	Speech *speech.Backend
	Logger *zap.Logger
}

// Server is the interview HTTP service.
type Server struct {
	cfg         *config.Config
	log         *zap.Logger
	interviewer *interview.Interviewer
	sessions    *sessionRegistry
	speaker     *speech.Speaker
	transcriber speech.Transcriber
	rooms       *room.Manager
	validate    *validator.Validate
	upgrader    websocket.Upgrader
}

// New creates a Server.
func New(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:         d.Config,
		log:         log,
		interviewer: d.Interviewer,
		sessions:    newSessionRegistry(d.Config.SessionTTL),
		validate:    newValidator(),
	}

	var synth speech.Synthesizer
	if d.Speech != nil {
		synth = d.Speech.Synthesizer
		s.transcriber = d.Speech.Transcriber
	}
	s.speaker = speech.NewSpeaker(synth, d.Config.Speech.PreferredVoices, log.Named("speech"))

	s.rooms = room.NewManager(
		room.NewSigner(d.Config.RoomSecret, d.Config.RoomTTL),
		d.Config.PublicURL,
		d.Config.RoomTTL,
		log.Named("room"),
	)

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || middleware.OriginAllowed(d.Config.AllowedOrigins, origin)
		},
	}
	return s
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(s.log.Named("http")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(s.cfg.AllowedOrigins))

	r.Get("/api/catalog", s.handleCatalog)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/question", s.handleCurrentQuestion)
			r.Post("/responses", s.handleSubmitResponse)
			r.Post("/feedback", s.handleSessionFeedback)
		})
	})

	r.Route("/api/interview", func(r chi.Router) {
		r.Post("/start", s.handleInterviewStart)
		r.Post("/response", s.handleInterviewResponse)
		r.Post("/feedback", s.handleInterviewFeedback)
	})

	r.Route("/api/speech", func(r chi.Router) {
		r.Get("/voices", s.handleVoices)
		r.Post("/synthesize", s.handleSynthesize)
	})
	r.Get("/ws/speech", s.handleSpeechSocket)

	r.Route("/api/rooms", func(r chi.Router) {
		r.Post("/", s.handleCreateRoom)
		r.Get("/{id}", s.handleGetRoom)
		r.Post("/{id}/invites", s.handleInvite)
	})
	r.Get("/ws/rooms/{id}", s.handleRoomSocket)

	r.Post("/api/resume/validate", s.handleValidateResume)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.rooms.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
