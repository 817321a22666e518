package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/api"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/logger"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	skills := make(map[string][]string, len(interview.Categories))
	for _, c := range interview.Categories {
		skills[c] = interview.Skills(c)
	}
	api.JSON(w, http.StatusOK, map[string]interface{}{
		"categories": interview.Categories,
		"skills":     skills,
		"languages":  interview.Languages,
	})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess := interview.Start(interview.Selection{
		JobCategory:       req.JobCategory,
		JobSkill:          req.JobSkill,
		TechnicalLanguage: req.TechnicalLanguage,
	})
	s.sessions.add(sess)

	logger.WithCtx(logger.WithSessionID(r.Context(), sess.ID), s.log).Info("session started",
		zap.String("category", sess.JobCategory), zap.Int("questions", len(sess.Questions)))
	api.JSON(w, http.StatusCreated, sess)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*liveSession, bool) {
	live, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		api.Error(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return live, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	live, ok := s.lookup(w, r)
	if !ok {
		return
	}
	api.JSON(w, http.StatusOK, live.snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		api.Error(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	live, ok := s.lookup(w, r)
	if !ok {
		return
	}
	api.JSON(w, http.StatusOK, map[string]*interview.Question{"question": live.snapshot().CurrentQuestion()})
}

func (s *Server) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	live, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req submitResponseRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !live.busy.TryLock() {
		api.Error(w, http.StatusConflict, "a request for this session is already in progress")
		return
	}
	defer live.busy.Unlock()

	sess := live.snapshot()
	ctx := logger.WithSessionID(r.Context(), sess.ID)
	next, err := s.interviewer.SubmitResponse(ctx, sess, req.Text)
	if errors.Is(err, interview.ErrNoCurrentQuestion) {
		logger.WithCtx(ctx, s.log).Debug("response rejected", zap.Error(err))
		api.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to process response")
		return
	}
	live.commit(sess)

	api.JSON(w, http.StatusOK, submitResponseResponse{Question: next, CurrentQuestionIndex: sess.CurrentQuestionIndex})
}

func (s *Server) handleSessionFeedback(w http.ResponseWriter, r *http.Request) {
	live, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if !live.busy.TryLock() {
		api.Error(w, http.StatusConflict, "a request for this session is already in progress")
		return
	}
	defer live.busy.Unlock()

	sess := live.snapshot()
	ctx := logger.WithSessionID(r.Context(), sess.ID)
	feedback, err := s.interviewer.Feedback(ctx, sess)
	if errors.Is(err, interview.ErrNoResponses) {
		logger.WithCtx(ctx, s.log).Debug("feedback rejected", zap.Error(err))
		api.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to generate feedback")
		return
	}
	api.JSON(w, http.StatusOK, map[string]string{"feedback": feedback})
}
