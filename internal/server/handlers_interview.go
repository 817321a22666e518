package server

import (
	"net/http"

	"github.com/abhisek/intervue/internal/api"
	"github.com/abhisek/intervue/internal/interview"
)

func (s *Server) handleInterviewStart(w http.ResponseWriter, r *http.Request) {
	var req interviewStartRequest
	if !s.decode(w, r, &req) {
		return
	}
	questions := s.interviewer.GenerateQuestions(r.Context(), interview.Selection{
		JobCategory:       req.JobCategory,
		JobSkill:          req.JobSkill,
		TechnicalLanguage: req.TechnicalLanguage,
	})
	api.JSON(w, http.StatusOK, map[string][]interview.Question{"questions": questions})
}

func (s *Server) handleInterviewResponse(w http.ResponseWriter, r *http.Request) {
	var req interviewResponseRequest
	if !s.decode(w, r, &req) {
		return
	}
	next := s.interviewer.NextQuestion(r.Context(), interview.Selection{
		JobCategory:       req.JobCategory,
		JobSkill:          req.JobSkill,
		TechnicalLanguage: req.TechnicalLanguage,
	}, req.UserResponse)
	api.JSON(w, http.StatusOK, map[string]interview.Question{"nextQuestion": next})
}

func (s *Server) handleInterviewFeedback(w http.ResponseWriter, r *http.Request) {
	var req interviewFeedbackRequest
	if !s.decode(w, r, &req) {
		return
	}
	feedback, err := s.interviewer.Review(r.Context(), interview.Selection{
		JobCategory:       req.JobCategory,
		JobSkill:          req.JobSkill,
		TechnicalLanguage: req.TechnicalLanguage,
	}, req.Questions, req.Responses)
	if err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	api.JSON(w, http.StatusOK, map[string]string{"feedback": feedback})
}
