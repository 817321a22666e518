package server

import (
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/room"
)

type startSessionRequest struct {
	JobCategory       string `json:"jobCategory" validate:"required"`
	JobSkill          string `json:"jobSkill"`
	TechnicalLanguage string `json:"technicalLanguage"`
}

type submitResponseRequest struct {
	Text string `json:"text" validate:"required"`
}

type submitResponseResponse struct {
	Question             *interview.Question `json:"question"`
	CurrentQuestionIndex int                 `json:"currentQuestionIndex"`
}

type interviewStartRequest struct {
	JobCategory       string `json:"jobCategory" validate:"required"`
	JobSkill          string `json:"jobSkill" validate:"required"`
	TechnicalLanguage string `json:"technicalLanguage"`
}

type interviewResponseRequest struct {
	JobCategory       string `json:"jobCategory" validate:"required"`
	JobSkill          string `json:"jobSkill" validate:"required"`
	TechnicalLanguage string `json:"technicalLanguage"`
	CurrentQuestionID string `json:"currentQuestionId"`
	UserResponse      string `json:"userResponse" validate:"required"`
}

type interviewFeedbackRequest struct {
	JobCategory       string               `json:"jobCategory" validate:"required"`
	JobSkill          string               `json:"jobSkill" validate:"required"`
	TechnicalLanguage string               `json:"technicalLanguage"`
	Questions         []interview.Question `json:"questions"`
	Responses         []interview.Response `json:"responses" validate:"min=1"`
}

type synthesizeRequest struct {
	Text string `json:"text" validate:"required"`
}

type createRoomRequest struct {
	Title    string    `json:"title" validate:"required"`
	Type     room.Type `json:"type" validate:"omitempty,oneof=technical behavioral general"`
	HostName string    `json:"hostName"`
}

type createRoomResponse struct {
	Room  *room.Room `json:"room"`
	Token string     `json:"token"`
	Link  string     `json:"link"`
}

type inviteRequest struct {
	Email string    `json:"email" validate:"required,email"`
	Role  room.Role `json:"role" validate:"omitempty,oneof=participant observer"`
}

type speechEvent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}
