package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/intervue/internal/api"
	"github.com/abhisek/intervue/internal/room"
)

func roomStatus(err error) int {
	switch {
	case errors.Is(err, room.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, room.ErrTitleRequired), errors.Is(err, room.ErrInvalidType),
		errors.Is(err, room.ErrInvalidRole), errors.Is(err, room.ErrInvalidEmail):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !s.decode(w, r, &req) {
		return
	}
	rm, token, err := s.rooms.Create(req.Title, req.Type, req.HostName)
	if err != nil {
		api.Error(w, roomStatus(err), err.Error())
		return
	}
	api.JSON(w, http.StatusCreated, createRoomResponse{
		Room:  rm,
		Token: token,
		Link:  rm.Link + "?token=" + url.QueryEscape(token),
	})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	rm, err := s.rooms.Get(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, roomStatus(err), err.Error())
		return
	}
	api.JSON(w, http.StatusOK, rm)
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if !s.decode(w, r, &req) {
		return
	}
	inv, err := s.rooms.Invite(chi.URLParam(r, "id"), req.Email, req.Role)
	if err != nil {
		api.Error(w, roomStatus(err), err.Error())
		return
	}
	api.JSON(w, http.StatusCreated, inv)
}

func (s *Server) handleRoomSocket(w http.ResponseWriter, r *http.Request) {
	hub, claims, err := s.rooms.Authorize(chi.URLParam(r, "id"), r.URL.Query().Get("token"))
	if err != nil {
		api.Error(w, roomStatus(err), err.Error())
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	room.NewClient(hub, conn, claims).Serve()
}
