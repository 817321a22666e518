package server

import (
	"encoding/json"
	"net/http"

	"github.com/abhisek/intervue/internal/api"
	"github.com/abhisek/intervue/internal/resume"
)

func (s *Server) handleValidateResume(w http.ResponseWriter, r *http.Request) {
	var res resume.Resume
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if errs := resume.Validate(res); len(errs) > 0 {
		api.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"valid": false, "errors": errs})
		return
	}
	api.JSON(w, http.StatusOK, map[string]bool{"valid": true})
}
