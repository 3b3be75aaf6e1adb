package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NordCoder/uptime-monitor/internal/domain"
	"github.com/NordCoder/uptime-monitor/internal/domain/check"
)

// Error is the JSON body of every non-2xx response.
type Error struct {
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, Error{Detail: detail, Status: status})
}

// fail maps usecase errors onto HTTP statuses. id names the check in 404s.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, id uuid.UUID) {
	switch {
	case errors.Is(err, check.ErrValidation):
		var ve *check.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("Check not found with id '%s'", id))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "Check conflicts with stored data")
	default:
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
