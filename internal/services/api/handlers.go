package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
)

const maxRequestBody = 1 << 20

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) handleListChecks(w http.ResponseWriter, r *http.Request) {
	checks, err := s.uc.List(r.Context())
	if err != nil {
		s.fail(w, r, err, uuid.Nil)
		return
	}
	if checks == nil {
		checks = []*check.Check{}
	}
	writeJSON(w, http.StatusOK, checks)
}

func (s *Server) handleCreateCheck(w http.ResponseWriter, r *http.Request) {
	var in NewCheck
	if !decodeBody(w, r, &in) {
		return
	}
	c, err := s.uc.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, uuid.Nil)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleGetCheck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.uc.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, id)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCheck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var p check.Patch
	if !decodeBody(w, r, &p) {
		return
	}
	if err := s.uc.Update(r.Context(), id, p); err != nil {
		s.fail(w, r, err, id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCheck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.uc.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReadHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rows, err := s.uc.ListHistory(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, id)
		return
	}
	if rows == nil {
		rows = []*history.History{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.uc.DeleteHistory(r.Context(), id); err != nil {
		s.fail(w, r, err, id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid check id '%s'", raw))
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(dst)
	if err == nil {
		return true
	}
	var ve *check.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Msg)
		return false
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
	return false
}
