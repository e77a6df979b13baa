package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/backyonatan-alt/launchboard/internal/country"
	"github.com/backyonatan-alt/launchboard/internal/screen"
)

type selectRequest struct {
	Country string `json:"country"`
}

type timeResponse struct {
	Country string `json:"country"`
	Zone    string `json:"zone"`
	Label   string `json:"label"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"screens": s.screens.Len(),
	})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, s.countries.List())
}

func (s *Server) handleCountryTime(w http.ResponseWriter, r *http.Request) {
	c, err := s.countries.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	writeJSON(w, http.StatusOK, timeResponse{
		Country: c.Name,
		Zone:    c.ZoneID,
		Label:   s.clock.CurrentTimeAt(c),
	})
}

func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	scr, err := s.screens.Mount()
	if err != nil {
		if errors.Is(err, screen.ErrTooManyScreens) {
			slog.Warn("screen mount rejected", "screens", s.screens.Len(), "error", err)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusServiceUnavailable, "too many screens, try again later")
			return
		}
		slog.Error("screen mount failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Location", "/api/screens/"+scr.ID().String())
	writeJSON(w, http.StatusCreated, scr.View())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	scr, ok := s.lookupScreen(w, r)
	if !ok {
		return
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	writeJSON(w, http.StatusOK, scr.View())
}

func (s *Server) handleUnmount(w http.ResponseWriter, r *http.Request) {
	if err := s.screens.Unmount(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "screen not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*screen.Screen).ToggleDropdown)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, (*screen.Screen).DismissDropdown)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.transition(w, r, func(scr *screen.Screen) (screen.State, error) {
		return scr.SelectCountry(req.Country)
	})
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, apply func(*screen.Screen) (screen.State, error)) {
	scr, ok := s.lookupScreen(w, r)
	if !ok {
		return
	}
	if _, err := apply(scr); err != nil {
		switch {
		case errors.Is(err, country.ErrUnknownCountry):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, screen.ErrUnmounted):
			writeError(w, http.StatusNotFound, "screen not found")
		default:
			slog.Error("screen transition failed", "screen", scr.ID(), "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, scr.View())
}

func (s *Server) lookupScreen(w http.ResponseWriter, r *http.Request) (*screen.Screen, bool) {
	scr, err := s.screens.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "screen not found")
		return nil, false
	}
	return scr, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
