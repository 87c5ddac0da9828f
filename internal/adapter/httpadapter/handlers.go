package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/jbacule/ph-earthquakes/internal/dashboard"
	"github.com/jbacule/ph-earthquakes/internal/domain"
	"github.com/jbacule/ph-earthquakes/internal/pipeline"
)

const maxBodyBytes = 1 << 20

type sessionHandler func(w http.ResponseWriter, r *http.Request, s *dashboard.Session)

type sessionResponse struct {
	ID           string                  `json:"id"`
	State        dashboard.State         `json:"state"`
	Theme        domain.MapTheme         `json:"theme"`
	Total        int                     `json:"total"`
	VisibleCount int                     `json:"visible_count"`
	Largest      *pipeline.MarkerRecord  `json:"largest"`
	Markers      []pipeline.MarkerRecord `json:"markers"`
}

type themesResponse struct {
	Themes       []domain.MapTheme `json:"themes"`
	DefaultTheme string            `json:"default_theme"`
	View         domain.MapView    `json:"view"`
}

type themeRequest struct {
	ID string `json:"id"`
}

type locateResponse struct {
	Command dashboard.Command `json:"command"`
}

type commandsResponse struct {
	Commands []dashboard.Command `json:"commands"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Get(r.PathValue("id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) handleFallback(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.fallback)
}

func (s *Server) handleThemes(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, themesResponse{
		Themes:       domain.MapThemes,
		DefaultTheme: domain.DefaultThemeID,
		View:         domain.DefaultMapView,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	w.Header().Set("Location", "/api/sessions/"+sess.ID())
	s.fetchAndRespond(w, r, sess, http.StatusCreated)
}

func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request, sess *dashboard.Session) {
	sharedobs.WriteJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleSetQuery(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	var q domain.QuerySpec
	if err := decodeBody(w, r, &q); err != nil {
		s.writeError(w, err)
		return
	}
	if err := sess.SetQuery(q); err != nil {
		s.writeError(w, err)
		return
	}
	s.fetchAndRespond(w, r, sess, http.StatusOK)
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	if err := sess.ApplyPreset(r.PathValue("preset")); err != nil {
		s.writeError(w, err)
		return
	}
	s.fetchAndRespond(w, r, sess, http.StatusOK)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	s.fetchAndRespond(w, r, sess, http.StatusOK)
}

// handleSetFilters replaces the display filter. Fields missing from the body
// keep their default values.
func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	f := domain.DefaultFilter()
	if err := decodeBody(w, r, &f); err != nil {
		s.writeError(w, err)
		return
	}
	if err := sess.SetFilter(f); err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleClearFilters(w http.ResponseWriter, _ *http.Request, sess *dashboard.Session) {
	sess.ClearFilters()
	sharedobs.WriteJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	var req themeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := sess.SetTheme(req.ID); err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	cmd, err := sess.Locate(r.PathValue("eqid"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusAccepted, locateResponse{Command: cmd})
}

func (s *Server) handleCommands(w http.ResponseWriter, _ *http.Request, sess *dashboard.Session) {
	sharedobs.WriteJSON(w, http.StatusOK, commandsResponse{Commands: sess.Commands()})
}

// fetchAndRespond runs a catalog fetch and replies with the resulting
// snapshot. A failed fetch replies 502; the snapshot then carries the
// generic user-facing message and no records.
func (s *Server) fetchAndRespond(w http.ResponseWriter, r *http.Request, sess *dashboard.Session, okStatus int) {
	status := okStatus
	if err := sess.Fetch(r.Context()); err != nil {
		status = http.StatusBadGateway
	}
	sharedobs.WriteJSON(w, status, snapshot(sess))
}

func snapshot(sess *dashboard.Session) sessionResponse {
	st, view := sess.View()
	theme, _ := domain.ThemeByID(st.ThemeID)

	resp := sessionResponse{
		ID:           sess.ID(),
		State:        st,
		Theme:        theme,
		Total:        view.Total,
		VisibleCount: len(view.Visible),
		Markers:      pipeline.Markers(view.Visible),
	}
	if view.Largest != nil {
		m := pipeline.Marker(*view.Largest)
		resp.Largest = &m
	}
	return resp
}

var errBadBody = errors.New("invalid request body")

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, dashboard.ErrSessionNotFound), errors.Is(err, dashboard.ErrEarthquakeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errBadBody),
		errors.Is(err, dashboard.ErrInvalidQuery),
		errors.Is(err, dashboard.ErrInvalidFilter),
		errors.Is(err, domain.ErrUnknownTheme),
		errors.Is(err, domain.ErrUnknownPreset):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrFetchFailed):
		status = http.StatusBadGateway
		msg = dashboard.FetchErrorMessage
	default:
		s.logger.Error("request failed", "error", err)
		msg = http.StatusText(status)
	}

	sharedobs.WriteJSON(w, status, errorResponse{Error: msg})
}
