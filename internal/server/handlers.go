package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/forge/internal/color"
	"github.com/conneroisu/forge/internal/errors"
	"github.com/conneroisu/forge/internal/theme"
	"github.com/conneroisu/forge/internal/version"
)

const maxBodyBytes = 64 << 10

// ActionResponse answers every draft mutation.
type ActionResponse struct {
	Applied     bool       `json:"applied"`
	Suggestions []string   `json:"suggestions,omitempty"`
	State       ThemeState `json:"state"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type presetRequest struct {
	Category string `json:"category"`
	ID       string `json:"id"`
}

type colorRequest struct {
	Mode  string     `json:"mode"`
	Key   string     `json:"key"`
	Value string     `json:"value"`
	HSL   *color.HSL `json:"hsl,omitempty"`
}

type scaleRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type fontRequest struct {
	Family string `json:"family"`
}

type shadowsRequest struct {
	Enabled bool `json:"enabled"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type copyRequest struct {
	Format string `json:"format"`
}

func (s *Server) state() ThemeState {
	state := s.session.State()
	state.Copied = s.copier.Indicator().Copied()
	return state
}

func (s *Server) greeting() []byte {
	state := s.state()
	data, _ := json.Marshal(UpdateMessage{Type: MessageTheme, State: &state})
	return data
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	templ.Handler(themePage(s.state())).ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, map[string]interface{}{
		"status":  "healthy",
		"version": version.GetShortVersion(),
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, s.state())
}

// mutate runs one draft operation, answers with the new state and pushes it
// to open pages when something changed.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(d *theme.Draft) (bool, error)) {
	applied, state, err := s.session.Update(fn)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	state.Copied = s.copier.Indicator().Copied()
	if applied {
		s.hub.Broadcast(UpdateMessage{Type: MessageTheme, State: &state})
	}
	s.writeJSONResponse(w, ActionResponse{Applied: applied, State: state})
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	category, err := theme.ParseCategory(req.Category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	applied, state, err := s.session.Update(func(d *theme.Draft) (bool, error) {
		return d.ApplyPreset(category, req.ID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	state.Copied = s.copier.Indicator().Copied()

	resp := ActionResponse{Applied: applied, State: state}
	if applied {
		s.hub.Broadcast(UpdateMessage{Type: MessageTheme, State: &state})
	} else {
		resp.Suggestions = theme.SuggestPresets(category, req.ID)
	}
	s.writeJSONResponse(w, resp)
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	mode, err := theme.ParseMode(req.Mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	value := req.Value
	if req.HSL != nil {
		if theme.IsAlphaKey(theme.ColorKey(req.Key)) {
			s.writeError(w, r, errors.NewValidationError(errors.ErrCodeInvalidColor,
				req.Key+" is translucent and cannot be set from HSL").WithToken(req.Key))
			return
		}
		value = color.HSLToHex(req.HSL.H, req.HSL.S, req.HSL.L)
	}

	s.mutate(w, r, func(d *theme.Draft) (bool, error) {
		return d.UpdateColor(mode, theme.ColorKey(req.Key), value)
	})
}

func (s *Server) handleRadius(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.mutate(w, r, func(d *theme.Draft) (bool, error) {
		return d.UpdateRadius(theme.RadiusKey(req.Key), req.Value)
	})
}

func (s *Server) handleSpacing(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.mutate(w, r, func(d *theme.Draft) (bool, error) {
		return d.UpdateSpacing(theme.SpacingKey(req.Key), req.Value)
	})
}

func (s *Server) handleFont(w http.ResponseWriter, r *http.Request) {
	var req fontRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	family := strings.TrimSpace(req.Family)
	s.mutate(w, r, func(d *theme.Draft) (bool, error) {
		if family == "" {
			return false, nil
		}
		d.SetCustomFont(family)
		return true, nil
	})
}

func (s *Server) handleShadows(w http.ResponseWriter, r *http.Request) {
	var req shadowsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.mutate(w, r, func(d *theme.Draft) (bool, error) {
		d.SetShadows(req.Enabled)
		return true, nil
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(d *theme.Draft) (bool, error) {
		d.Reset()
		return true, nil
	})
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	var req copyRequest
	if r.ContentLength != 0 && !s.decodeJSON(w, r, &req) {
		return
	}
	format := s.session.State().Format
	if req.Format != "" {
		f, err := theme.ParseFormat(req.Format)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}

	snippet, err := s.session.Snippet(format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// The write outlives the request; its failure is only logged.
	s.copier.Copy(context.WithoutCancel(r.Context()), snippet)

	s.writeJSONResponse(w, map[string]interface{}{
		"format":  format,
		"snippet": snippet,
		"copied":  s.copier.Indicator().Copied(),
	})
}

func (s *Server) handleSnippet(w http.ResponseWriter, r *http.Request) {
	format := s.session.State().Format
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := theme.ParseFormat(q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}
	snippet, err := s.session.Snippet(format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSONResponse(w, map[string]interface{}{
		"format":  format,
		"snippet": snippet,
	})
}

func (s *Server) handleContrast(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, map[string]interface{}{
		"minimum": theme.MinContrast,
		"checks":  s.session.Contrast(),
	})
}

func (s *Server) handleViewMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	mode, err := theme.ParseMode(req.Mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	state := s.session.SetMode(mode)
	state.Copied = s.copier.Indicator().Copied()
	s.hub.Broadcast(UpdateMessage{Type: MessageTheme, State: &state})
	s.writeJSONResponse(w, state)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	categories := theme.Categories
	if q := r.URL.Query().Get("category"); q != "" {
		c, err := theme.ParseCategory(q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		categories = []theme.Category{c}
	}

	var all []theme.PresetInfo
	for _, c := range categories {
		infos, err := theme.ListPresets(c)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		all = append(all, infos...)
	}
	s.writeJSONResponse(w, all)
}

// handleColorHSL converts a hex value for the picker. Malformed input
// yields the neutral fallback rather than an error.
func (s *Server) handleColorHSL(w http.ResponseWriter, r *http.Request) {
	hex := r.URL.Query().Get("hex")
	s.writeJSONResponse(w, map[string]interface{}{
		"hex":   hex,
		"valid": color.IsHex6(hex),
		"hsl":   color.HexToHSL(hex),
	})
}

func (s *Server) handleColorHex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var hsl [3]int
	for i, name := range []string{"h", "s", "l"} {
		v, err := strconv.Atoi(q.Get(name))
		if err != nil {
			s.writeError(w, r, errors.NewValidationError(errors.ErrCodeInvalidColor,
				"query parameter "+name+" must be an integer"))
			return
		}
		hsl[i] = v
	}
	s.writeJSONResponse(w, map[string]interface{}{
		"hsl": color.HSL{H: hsl[0], S: hsl[1], L: hsl[2]},
		"hex": color.HSLToHex(hsl[0], hsl[1], hsl[2]),
	})
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeValidationFailed, "invalid JSON request: "+err.Error()))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.errorHandler.Handle(r.Context(), err)

	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: err.Error()}
	if fe, ok := errors.AsForgeError(err); ok {
		resp.Code = fe.Code
		if fe.Type == errors.ErrorTypeValidation {
			status = http.StatusBadRequest
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
