package server

import (
	"sync"

	"github.com/conneroisu/forge/internal/color"
	"github.com/conneroisu/forge/internal/theme"
)

// Session is the theme creator state shared by every request: the draft and
// the view state around it. Each mutation runs under one lock.
type Session struct {
	mu     sync.RWMutex
	draft  *theme.Draft
	mode   theme.Mode
	format theme.Format
}

// NewSession starts from d, or from the defaults when d is nil.
func NewSession(d *theme.Draft, format theme.Format) *Session {
	if d == nil {
		d = theme.NewDraft()
	}
	if format == "" {
		format = theme.FormatJSX
	}
	return &Session{draft: d, mode: theme.ModeLight, format: format}
}

// PickerState is the HSL picker of one color token.
type PickerState struct {
	Key theme.ColorKey `json:"key"`
	color.Picker
}

// ThemeState is what the page renders: the draft, the generated snippet and
// the pickers of the previewed mode.
type ThemeState struct {
	Draft   *theme.Draft  `json:"draft"`
	Mode    theme.Mode    `json:"mode"`
	Format  theme.Format  `json:"format"`
	Changes theme.Changes `json:"changes"`
	Count   int           `json:"changeCount"`
	Snippet string        `json:"snippet"`
	Pickers []PickerState `json:"pickers"`
	Copied  bool          `json:"copied"`
}

// State snapshots the session.
func (s *Session) State() ThemeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() ThemeState {
	d := s.draft.Clone()
	snippet, err := theme.Render(d, s.format)
	if err != nil {
		snippet = theme.Generate(d)
	}

	set, _ := d.Colors(s.mode)
	pickers := make([]PickerState, 0, set.Len())
	for _, key := range set.Keys() {
		pickers = append(pickers, PickerState{Key: key, Picker: theme.PickerFor(key, set.Value(key))})
	}

	changes := theme.Diff(d)
	return ThemeState{
		Draft:   d,
		Mode:    s.mode,
		Format:  s.format,
		Changes: changes,
		Count:   changes.Count(),
		Snippet: snippet,
		Pickers: pickers,
	}
}

// Update runs fn against the draft and returns the resulting state.
func (s *Session) Update(fn func(d *theme.Draft) (bool, error)) (bool, ThemeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := fn(s.draft)
	return applied, s.stateLocked(), err
}

// Replace swaps the whole draft, as a reload from disk does.
func (s *Session) Replace(d *theme.Draft) ThemeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
	return s.stateLocked()
}

// SetMode switches the previewed color mode.
func (s *Session) SetMode(mode theme.Mode) ThemeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	return s.stateLocked()
}

// SetFormat switches the snippet format.
func (s *Session) SetFormat(format theme.Format) ThemeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.format = format
	return s.stateLocked()
}

// Snippet renders the draft in format without changing the session format.
func (s *Session) Snippet(format theme.Format) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return theme.Render(s.draft, format)
}

// Contrast reports the contrast checks of the draft.
func (s *Session) Contrast() []theme.ContrastCheck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return theme.Contrast(s.draft)
}
