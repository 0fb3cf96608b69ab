// Package selector implements the two-line searchable picker used for
// item and parameter fields: a closed option set, type-to-filter and
// keyboard navigation. The selected value is the option code.
package selector

import "strings"

// Option is one choice. Extra is searchable but never rendered.
type Option struct {
	ID          string
	Code        string
	Description string
	Extra       string
}

// View is the rendered form of an option: code on the first line,
// description on the second.
type View struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// HintEmpty is shown instead of an empty dropdown. The in-flight loading
// hint belongs to selector.js, since sources answer before a page renders.
const HintEmpty = "No options available."

// Filter keeps options whose code, description or extra text contains
// term, case-insensitively. A blank term keeps everything.
func Filter(opts []Option, term string) []Option {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return opts
	}
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		haystack := strings.ToLower(o.Code + " " + o.Description + " " + o.Extra)
		if strings.Contains(haystack, term) {
			out = append(out, o)
		}
	}
	return out
}

// Views strips options down to what is displayed.
func Views(opts []Option) []View {
	out := make([]View, len(opts))
	for i, o := range opts {
		out[i] = View{Code: o.Code, Description: o.Description}
	}
	return out
}

// Resolve finds the option carrying code.
func Resolve(opts []Option, code string) (Option, bool) {
	for _, o := range opts {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// State is the open/closed, filtered and highlighted state of one picker.
type State struct {
	all       []Option
	visible   []Option
	term      string
	highlight int
	selected  string
	open      bool
}

// NewState builds a picker over opts.
func NewState(opts []Option) *State {
	return &State{all: opts, visible: opts, highlight: -1}
}

// Disabled reports whether the control must not be interacted with.
func (s *State) Disabled() bool {
	return len(s.all) == 0
}

// Hint explains why the control is disabled.
func (s *State) Hint() string {
	if len(s.all) == 0 {
		return HintEmpty
	}
	return ""
}

// Search applies a filter term and opens the dropdown.
func (s *State) Search(term string) {
	if s.Disabled() {
		return
	}
	s.term = term
	s.visible = Filter(s.all, term)
	s.open = true
	s.highlight = -1
	if len(s.visible) > 0 {
		s.highlight = 0
	}
}

// Move shifts the highlight by delta, clamped to the visible options.
func (s *State) Move(delta int) {
	if s.Disabled() || len(s.visible) == 0 {
		return
	}
	s.open = true
	next := s.highlight + delta
	if next < 0 {
		next = 0
	}
	if next >= len(s.visible) {
		next = len(s.visible) - 1
	}
	s.highlight = next
}

// SetHighlight restores a highlight index, e.g. from a previous request.
func (s *State) SetHighlight(i int) {
	if i >= -1 && i < len(s.visible) {
		s.highlight = i
	}
}

// Press handles a key name as sent by browsers' KeyboardEvent.key.
func (s *State) Press(key string) {
	switch key {
	case "ArrowDown":
		s.Move(1)
	case "ArrowUp":
		s.Move(-1)
	case "Enter":
		s.Enter()
	case "Escape":
		s.Escape()
	}
}

// Enter selects the highlighted option and closes the dropdown.
func (s *State) Enter() {
	if s.Disabled() || s.highlight < 0 || s.highlight >= len(s.visible) {
		return
	}
	s.selected = s.visible[s.highlight].Code
	s.open = false
}

// Escape closes the dropdown without changing the selection.
func (s *State) Escape() {
	s.open = false
}

// Select sets the selection directly, e.g. when editing a record.
func (s *State) Select(code string) {
	s.selected = code
}

// Selected returns the selected code.
func (s *State) Selected() string { return s.selected }

// Open reports whether the dropdown is shown.
func (s *State) Open() bool { return s.open }

// Highlight returns the highlighted index into Visible, or -1.
func (s *State) Highlight() int { return s.highlight }

// Visible returns the options that pass the current filter.
func (s *State) Visible() []View { return Views(s.visible) }

// Term returns the current filter term.
func (s *State) Term() string { return s.term }

// SelectedOption resolves the selection back to the full option.
func (s *State) SelectedOption() (Option, bool) {
	return Resolve(s.all, s.selected)
}
