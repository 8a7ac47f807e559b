package app

// State holds the session state that is not owned by the viewport
type State struct {
	// Input
	Name string
	Root string

	// Data
	DiffAdded   int
	DiffRemoved int

	// UI
	ActiveModal string // empty if no modal

	// Status message, cleared on the next input event
	StatusMessage string
	StatusIsError bool
}

// NewState creates a new state for an input called name
func NewState(name, root string) *State {
	if root == "" {
		root = "."
	}
	return &State{Name: name, Root: root}
}

// ToggleModal toggles a modal on/off
func (s *State) ToggleModal(name string) {
	if s.ActiveModal == name {
		s.ActiveModal = ""
	} else {
		s.ActiveModal = name
	}
}

// CloseModal closes any open modal
func (s *State) CloseModal() {
	s.ActiveModal = ""
}

// SetStatus shows an informational message
func (s *State) SetStatus(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = false
}

// SetError shows an error message
func (s *State) SetError(err error) {
	s.StatusMessage = err.Error()
	s.StatusIsError = true
}

// ClearStatus removes the status message
func (s *State) ClearStatus() {
	s.StatusMessage = ""
	s.StatusIsError = false
}
