package screen

import (
	"github.com/backyonatan-alt/launchboard/internal/model"
)

// Phase is the lifecycle of a screen's launch list.
type Phase string

const (
	PhasePending Phase = "pending"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// NoLocationLabel is the time label shown before any country is selected.
const NoLocationLabel = "No location selected"

// State is the complete view state of one screen. Transitions are pure:
// each returns a new State and leaves the receiver untouched.
type State struct {
	DropdownOpen bool
	TimeLabel    string
	Launches     []model.LaunchRecord
	Phase        Phase
	FetchError   string
}

// Initial returns the state of a freshly mounted screen.
func Initial() State {
	return State{
		TimeLabel: NoLocationLabel,
		Phase:     PhasePending,
	}
}

// ToggleDropdown handles a press of the location button.
func (s State) ToggleDropdown() State {
	s.DropdownOpen = !s.DropdownOpen
	return s
}

// DismissDropdown handles a dismissal outside the menu.
func (s State) DismissDropdown() State {
	s.DropdownOpen = false
	return s
}

// SelectCountry sets the time label and closes the dropdown in one step.
func (s State) SelectCountry(label string) State {
	s.TimeLabel = label
	s.DropdownOpen = false
	return s
}

// LaunchesLoaded moves a pending list to loaded. The list loads at most once.
func (s State) LaunchesLoaded(records []model.LaunchRecord) State {
	if s.Phase != PhasePending {
		return s
	}
	s.Launches = append([]model.LaunchRecord(nil), records...)
	s.Phase = PhaseLoaded
	return s
}

// LaunchesFailed records a fetch failure. The list stays empty.
func (s State) LaunchesFailed(err error) State {
	if s.Phase != PhasePending {
		return s
	}
	s.Launches = nil
	s.Phase = PhaseFailed
	if err != nil {
		s.FetchError = err.Error()
	}
	return s
}

// Empty reports whether no launch cards would be rendered.
func (s State) Empty() bool {
	return len(s.Launches) == 0
}
