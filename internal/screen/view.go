package screen

import (
	"github.com/backyonatan-alt/launchboard/internal/country"
	"github.com/backyonatan-alt/launchboard/internal/model"
)

// View is the rendered form of a screen.
type View struct {
	ID           string            `json:"id"`
	DropdownOpen bool              `json:"dropdown_open"`
	TimeLabel    string            `json:"time_label"`
	Countries    []country.Country `json:"countries,omitempty"`
	Phase        Phase             `json:"phase"`
	Cards        []model.Card      `json:"cards"`
	Error        string            `json:"error,omitempty"`
}

// Render builds the view of s. Dropdown items are only listed while the
// dropdown is open.
func Render(id string, s State, countries []country.Country) View {
	v := View{
		ID:           id,
		DropdownOpen: s.DropdownOpen,
		TimeLabel:    s.TimeLabel,
		Phase:        s.Phase,
		Cards:        make([]model.Card, 0, len(s.Launches)),
		Error:        s.FetchError,
	}
	if s.DropdownOpen {
		v.Countries = countries
	}
	for _, r := range s.Launches {
		v.Cards = append(v.Cards, model.NewCard(r))
	}
	return v
}
