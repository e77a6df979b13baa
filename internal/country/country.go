package country

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host's zoneinfo
)

// ErrUnknownCountry is returned when a name does not match any registered country.
var ErrUnknownCountry = errors.New("unknown country")

// Country is one selectable entry of the location dropdown.
type Country struct {
	Name     string         `json:"name"`
	ZoneID   string         `json:"zone"`
	Image    string         `json:"image"`
	Flag     string         `json:"flag"`
	Location *time.Location `json:"-"`
}

// Entry is the static definition a Country is built from.
type Entry struct {
	Name   string
	ZoneID string
	Image  string
}

var defaultEntries = []Entry{
	{Name: "Korea", ZoneID: "Asia/Seoul", Image: "kr.png"},
	{Name: "Japan", ZoneID: "Asia/Tokyo", Image: "jp.png"},
	{Name: "France", ZoneID: "Europe/Paris", Image: "fr.png"},
	{Name: "Mexico", ZoneID: "America/Mexico_City", Image: "mx.png"},
	{Name: "Indonesia", ZoneID: "Asia/Jakarta", Image: "id.png"},
	{Name: "Egypt", ZoneID: "Africa/Cairo", Image: "eg.png"},
}

// Registry is an ordered, immutable set of countries.
type Registry struct {
	countries []Country
	byName    map[string]int
}

// NewRegistry resolves every entry's zone and rejects the whole set if any
// entry is invalid.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		countries: make([]Country, 0, len(entries)),
		byName:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("country entry with zone %q has no name", e.ZoneID)
		}
		if e.Image == "" {
			return nil, fmt.Errorf("country %s: missing image", e.Name)
		}
		key := strings.ToLower(e.Name)
		if _, dup := r.byName[key]; dup {
			return nil, fmt.Errorf("country %s: duplicate name", e.Name)
		}
		if e.ZoneID == "" || e.ZoneID == "Local" {
			return nil, fmt.Errorf("country %s: zone must be an IANA identifier", e.Name)
		}
		loc, err := time.LoadLocation(e.ZoneID)
		if err != nil {
			return nil, fmt.Errorf("country %s: invalid zone %q: %w", e.Name, e.ZoneID, err)
		}
		r.byName[key] = len(r.countries)
		r.countries = append(r.countries, Country{
			Name:     e.Name,
			ZoneID:   e.ZoneID,
			Image:    e.Image,
			Flag:     flagFor(e.Image),
			Location: loc,
		})
	}
	return r, nil
}

var defaultRegistry = mustDefault()

func mustDefault() *Registry {
	r, err := NewRegistry(defaultEntries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the registry of the six built-in countries.
func Default() *Registry {
	return defaultRegistry
}

// List returns the built-in countries in display order.
func List() []Country {
	return defaultRegistry.List()
}

// List returns a copy of the countries in display order.
func (r *Registry) List() []Country {
	out := make([]Country, len(r.countries))
	copy(out, r.countries)
	return out
}

// Len returns the number of registered countries.
func (r *Registry) Len() int {
	return len(r.countries)
}

// Lookup finds a country by name, ignoring case.
func (r *Registry) Lookup(name string) (Country, error) {
	i, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Country{}, fmt.Errorf("%w: %q", ErrUnknownCountry, name)
	}
	return r.countries[i], nil
}

// flagFor derives the flag emoji from an image named after the ISO 3166
// alpha-2 code, e.g. "kr.png".
func flagFor(image string) string {
	code := strings.ToUpper(strings.TrimSuffix(path.Base(image), path.Ext(image)))
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return "🌍"
	}
	const regionalIndicatorA = 0x1F1E6
	return string([]rune{
		rune(regionalIndicatorA + int(code[0]-'A')),
		rune(regionalIndicatorA + int(code[1]-'A')),
	})
}
