package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// LaunchRecord is a single launch as delivered by the launch feed.
type LaunchRecord struct {
	MissionName   string  `json:"mission_name"`
	LaunchYear    int     `json:"launch_year"`
	Details       *string `json:"details"`
	LaunchSuccess *bool   `json:"launch_success"`
}

// UnmarshalJSON accepts launch_year as either a number or a numeric string.
func (r *LaunchRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		MissionName   string          `json:"mission_name"`
		LaunchYear    json.RawMessage `json:"launch_year"`
		Details       *string         `json:"details"`
		LaunchSuccess *bool           `json:"launch_success"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	year, err := parseYear(raw.LaunchYear)
	if err != nil {
		return fmt.Errorf("launch %q: %w", raw.MissionName, err)
	}

	*r = LaunchRecord{
		MissionName:   raw.MissionName,
		LaunchYear:    year,
		Details:       raw.Details,
		LaunchSuccess: raw.LaunchSuccess,
	}
	return nil
}

func parseYear(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("launch_year: %w", err)
		}
		year, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("launch_year %q is not a number", s)
		}
		return year, nil
	}
	var year int
	if err := json.Unmarshal(raw, &year); err != nil {
		return 0, fmt.Errorf("launch_year: %w", err)
	}
	return year, nil
}

// Outcome labels for the tri-state launch_success flag.
const (
	OutcomeUnknown = "No data"
	OutcomeSuccess = "SUCCESS"
	OutcomeFail    = "FAIL"
)

// Card is the display form of a LaunchRecord.
type Card struct {
	MissionName string `json:"mission_name"`
	LaunchYear  int    `json:"launch_year"`
	Details     string `json:"details"`
	Outcome     string `json:"outcome"`
}

// NewCard renders r for display. Missing details become an empty string.
func NewCard(r LaunchRecord) Card {
	details := ""
	if r.Details != nil {
		details = *r.Details
	}
	return Card{
		MissionName: r.MissionName,
		LaunchYear:  r.LaunchYear,
		Details:     details,
		Outcome:     Outcome(r.LaunchSuccess),
	}
}

// Outcome maps the tri-state success flag to its label.
func Outcome(success *bool) string {
	switch {
	case success == nil:
		return OutcomeUnknown
	case *success:
		return OutcomeSuccess
	default:
		return OutcomeFail
	}
}
