// Package fixture is the match registry: it creates fixtures, lists them for
// viewers and drives the upcoming → live → finished lifecycle.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vpsports/scorekeeper/internal/cricket"
)

// --------------------------------------------------------------------------
// Input
// --------------------------------------------------------------------------

// FlexString accepts a JSON string or number. Scorer clients send overs both
// ways.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = FlexString(n.String())
	return nil
}

// NewFixture is the create-fixture request.
type NewFixture struct {
	TeamA        string   `json:"team_a_name"`
	TeamB        string   `json:"team_b_name"`
	TeamAPlayers []string `json:"team_a_players"`
	TeamBPlayers []string `json:"team_b_players"`
	// Overs is the legacy field name; OversPerInnings is accepted as well.
	Overs           FlexString `json:"overs"`
	OversPerInnings FlexString `json:"overs_per_innings"`
	StartTime       string     `json:"start_time"`
	Venue           string     `json:"venue"`
	Umpires         []string   `json:"umpires"`
}

// Fixture validates the request and converts it into a fixture with status
// upcoming.
func (n NewFixture) Fixture() (cricket.Fixture, error) {
	teamA := strings.TrimSpace(n.TeamA)
	teamB := strings.TrimSpace(n.TeamB)
	venue := strings.TrimSpace(n.Venue)
	overs := strings.TrimSpace(string(n.Overs))
	if overs == "" {
		overs = strings.TrimSpace(string(n.OversPerInnings))
	}
	start := strings.TrimSpace(n.StartTime)

	var missing []string
	for _, field := range []struct{ name, value string }{
		{"team_a_name", teamA},
		{"team_b_name", teamB},
		{"overs", overs},
		{"start_time", start},
		{"venue", venue},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return cricket.Fixture{}, cricket.ValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}

	perInnings, err := strconv.Atoi(overs)
	if err != nil || perInnings <= 0 {
		return cricket.Fixture{}, cricket.ValidationError("overs must be a positive integer, got %q", overs)
	}

	startTime, err := ParseStartTime(start)
	if err != nil {
		return cricket.Fixture{}, err
	}

	return cricket.Fixture{
		TeamA:           teamA,
		TeamB:           teamB,
		TeamAPlayers:    orEmpty(n.TeamAPlayers),
		TeamBPlayers:    orEmpty(n.TeamBPlayers),
		OversPerInnings: perInnings,
		StartTime:       startTime,
		Venue:           venue,
		Umpires:         orEmpty(n.Umpires),
		Status:          cricket.StatusUpcoming,
	}, nil
}

// startLayouts are tried in order. Layouts without a zone parse as UTC.
var startLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseStartTime accepts ISO-8601 local date-times with a space or T
// separator, optional fractional seconds and an optional Z or offset suffix.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i == len("2006-01-02") {
		s = s[:i] + "T" + s[i+1:]
	}
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, cricket.ValidationError("start_time %q is not an ISO-8601 date-time", s)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// --------------------------------------------------------------------------
// Output
// --------------------------------------------------------------------------

// Display formats for list entries.
const (
	DateFormat = "Jan 02"
	TimeFormat = "03:04 PM"
)

// Summary is one entry of a fixture listing.
type Summary struct {
	ID         int64  `json:"id"`
	TeamA      string `json:"teamA"`
	TeamB      string `json:"teamB"`
	Venue      string `json:"venue"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	TeamAScore string `json:"teamAScore"`
	TeamAOvers string `json:"teamAOvers"`
	TeamBScore string `json:"teamBScore"`
	TeamBOvers string `json:"teamBOvers"`
	Summary    string `json:"summary"`
	Result     string `json:"result"`
}
