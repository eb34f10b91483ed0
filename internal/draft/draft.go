package draft

import "errors"

var ErrBanLocked = errors.New("ban slot locked")
var ErrPlayerLocked = errors.New("player pick locked")
var ErrNameFinal = errors.New("player name final")
var ErrSlotOutOfRange = errors.New("slot out of range")
var ErrUnknownTeam = errors.New("unknown team")

type Color string

const (
	TeamBlue Color = "blue"
	TeamRed  Color = "red"
)

var Colors = [2]Color{TeamBlue, TeamRed}

func (c Color) Other() Color {
	if c == TeamBlue {
		return TeamRed
	}
	return TeamBlue
}

func ParseColor(s string) (Color, bool) {
	switch s {
	case "blue":
		return TeamBlue, true
	case "red":
		return TeamRed, true
	default:
		return "", false
	}
}

// Indicator is the turn read from the pick timer.
type Indicator string

const (
	IndicatorNone Indicator = ""
	IndicatorBlue Indicator = "blue"
	IndicatorRed  Indicator = "red"
	IndicatorBan  Indicator = "ban"
)

// Status of a team relative to the current turn.
type Status string

const (
	StatusNone     Status = ""
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Draft struct {
	mapName   string
	indicator Indicator
	blue      *Team
	red       *Team
}

type Snapshot struct {
	Map       string       `json:"map"`
	Indicator Indicator    `json:"team_active"`
	Blue      TeamSnapshot `json:"blue"`
	Red       TeamSnapshot `json:"red"`
}

func New() *Draft {
	d := &Draft{}
	d.reset()
	return d
}

func (d *Draft) reset() {
	d.mapName = ""
	d.indicator = IndicatorNone
	d.blue = NewTeam(TeamBlue)
	d.red = NewTeam(TeamRed)
}

// Clear drops both teams and the tracked map. Previously handed out Team and
// Player pointers keep their old state and are no longer part of the draft.
func (d *Draft) Clear() []Event {
	d.reset()
	snap := d.Snapshot()
	return []Event{{Type: EvtDraftCleared, Draft: &snap}}
}

// SetMap tracks a newly detected map. A different map starts a fresh draft.
func (d *Draft) SetMap(name string) []Event {
	if name == "" || name == d.mapName {
		return nil
	}
	d.reset()
	d.mapName = name
	snap := d.Snapshot()
	return []Event{
		{Type: EvtDraftStarted, Draft: &snap},
		{Type: EvtMapChanged, Map: name},
	}
}

func (d *Draft) Map() string { return d.mapName }

func (d *Draft) Indicator() Indicator { return d.indicator }

func (d *Draft) SetIndicator(ind Indicator) { d.indicator = ind }

func (d *Draft) Team(color Color) (*Team, error) {
	switch color {
	case TeamBlue:
		return d.blue, nil
	case TeamRed:
		return d.red, nil
	default:
		return nil, ErrUnknownTeam
	}
}

func (d *Draft) Teams() [2]*Team { return [2]*Team{d.blue, d.red} }

// TeamStatus reports whether the given team is picking, waiting on the other
// team, or neither (ban phase or no readable turn).
func (d *Draft) TeamStatus(color Color) Status {
	switch {
	case d.indicator == IndicatorBlue || d.indicator == IndicatorRed:
		if Color(d.indicator) == color {
			return StatusActive
		}
		return StatusInactive
	default:
		return StatusNone
	}
}

func (d *Draft) Snapshot() Snapshot {
	return Snapshot{
		Map:       d.mapName,
		Indicator: d.indicator,
		Blue:      d.blue.Snapshot(),
		Red:       d.red.Snapshot(),
	}
}
