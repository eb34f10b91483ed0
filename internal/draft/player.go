package draft

import "slices"

type HeroPick struct {
	Hero  string `json:"hero"`
	Count int    `json:"count"`
}

// RecentPicks maps a BattleTag to that account's most played heroes,
// ordered by pick count.
type RecentPicks map[string][]HeroPick

type Player struct {
	index            int
	team             Color
	name             string
	nameFinal        bool
	character        string
	characterUnknown bool
	locked           bool
	recentPicks      RecentPicks
}

type PlayerSnapshot struct {
	Index            int         `json:"index"`
	Team             Color       `json:"team"`
	Name             string      `json:"name"`
	NameFinal        bool        `json:"name_final"`
	Character        string      `json:"character"`
	CharacterUnknown bool        `json:"character_unknown"`
	Locked           bool        `json:"locked"`
	RecentPicks      RecentPicks `json:"recent_picks,omitempty"`
}

func NewPlayer(index int, team Color) *Player {
	return &Player{index: index, team: team}
}

func (p *Player) Index() int               { return p.index }
func (p *Player) Team() Color              { return p.team }
func (p *Player) Name() string             { return p.name }
func (p *Player) NameFinal() bool          { return p.nameFinal }
func (p *Player) Character() string        { return p.character }
func (p *Player) CharacterUnknown() bool   { return p.characterUnknown }
func (p *Player) Locked() bool             { return p.locked }
func (p *Player) RecentPicks() RecentPicks { return p.recentPicks }

// SetName stores the player name. Once a name was stored as final it never
// changes again.
func (p *Player) SetName(name string, final bool) ([]Event, error) {
	if p.nameFinal {
		return nil, ErrNameFinal
	}
	if p.name == name && p.nameFinal == final {
		return nil, nil
	}
	p.name = name
	p.nameFinal = final
	return p.changed(), nil
}

// SetPick applies one hero sample. Character, unknown flag and lock flag come
// from the same read so they are updated together.
func (p *Player) SetPick(character string, unknown, locked bool) ([]Event, error) {
	if p.locked {
		return nil, ErrPlayerLocked
	}
	if p.character == character && p.characterUnknown == unknown && p.locked == locked {
		return nil, nil
	}
	p.character = character
	p.characterUnknown = unknown
	p.locked = locked
	return p.changed(), nil
}

func (p *Player) SetRecentPicks(picks RecentPicks) []Event {
	if recentPicksEqual(p.recentPicks, picks) {
		return nil
	}
	p.recentPicks = picks
	return p.changed()
}

func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Index:            p.index,
		Team:             p.team,
		Name:             p.name,
		NameFinal:        p.nameFinal,
		Character:        p.character,
		CharacterUnknown: p.characterUnknown,
		Locked:           p.locked,
		RecentPicks:      p.recentPicks,
	}
}

func (p *Player) changed() []Event {
	snap := p.Snapshot()
	return []Event{{Type: EvtPlayerChanged, Team: p.team, Index: p.index, Player: &snap}}
}

func recentPicksEqual(a, b RecentPicks) bool {
	if len(a) != len(b) {
		return false
	}
	for tag, picks := range a {
		other, ok := b[tag]
		if !ok || !slices.Equal(picks, other) {
			return false
		}
	}
	return true
}
