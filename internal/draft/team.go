package draft

import "bytes"

const (
	BanSlots    = 3
	PlayerSlots = 5
)

// UnknownHero marks a ban slot whose icon could not be classified.
const UnknownHero = "???"

type Team struct {
	color      Color
	bans       [BanSlots]string
	bansLocked int
	banImages  [BanSlots][]byte
	players    [PlayerSlots]*Player
}

type BanSnapshot struct {
	Hero   string `json:"hero"`
	Locked bool   `json:"locked"`
	Image  []byte `json:"image,omitempty"`
}

type TeamSnapshot struct {
	Color      Color                       `json:"color"`
	Bans       [BanSlots]BanSnapshot       `json:"bans"`
	BansLocked int                         `json:"bans_locked"`
	Players    [PlayerSlots]PlayerSnapshot `json:"players"`
}

func NewTeam(color Color) *Team {
	t := &Team{color: color}
	for i := range t.players {
		t.players[i] = NewPlayer(i, color)
	}
	return t
}

func (t *Team) Color() Color    { return t.color }
func (t *Team) BansLocked() int { return t.bansLocked }

func (t *Team) Ban(index int) string {
	if index < 0 || index >= BanSlots {
		return ""
	}
	return t.bans[index]
}

func (t *Team) BanImage(index int) []byte {
	if index < 0 || index >= BanSlots {
		return nil
	}
	return t.banImages[index]
}

func (t *Team) Player(index int) (*Player, error) {
	if index < 0 || index >= PlayerSlots {
		return nil, ErrSlotOutOfRange
	}
	return t.players[index], nil
}

func (t *Team) Players() [PlayerSlots]*Player { return t.players }

// SetBan stores the hero detected for a ban slot. Slots below the lock
// watermark are immutable.
func (t *Team) SetBan(index int, hero string) ([]Event, error) {
	if index < 0 || index >= BanSlots {
		return nil, ErrSlotOutOfRange
	}
	if index < t.bansLocked {
		return nil, ErrBanLocked
	}
	if t.bans[index] == hero {
		return nil, nil
	}
	t.bans[index] = hero
	if hero != UnknownHero {
		t.banImages[index] = nil
	}
	return []Event{t.banEvent(index)}, nil
}

// SetBanImage retains the raw icon of an unclassified ban for manual labelling.
func (t *Team) SetBanImage(index int, data []byte) ([]Event, error) {
	if index < 0 || index >= BanSlots {
		return nil, ErrSlotOutOfRange
	}
	if index < t.bansLocked {
		return nil, ErrBanLocked
	}
	if bytes.Equal(t.banImages[index], data) {
		return nil, nil
	}
	t.banImages[index] = data
	return []Event{t.banEvent(index)}, nil
}

// LockBans raises the lock watermark. Lower values are ignored.
func (t *Team) LockBans(n int) []Event {
	n = min(n, BanSlots)
	if n <= t.bansLocked {
		return nil
	}
	before := t.bansLocked
	t.bansLocked = n
	events := make([]Event, 0, n-before)
	for i := before; i < n; i++ {
		events = append(events, t.banEvent(i))
	}
	return events
}

func (t *Team) Snapshot() TeamSnapshot {
	s := TeamSnapshot{Color: t.color, BansLocked: t.bansLocked}
	for i := range t.bans {
		s.Bans[i] = t.banSnapshot(i)
	}
	for i, p := range t.players {
		s.Players[i] = p.Snapshot()
	}
	return s
}

func (t *Team) banSnapshot(index int) BanSnapshot {
	return BanSnapshot{
		Hero:   t.bans[index],
		Locked: index < t.bansLocked,
		Image:  t.banImages[index],
	}
}

func (t *Team) banEvent(index int) Event {
	ban := t.banSnapshot(index)
	return Event{Type: EvtBanChanged, Team: t.color, Index: index, Ban: &ban}
}
