package types

import "github.com/DoyleJ11/hots-draft-tracker/internal/draft"

// Client -> Server
//
//	ban.learn:  team, index, hero   label the retained icon of an unknown ban
//	hero.learn: raw, hero           map a misread hero text to a hero
//	draft.clear                     start over
const (
	MsgBanLearn   = "ban.learn"
	MsgHeroLearn  = "hero.learn"
	MsgDraftClear = "draft.clear"
)

// Server -> Client
//
//	Snapshot: version, draft, status   on join and after every published batch
//	Event:    version, event           one per draft change
//	Status:   version, status          draft.active | draft.inactive
//	Ack:      request                  a client command was applied
//	Error:    error
const (
	MsgSnapshot = "Snapshot"
	MsgEvent    = "Event"
	MsgStatus   = "Status"
	MsgAck      = "Ack"
	MsgError    = "Error"
)

type ClientMessage struct {
	Type  string `json:"type"`
	Team  string `json:"team,omitempty"`
	Index int    `json:"index,omitempty"`
	Hero  string `json:"hero,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

type ServerMessage struct {
	Type    string          `json:"type"`
	Version int             `json:"version,omitempty"`
	Draft   *draft.Snapshot `json:"draft,omitempty"`
	Event   *draft.Event    `json:"event,omitempty"`
	Status  string          `json:"status,omitempty"`
	Request string          `json:"request,omitempty"`
	Error   string          `json:"error,omitempty"`
}
