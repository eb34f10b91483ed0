package draft

type EventType string

const (
	EvtDraftStarted  EventType = "draft.start"
	EvtDraftCleared  EventType = "draft.clear"
	EvtMapChanged    EventType = "draft.map"
	EvtBanChanged    EventType = "draft.ban"
	EvtPlayerChanged EventType = "draft.player"
)

/*
	SetMap (new map)   -> EvtDraftCleared is NOT sent, the clear is implied by EvtDraftStarted -> EvtMapChanged
	Clear (explicit)   -> EvtDraftCleared
	Team.SetBan        -> EvtBanChanged (only when the stored hero differs)
	Team.SetBanImage   -> EvtBanChanged (only when the bytes differ)
	Team.LockBans      -> EvtBanChanged for every newly locked slot
	Player.Set*        -> EvtPlayerChanged
*/

type Event struct {
	Type   EventType       `json:"type"`
	Team   Color           `json:"team,omitempty"`
	Index  int             `json:"index"`
	Map    string          `json:"map,omitempty"`
	Ban    *BanSnapshot    `json:"ban,omitempty"`
	Player *PlayerSnapshot `json:"player,omitempty"`
	Draft  *Snapshot       `json:"draft,omitempty"`
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
