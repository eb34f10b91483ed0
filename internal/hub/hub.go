package hub

import (
	"context"

	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
)

type Msg interface{ isHubMsg() }

type Join struct {
	ClientID string
	Outbox   chan Update // where this client wants to receive updates
}

type Leave struct{ ClientID string }

// Publish hands the hub the events of one detection cycle or manual command
// and the draft snapshot after them.
type Publish struct {
	Events   []draft.Event
	Snapshot draft.Snapshot
	// Status is set when the draft became active or inactive.
	Status Status
}

type GetState struct {
	Reply chan View
}

type Shutdown struct{}

func (Join) isHubMsg()     {}
func (Leave) isHubMsg()    {}
func (Publish) isHubMsg()  {}
func (GetState) isHubMsg() {}
func (Shutdown) isHubMsg() {}

type Status string

const (
	StatusNone     Status = ""
	StatusActive   Status = "draft.active"
	StatusInactive Status = "draft.inactive"
)

// Update is what a subscriber receives. The first update after Join carries
// only the latest snapshot.
type Update struct {
	Version  int
	Events   []draft.Event
	Snapshot draft.Snapshot
	Status   Status
}

type View struct {
	Version    int
	NumClients int
	Snapshot   draft.Snapshot
	Status     Status
}

type Hub struct {
	inbox    chan Msg
	version  int
	snapshot draft.Snapshot
	status   Status
	clients  map[string]chan Update
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan Msg, 64),
		snapshot: draft.New().Snapshot(),
		status:   StatusInactive,
		clients:  make(map[string]chan Update),
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

// Inbox is used by the tracker and the ws layer to talk to the hub.
func (h *Hub) Inbox() chan<- Msg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Join:
				// register client + send current snapshot immediately
				h.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Update{Version: h.version, Snapshot: h.snapshot, Status: h.status}

			case Leave:
				delete(h.clients, msg.ClientID)

			case Publish:
				if len(msg.Events) == 0 && msg.Status == StatusNone {
					break
				}
				h.version++
				h.snapshot = msg.Snapshot
				if msg.Status != StatusNone {
					h.status = msg.Status
				}
				h.broadcast(Update{Version: h.version, Events: msg.Events, Snapshot: msg.Snapshot, Status: msg.Status})

			case GetState:
				msg.Reply <- View{
					Version:    h.version,
					NumClients: len(h.clients),
					Snapshot:   h.snapshot,
					Status:     h.status,
				}

			case Shutdown:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for id, ch := range h.clients {
		close(ch) // no more updates
		delete(h.clients, id)
	}
	h.cancel()
}

func (h *Hub) broadcast(u Update) {
	for id, ch := range h.clients {
		select {
		case ch <- u:
		default:
			// client is slow/full - drop them
			close(ch)
			delete(h.clients, id)
		}
	}
}
