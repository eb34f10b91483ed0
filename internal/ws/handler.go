package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
	"github.com/DoyleJ11/hots-draft-tracker/internal/hub"
	"github.com/DoyleJ11/hots-draft-tracker/internal/tracker"
	"github.com/DoyleJ11/hots-draft-tracker/pkg/types"
)

const (
	writeTimeout   = 3 * time.Second
	commandTimeout = 5 * time.Second
)

var errUnknownType = errors.New("unknown type")

func Handler(h *hub.Hub, tr *tracker.Tracker, log *zap.Logger) http.HandlerFunc {
	log = log.Named("ws")
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan hub.Update, 16)
		clientID := uuid.NewString()
		log := log.With(zap.String("client", clientID))

		h.Inbox() <- hub.Join{ClientID: clientID, Outbox: out}
		defer func() { h.Inbox() <- hub.Leave{ClientID: clientID} }()
		log.Debug("client joined")

		// writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case u, ok := <-out:
					if !ok {
						// hub dropped us
						conn.Close(websocket.StatusTryAgainLater, "too slow")
						return
					}
					for _, msg := range serverMessages(u) {
						if err := write(writeCtx, conn, msg); err != nil {
							log.Debug("write failed", zap.Error(err))
							return
						}
					}
				}
			}
		}()

		// reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read failed", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = write(r.Context(), conn, types.ServerMessage{Type: types.MsgError, Error: "bad json"})
				continue
			}

			cmdCtx, cancel := context.WithTimeout(r.Context(), commandTimeout)
			err = dispatch(cmdCtx, tr, cm)
			cancel()
			if err != nil {
				_ = write(r.Context(), conn, types.ServerMessage{Type: types.MsgError, Request: cm.Type, Error: err.Error()})
				continue
			}
			_ = write(r.Context(), conn, types.ServerMessage{Type: types.MsgAck, Request: cm.Type})
		}
	}
}

func dispatch(ctx context.Context, tr *tracker.Tracker, m types.ClientMessage) error {
	switch m.Type {
	case types.MsgBanLearn:
		team, ok := draft.ParseColor(m.Team)
		if !ok {
			return fmt.Errorf("%w: %q", draft.ErrUnknownTeam, m.Team)
		}
		return tr.LearnBan(ctx, team, m.Index, m.Hero)
	case types.MsgHeroLearn:
		return tr.LearnHero(ctx, m.Raw, m.Hero)
	case types.MsgDraftClear:
		_, err := tr.Clear(ctx)
		return err
	default:
		return errUnknownType
	}
}

// serverMessages flattens one hub update into wire messages: the events in
// order, the status change if any, then the snapshot they lead to.
func serverMessages(u hub.Update) []types.ServerMessage {
	msgs := make([]types.ServerMessage, 0, len(u.Events)+2)
	for i := range u.Events {
		msgs = append(msgs, types.ServerMessage{Type: types.MsgEvent, Version: u.Version, Event: &u.Events[i]})
	}
	if u.Status != hub.StatusNone {
		msgs = append(msgs, types.ServerMessage{Type: types.MsgStatus, Version: u.Version, Status: string(u.Status)})
	}
	snap := u.Snapshot
	msgs = append(msgs, types.ServerMessage{Type: types.MsgSnapshot, Version: u.Version, Draft: &snap})
	return msgs
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}
