// Package tracker owns the draft detector. It runs detection cycles on a
// ticker and applies manual commands between cycles, so the detector and its
// draft are only ever touched from one goroutine.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/hots-draft-tracker/internal/detector"
	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
	"github.com/DoyleJ11/hots-draft-tracker/internal/gamedata"
	"github.com/DoyleJ11/hots-draft-tracker/internal/hub"
)

var ErrNoBanImage = errors.New("no retained image for ban slot")

type Msg interface{ isTrackerMsg() }

// Tick runs one detection cycle right away.
type Tick struct {
	Reply chan detector.Outcome // optional
}

type Clear struct {
	Reply chan draft.Snapshot // optional
}

// LearnBan labels the retained icon of an unknown ban slot.
type LearnBan struct {
	Team  draft.Color
	Index int
	Hero  string
	Reply chan error
}

// LearnHero maps a misread hero text to a hero.
type LearnHero struct {
	Raw   string
	Hero  string
	Reply chan error
}

type GetState struct {
	Reply chan View
}

type Shutdown struct{}

func (Tick) isTrackerMsg()      {}
func (Clear) isTrackerMsg()     {}
func (LearnBan) isTrackerMsg()  {}
func (LearnHero) isTrackerMsg() {}
func (GetState) isTrackerMsg()  {}
func (Shutdown) isTrackerMsg()  {}

type View struct {
	Active   bool
	Cycles   int
	Snapshot draft.Snapshot
}

type Detector interface {
	RunCycle(ctx context.Context) (detector.Outcome, []draft.Event, error)
	Clear() []draft.Event
	Draft() *draft.Draft
}

type BanLearner interface {
	Learn(heroID string, data []byte) error
}

type HeroLearner interface {
	HeroID(name string) (string, bool)
	AddHeroCorrection(raw, heroID string) error
}

type Deps struct {
	Detector Detector
	Bans     BanLearner
	Heroes   HeroLearner
	Hub      *hub.Hub
	Log      *zap.Logger
	// Interval between cycles; zero disables the ticker.
	Interval time.Duration
}

type Tracker struct {
	inbox    chan Msg
	detector Detector
	bans     BanLearner
	heroes   HeroLearner
	hub      *hub.Hub
	log      *zap.Logger
	interval time.Duration
	active   bool
	cycles   int
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(parent context.Context, deps Deps) *Tracker {
	ctx, cancel := context.WithCancel(parent)
	t := &Tracker{
		inbox:    make(chan Msg, 16),
		detector: deps.Detector,
		bans:     deps.Bans,
		heroes:   deps.Heroes,
		hub:      deps.Hub,
		log:      deps.Log.Named("tracker"),
		interval: deps.Interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go t.loop()
	return t
}

// Inbox is used by the http and ws layers to send commands.
func (t *Tracker) Inbox() chan<- Msg { return t.inbox }

// Done is closed once the loop has exited.
func (t *Tracker) Done() <-chan struct{} { return t.done }

func (t *Tracker) loop() {
	defer close(t.done)

	var tick <-chan time.Time
	if t.interval > 0 {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-t.ctx.Done():
			return

		case <-tick:
			t.cycle()

		case m := <-t.inbox:
			switch msg := m.(type) {
			case Tick:
				outcome := t.cycle()
				if msg.Reply != nil {
					msg.Reply <- outcome
				}

			case Clear:
				t.log.Info("draft cleared")
				t.publish(t.detector.Clear(), hub.StatusNone)
				if msg.Reply != nil {
					msg.Reply <- t.detector.Draft().Snapshot()
				}

			case LearnBan:
				msg.Reply <- t.learnBan(msg)

			case LearnHero:
				msg.Reply <- t.learnHero(msg)

			case GetState:
				msg.Reply <- View{Active: t.active, Cycles: t.cycles, Snapshot: t.detector.Draft().Snapshot()}

			case Shutdown:
				t.cancel()
				return
			}
		}
	}
}

func (t *Tracker) cycle() detector.Outcome {
	t.cycles++
	outcome, events, err := t.detector.RunCycle(t.ctx)
	if err != nil {
		t.log.Warn("detection cycle failed", zap.Error(err))
	}

	status := hub.StatusNone
	if active := outcome == detector.DraftUpdated; active != t.active && err == nil {
		t.active = active
		status = hub.StatusInactive
		if active {
			status = hub.StatusActive
		}
		t.log.Info("draft status changed", zap.String("status", string(status)), zap.String("map", t.detector.Draft().Map()))
	}
	t.publish(events, status)
	return outcome
}

func (t *Tracker) publish(events []draft.Event, status hub.Status) {
	if t.hub == nil || (len(events) == 0 && status == hub.StatusNone) {
		return
	}
	msg := hub.Publish{Events: events, Snapshot: t.detector.Draft().Snapshot(), Status: status}
	select {
	case t.hub.Inbox() <- msg:
	case <-t.ctx.Done():
	}
}

func (t *Tracker) learnBan(msg LearnBan) error {
	team, err := t.detector.Draft().Team(msg.Team)
	if err != nil {
		return err
	}
	if msg.Index < 0 || msg.Index >= draft.BanSlots {
		return draft.ErrSlotOutOfRange
	}
	data := team.BanImage(msg.Index)
	if len(data) == 0 {
		return ErrNoBanImage
	}
	heroID, ok := t.heroes.HeroID(msg.Hero)
	if !ok {
		return fmt.Errorf("%w: %s", gamedata.ErrUnknownHero, msg.Hero)
	}

	if err := t.bans.Learn(heroID, data); err != nil {
		return fmt.Errorf("learn ban icon: %w", err)
	}
	return nil
}

func (t *Tracker) learnHero(msg LearnHero) error {
	heroID, ok := t.heroes.HeroID(msg.Hero)
	if !ok {
		return fmt.Errorf("%w: %s", gamedata.ErrUnknownHero, msg.Hero)
	}
	if err := t.heroes.AddHeroCorrection(msg.Raw, heroID); err != nil {
		return fmt.Errorf("learn hero name: %w", err)
	}
	t.log.Info("hero name learned", zap.String("raw", msg.Raw), zap.String("hero", heroID))
	return nil
}
