// Package detector runs draft detection cycles: it samples the draft screen
// through a region.Sampler and folds the readings into a draft.Draft.
package detector

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/hots-draft-tracker/internal/banmatch"
	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
	"github.com/DoyleJ11/hots-draft-tracker/internal/region"
)

type Outcome int

const (
	DraftNotActive Outcome = iota
	DraftUpdated
)

func (o Outcome) String() string {
	if o == DraftUpdated {
		return "updated"
	}
	return "not-active"
}

type Dictionary interface {
	FixMapName(raw string) string
	MapExists(name string) bool
	CorrectHeroName(raw string) string
	HeroExists(name string) bool
}

type BanClassifier interface {
	Load() error
	Classify(img image.Image) (banmatch.Match, bool, error)
}

type RecentPicksLookup interface {
	RecentPicks(ctx context.Context, playerName string) (draft.RecentPicks, error)
}

type Deps struct {
	Sampler   region.Sampler
	Inspector region.Inspector
	Dict      Dictionary
	Bans      BanClassifier
	// RecentPicks is optional.
	RecentPicks RecentPicksLookup
	Log         *zap.Logger
}

// Orchestrator owns the draft. It is not safe for concurrent use: callers run
// one cycle at a time.
type Orchestrator struct {
	sampler   region.Sampler
	inspector region.Inspector
	dict      Dictionary
	bans      BanClassifier
	picks     RecentPicksLookup
	log       *zap.Logger
	draft     *draft.Draft
}

func New(deps Deps) *Orchestrator {
	return &Orchestrator{
		sampler:   deps.Sampler,
		inspector: deps.Inspector,
		dict:      deps.Dict,
		bans:      deps.Bans,
		picks:     deps.RecentPicks,
		log:       deps.Log.Named("detector"),
		draft:     draft.New(),
	}
}

func (o *Orchestrator) Draft() *draft.Draft { return o.draft }

func (o *Orchestrator) Clear() []draft.Event { return o.draft.Clear() }

// RunCycle runs one detection pass. Nothing readable on screen is not an
// error. When a phase fails its readings are dropped; events committed by
// earlier phases are returned together with the error.
func (o *Orchestrator) RunCycle(ctx context.Context) (Outcome, []draft.Event, error) {
	if err := o.bans.Load(); err != nil {
		o.log.Warn("ban icon index incomplete", zap.Error(err))
	}

	top, events, err := o.updateTop(ctx)
	if err != nil {
		return DraftNotActive, events, err
	}
	if !top.mapFound || o.draft.Indicator() == draft.IndicatorNone {
		o.log.Debug("no draft detected", zap.Bool("map", top.mapFound), zap.String("turn", string(o.draft.Indicator())))
		return DraftNotActive, events, nil
	}

	// during the ban phase the overlay differs and icons are not final yet
	if o.draft.Indicator() != draft.IndicatorBan {
		banEvents, err := o.updateBans(ctx, top.image)
		events = append(events, banEvents...)
		if err != nil {
			return DraftNotActive, events, err
		}
	}

	pickEvents, err := o.updatePicks(ctx)
	events = append(events, pickEvents...)
	if err != nil {
		return DraftNotActive, events, err
	}

	o.log.Debug("detection done", zap.Int("events", len(events)))
	return DraftUpdated, events, nil
}

func (o *Orchestrator) team(color draft.Color) *draft.Team {
	t, _ := o.draft.Team(color)
	return t
}

type topRead struct {
	image    image.Image
	mapFound bool
}

// updateTop reads the map name and the turn indicator.
func (o *Orchestrator) updateTop(ctx context.Context) (topRead, []draft.Event, error) {
	samples, err := o.sampler.Capture(ctx, region.Top)
	if err != nil {
		return topRead{}, nil, fmt.Errorf("sample top: %w", err)
	}

	var (
		read      topRead
		mapName   string
		indicator = draft.IndicatorNone
	)
	for _, s := range samples {
		switch s.Ref.Kind {
		case region.KindTop:
			read.image = s.Image
		case region.KindMapName:
			name := o.dict.FixMapName(s.Text)
			if name != "" && o.dict.MapExists(name) {
				mapName = name
				read.mapFound = true
			}
		case region.KindTurnIndicator:
			indicator = o.classifyTurn(s)
		}
	}

	var events []draft.Event
	if read.mapFound {
		events = o.draft.SetMap(mapName)
		if draft.ContainsEvent(events, draft.EvtDraftStarted) {
			o.log.Info("draft started", zap.String("map", mapName))
		}
	}
	o.draft.SetIndicator(indicator)
	return read, events, nil
}

func (o *Orchestrator) classifyTurn(s region.Sample) draft.Indicator {
	switch {
	case o.inspector.ContainsColor(s.Image, s.Colors(region.SwatchTimerBlue)):
		return draft.IndicatorBlue
	case o.inspector.ContainsColor(s.Image, s.Colors(region.SwatchTimerRed)):
		return draft.IndicatorRed
	case o.inspector.ContainsColor(s.Image, s.Colors(region.SwatchTimerBan)):
		return draft.IndicatorBan
	default:
		return draft.IndicatorNone
	}
}

// all-complete join over both teams; the first failure fails the phase
func join(ctx context.Context, fn func(ctx context.Context, ti int, color draft.Color) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for ti, color := range draft.Colors {
		g.Go(func() error { return fn(gctx, ti, color) })
	}
	return g.Wait()
}
