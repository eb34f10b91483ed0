package detector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
	"github.com/DoyleJ11/hots-draft-tracker/internal/region"
)

// A hero slot counts as locked when most of its border shows the locked
// background.
const (
	lockedBorderMin = 200
	borderWidth     = 5
	borderHeight    = 5
)

type heroRead struct {
	character string
	unknown   bool
	locked    bool
}

type nameRead struct {
	name   string
	final  bool
	recent draft.RecentPicks
}

type slotRead struct {
	hero *heroRead
	name *nameRead
}

// updatePicks samples hero and player names for every player whose team has a
// turn status, then commits the readings.
func (o *Orchestrator) updatePicks(ctx context.Context) ([]draft.Event, error) {
	var reads [2][draft.PlayerSlots]slotRead

	err := join(ctx, func(ctx context.Context, ti int, color draft.Color) error {
		status := o.draft.TeamStatus(color)
		if status == draft.StatusNone {
			return nil
		}
		samples, err := o.sampler.Capture(ctx, region.Picks(color))
		if err != nil {
			return fmt.Errorf("sample %s picks: %w", color, err)
		}
		team := o.team(color)

		g, gctx := errgroup.WithContext(ctx)
		for _, s := range samples {
			if s.Ref.Team != color || s.Ref.Variant != region.VariantNone {
				continue
			}
			player, err := team.Player(s.Ref.Index)
			if err != nil {
				continue
			}
			out := &reads[ti][s.Ref.Index]

			switch s.Ref.Kind {
			case region.KindHeroName:
				if player.Locked() {
					continue
				}
				g.Go(func() error {
					read, err := o.readHero(gctx, s, status)
					if err != nil {
						return err
					}
					out.hero = read
					return nil
				})
			case region.KindPlayerName:
				if player.NameFinal() {
					continue
				}
				current, hasPicks := player.Name(), player.RecentPicks() != nil
				g.Go(func() error {
					read, err := o.readName(gctx, s, status, current, hasPicks)
					if err != nil {
						return err
					}
					out.name = read
					return nil
				})
			}
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}

	var events []draft.Event
	for ti, team := range o.draft.Teams() {
		players := team.Players()
		for index, read := range reads[ti] {
			events = append(events, o.commitSlot(players[index], read)...)
		}
	}
	return events, nil
}

func (o *Orchestrator) readHero(ctx context.Context, s region.Sample, status draft.Status) (*heroRead, error) {
	lockedSwatch, lockedVariant := region.SwatchHeroLockedActive, region.VariantLockedActive
	if status == draft.StatusInactive {
		lockedSwatch, lockedVariant = region.SwatchHeroLockedInactive, region.VariantLockedInactive
	}

	read := &heroRead{}
	variant := region.VariantInactive
	switch {
	case o.inspector.BorderMatch(s.Image, s.Colors(lockedSwatch), borderWidth, borderHeight) > lockedBorderMin:
		read.locked = true
		variant = lockedVariant
	case status == draft.StatusActive && o.inspector.ContainsColor(s.Image, s.Colors(region.SwatchHeroNameActivePick)):
		variant = region.VariantActivePicking
	case status == draft.StatusActive:
		variant = region.VariantActive
	}

	text, err := o.readVariant(ctx, s, variant)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		// nothing readable: drop any hovered hero, never lock on it
		return &heroRead{unknown: true}, nil
	}
	read.character = o.dict.CorrectHeroName(text)
	read.unknown = !o.dict.HeroExists(read.character)
	return read, nil
}

// readName reads the player name. Names read while the team waits are final.
func (o *Orchestrator) readName(ctx context.Context, s region.Sample, status draft.Status, current string, hasPicks bool) (*nameRead, error) {
	variant, final := region.VariantActive, false
	if status == draft.StatusInactive {
		variant, final = region.VariantInactive, true
	}

	text, err := o.readVariant(ctx, s, variant)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	read := &nameRead{name: text, final: final}
	if o.picks != nil && (text != current || !hasPicks) {
		recent, err := o.picks.RecentPicks(ctx, text)
		if err != nil {
			o.log.Warn("recent picks lookup failed", zap.String("player", text), zap.Error(err))
		} else {
			read.recent = recent
		}
	}
	return read, nil
}

func (o *Orchestrator) readVariant(ctx context.Context, s region.Sample, v region.Variant) (string, error) {
	id := region.VariantID(s.ID, v)
	samples, err := o.sampler.Apply(ctx, id, s.Image)
	if err != nil {
		return "", fmt.Errorf("sample %s: %w", id, err)
	}
	if len(samples) == 0 {
		return "", nil
	}
	return samples[0].Text, nil
}

func (o *Orchestrator) commitSlot(player *draft.Player, read slotRead) []draft.Event {
	var events []draft.Event
	log := o.log.With(zap.String("team", string(player.Team())), zap.Int("index", player.Index()))

	if h := read.hero; h != nil {
		evts, err := player.SetPick(h.character, h.unknown, h.locked)
		if err != nil && !errors.Is(err, draft.ErrPlayerLocked) {
			log.Warn("pick not updated", zap.Error(err))
		}
		if h.locked && len(evts) > 0 {
			log.Info("hero locked", zap.String("hero", h.character), zap.Bool("unknown", h.unknown))
		}
		events = append(events, evts...)
	}

	if n := read.name; n != nil {
		evts, err := player.SetName(n.name, n.final)
		if err != nil {
			if !errors.Is(err, draft.ErrNameFinal) {
				log.Warn("name not updated", zap.Error(err))
			}
			return events
		}
		events = append(events, evts...)
		if n.recent != nil {
			events = append(events, player.SetRecentPicks(n.recent)...)
		}
	}
	return events
}
