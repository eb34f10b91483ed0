package detector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/hots-draft-tracker/internal/banmatch"
	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
	"github.com/DoyleJ11/hots-draft-tracker/internal/region"
)

type banRead struct {
	match banmatch.Match
	found bool
	icon  []byte
}

// updateBans classifies the unlocked ban slots of both teams and commits the
// readings once every slot has been read.
func (o *Orchestrator) updateBans(ctx context.Context, top image.Image) ([]draft.Event, error) {
	var reads [2][draft.BanSlots]*banRead

	err := join(ctx, func(ctx context.Context, ti int, color draft.Color) error {
		samples, err := o.sampler.Apply(ctx, region.Bans(color), top)
		if err != nil {
			return fmt.Errorf("sample %s bans: %w", color, err)
		}
		locked := o.team(color).BansLocked()

		var slots errgroup.Group
		for _, s := range samples {
			if s.Ref.Kind != region.KindBanSlot || s.Ref.Team != color {
				continue
			}
			if s.Ref.Index < locked {
				o.log.Debug("ban skipped, already locked", zap.String("team", string(color)), zap.Int("index", s.Ref.Index))
				continue
			}
			slots.Go(func() error {
				read, err := o.readBan(s.Image)
				if err != nil {
					return fmt.Errorf("classify %s: %w", s.ID, err)
				}
				reads[ti][s.Ref.Index] = read
				return nil
			})
		}
		return slots.Wait()
	})
	if err != nil {
		return nil, err
	}

	var events []draft.Event
	for ti, color := range draft.Colors {
		team := o.team(color)
		for index, read := range reads[ti] {
			if read != nil {
				events = append(events, o.commitBan(team, index, read)...)
			}
		}
	}
	return events, nil
}

func (o *Orchestrator) readBan(img image.Image) (*banRead, error) {
	match, ok, err := o.bans.Classify(img)
	if err != nil {
		return nil, err
	}
	if ok {
		return &banRead{match: match, found: true}, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode ban icon: %w", err)
	}
	return &banRead{icon: buf.Bytes()}, nil
}

// commitBan stores one reading. The first confident hero for the lowest
// unlocked slot raises the lock watermark.
func (o *Orchestrator) commitBan(team *draft.Team, index int, read *banRead) []draft.Event {
	locked := team.BansLocked()
	log := o.log.With(zap.String("team", string(team.Color())), zap.Int("index", index))

	if !read.found {
		events, err := team.SetBan(index, draft.UnknownHero)
		if err != nil {
			log.Debug("ban not updated", zap.Error(err))
			return nil
		}
		imageEvents, err := team.SetBanImage(index, read.icon)
		if err != nil {
			log.Debug("ban icon not retained", zap.Error(err))
		}
		return append(events, imageEvents...)
	}

	log.Debug("ban classified", zap.String("hero", read.match.Hero), zap.Float64("distance", read.match.Distance))
	events, err := team.SetBan(index, read.match.Hero)
	if err != nil {
		if !errors.Is(err, draft.ErrBanLocked) {
			log.Warn("ban not updated", zap.Error(err))
		}
		return nil
	}
	if locked == index {
		events = append(events, team.LockBans(index+1)...)
	}
	return events
}
