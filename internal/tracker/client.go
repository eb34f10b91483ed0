package tracker

import (
	"context"

	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
)

// request sends a message built around a reply channel and waits for the
// answer or for ctx.
func request[T any](ctx context.Context, t *Tracker, build func(reply chan T) Msg) (T, error) {
	var zero T
	reply := make(chan T, 1)
	select {
	case t.inbox <- build(reply):
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-t.done:
		return zero, context.Canceled
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-t.done:
		return zero, context.Canceled
	}
}

func (t *Tracker) State(ctx context.Context) (View, error) {
	return request(ctx, t, func(reply chan View) Msg { return GetState{Reply: reply} })
}

func (t *Tracker) Clear(ctx context.Context) (draft.Snapshot, error) {
	return request(ctx, t, func(reply chan draft.Snapshot) Msg { return Clear{Reply: reply} })
}

func (t *Tracker) LearnBan(ctx context.Context, team draft.Color, index int, hero string) error {
	err, waitErr := request(ctx, t, func(reply chan error) Msg {
		return LearnBan{Team: team, Index: index, Hero: hero, Reply: reply}
	})
	if waitErr != nil {
		return waitErr
	}
	return err
}

func (t *Tracker) LearnHero(ctx context.Context, raw, hero string) error {
	err, waitErr := request(ctx, t, func(reply chan error) Msg {
		return LearnHero{Raw: raw, Hero: hero, Reply: reply}
	})
	if waitErr != nil {
		return waitErr
	}
	return err
}
