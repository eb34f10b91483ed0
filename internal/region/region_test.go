package region

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
)

func TestParse(t *testing.T) {
	cases := []struct {
		id   string
		want Ref
	}{
		{id: "draft.top", want: Ref{Kind: KindTop}},
		{id: "draft.top.mapName", want: Ref{Kind: KindMapName}},
		{id: "draft.top.pickTimer.top", want: Ref{Kind: KindTurnIndicator}},
		{id: "draft.top.bans.red", want: Ref{Kind: KindBans, Team: draft.TeamRed}},
		{id: "draft.top.bans.blue.2", want: Ref{Kind: KindBanSlot, Team: draft.TeamBlue, Index: 2}},
		{id: "draft.top.bans.blue.3", want: Ref{Kind: KindOther}},
		{id: "draft.top.bans.green.0", want: Ref{Kind: KindOther}},
		{id: "draft.picks.red", want: Ref{Kind: KindPicks, Team: draft.TeamRed}},
		{id: "draft.picks.red.4.heroName", want: Ref{Kind: KindHeroName, Team: draft.TeamRed, Index: 4}},
		{id: "draft.picks.blue.0.playerName", want: Ref{Kind: KindPlayerName, Team: draft.TeamBlue}},
		{
			id:   "draft.picks.blue.1.heroName.locked.inactive",
			want: Ref{Kind: KindHeroName, Team: draft.TeamBlue, Index: 1, Variant: VariantLockedInactive},
		},
		{
			id:   "draft.picks.red.2.heroName.active.picking",
			want: Ref{Kind: KindHeroName, Team: draft.TeamRed, Index: 2, Variant: VariantActivePicking},
		},
		{id: "draft.picks.red.5.heroName", want: Ref{Kind: KindOther}},
		{id: "draft.picks.red.x.heroName", want: Ref{Kind: KindOther}},
		{id: "draft.picks.red.1.portrait", want: Ref{Kind: KindOther}},
		{id: "menu.play", want: Ref{Kind: KindOther}},
	}

	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			if got := Parse(tc.id); got != tc.want {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestIDHelpersRoundTrip(t *testing.T) {
	assert.Equal(t, Ref{Kind: KindBanSlot, Team: draft.TeamRed, Index: 1}, Parse(BanSlot(draft.TeamRed, 1)))
	assert.Equal(t, Ref{Kind: KindPlayerName, Team: draft.TeamBlue, Index: 3, Variant: VariantInactive},
		Parse(VariantID(PlayerName(draft.TeamBlue, 3), VariantInactive)))
	assert.Equal(t, HeroName(draft.TeamRed, 0), VariantID(HeroName(draft.TeamRed, 0), VariantNone))
}

func TestSampleColors(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	timer := NewSample(TurnTimer, image.NewRGBA(image.Rect(0, 0, 2, 2)), "", map[string][]color.Color{
		SwatchTimerBlue: {blue},
	})

	assert.Equal(t, []color.Color{blue}, timer.Colors(SwatchTimerBlue))
	assert.Nil(t, timer.Colors(SwatchTimerRed))
	assert.Equal(t, Parse(TurnTimer), timer.Ref)
}
