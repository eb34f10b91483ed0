package screen

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
	"github.com/DoyleJ11/hots-draft-tracker/internal/region"
)

const testLayout = `
regions:
  - id: root
    x: 0.5
    y: 0
    w: 0.5
    h: 0.5
    colors:
      accent: ["#ff0000"]
    children:
      - id: root.text
        x: 0
        y: 0
        w: 0.5
        h: 1
        ocr: true
        colors:
          own: ["#00ff00", "0000ff"]
      - id: root.hidden
        x: 0.5
        y: 0.5
        w: 0.5
        h: 0.5
        lazy: true
`

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout([]byte(testLayout))
	require.NoError(t, err)

	text, ok := l.Region("root.text")
	require.True(t, ok)
	assert.Equal(t, []color.Color{color.RGBA{R: 255, A: 255}}, text.swatches["accent"], "swatches are inherited")
	assert.Equal(t, []color.Color{color.RGBA{G: 255, A: 255}, color.RGBA{B: 255, A: 255}}, text.swatches["own"])

	screenRect := image.Rect(0, 0, 200, 100)
	assert.Equal(t, image.Rect(100, 0, 150, 50), text.ScreenRect(screenRect))

	hidden, _ := l.Region("root.hidden")
	assert.Equal(t, image.Rect(150, 25, 200, 50), hidden.ScreenRect(screenRect))

	_, ok = l.Region("nope")
	assert.False(t, ok)
}

func TestParseLayout_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing id":   "regions:\n  - x: 0\n    y: 0\n    w: 1\n    h: 1\n",
		"duplicate id": "regions:\n  - {id: a, x: 0, y: 0, w: 1, h: 1}\n  - {id: a, x: 0, y: 0, w: 1, h: 1}\n",
		"outside":      "regions:\n  - {id: a, x: 0.5, y: 0, w: 0.6, h: 1}\n",
		"empty":        "regions:\n  - {id: a, x: 0, y: 0, w: 0, h: 1}\n",
		"bad colour":   "regions:\n  - {id: a, x: 0, y: 0, w: 1, h: 1, colors: {c: [\"#zzzzzz\"]}}\n",
		"bad yaml":     "regions: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLayout([]byte(doc))
			assert.Error(t, err)
		})
	}
}

// The shipped layout must define every region the detector samples.
func TestShippedDraftLayout(t *testing.T) {
	l, err := LoadLayout("../../data/layout/draft.yaml")
	require.NoError(t, err)

	ids := []string{region.Top, region.MapName, region.TurnTimer}
	for _, team := range draft.Colors {
		ids = append(ids, region.Bans(team), region.Picks(team))
		for i := 0; i < draft.BanSlots; i++ {
			ids = append(ids, region.BanSlot(team, i))
		}
		for i := 0; i < draft.PlayerSlots; i++ {
			hero, name := region.HeroName(team, i), region.PlayerName(team, i)
			ids = append(ids, hero, name,
				region.VariantID(hero, region.VariantLockedActive),
				region.VariantID(hero, region.VariantLockedInactive),
				region.VariantID(hero, region.VariantActive),
				region.VariantID(hero, region.VariantActivePicking),
				region.VariantID(hero, region.VariantInactive),
				region.VariantID(name, region.VariantActive),
				region.VariantID(name, region.VariantInactive),
			)
		}
	}
	for _, id := range ids {
		_, ok := l.Region(id)
		assert.True(t, ok, id)
	}

	timer, _ := l.Region(region.TurnTimer)
	for _, swatch := range []string{region.SwatchTimerBlue, region.SwatchTimerRed, region.SwatchTimerBan} {
		assert.NotEmpty(t, timer.swatches[swatch], swatch)
	}
	hero, _ := l.Region(region.HeroName(draft.TeamRed, 2))
	assert.NotEmpty(t, hero.swatches[region.SwatchHeroLockedActive])
}
