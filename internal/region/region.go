// Package region describes the draft screen regions the detector consumes and
// the contract of the collaborator that samples them.
//
// Region ids are dotted paths from the layout file ("draft.picks.red.3.heroName").
// They are decoded once into a Ref when a Sample is built, so consumers switch
// on Kind instead of matching strings.
package region

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
)

var ErrUnknownRegion = errors.New("unknown region")

type Kind int

const (
	KindOther Kind = iota
	KindTop
	KindMapName
	KindTurnIndicator
	KindBans
	KindBanSlot
	KindPicks
	KindHeroName
	KindPlayerName
)

func (k Kind) String() string {
	switch k {
	case KindTop:
		return "top"
	case KindMapName:
		return "mapName"
	case KindTurnIndicator:
		return "turnIndicator"
	case KindBans:
		return "bans"
	case KindBanSlot:
		return "banSlot"
	case KindPicks:
		return "picks"
	case KindHeroName:
		return "heroName"
	case KindPlayerName:
		return "playerName"
	default:
		return "other"
	}
}

// Variant selects one of the alternative read-outs of a hero or player name.
type Variant string

const (
	VariantNone           Variant = ""
	VariantActive         Variant = "active"
	VariantActivePicking  Variant = "active.picking"
	VariantInactive       Variant = "inactive"
	VariantLockedActive   Variant = "locked.active"
	VariantLockedInactive Variant = "locked.inactive"
)

// Colour swatch names defined on layout regions.
const (
	SwatchTimerBlue          = "timer.blue"
	SwatchTimerRed           = "timer.red"
	SwatchTimerBan           = "timer.ban"
	SwatchHeroLockedActive   = "hero.background.locked.active"
	SwatchHeroLockedInactive = "hero.background.locked.inactive"
	SwatchHeroNameActivePick = "hero.name.active.picking"
)

const (
	Top        = "draft.top"
	MapName    = "draft.top.mapName"
	TurnTimer  = "draft.top.pickTimer.top"
	bansPrefix = "draft.top.bans."
	picksRoot  = "draft.picks."
)

type Ref struct {
	Kind    Kind
	Team    draft.Color
	Index   int
	Variant Variant
}

func Bans(team draft.Color) string  { return bansPrefix + string(team) }
func Picks(team draft.Color) string { return picksRoot + string(team) }

func BanSlot(team draft.Color, index int) string {
	return Bans(team) + "." + strconv.Itoa(index)
}

func HeroName(team draft.Color, slot int) string {
	return Picks(team) + "." + strconv.Itoa(slot) + ".heroName"
}

func PlayerName(team draft.Color, slot int) string {
	return Picks(team) + "." + strconv.Itoa(slot) + ".playerName"
}

// VariantID names the variant child of a hero or player name region.
func VariantID(id string, v Variant) string {
	if v == VariantNone {
		return id
	}
	return id + "." + string(v)
}

// Parse decodes a layout id. Ids the detector does not consume decode to
// KindOther.
func Parse(id string) Ref {
	switch id {
	case Top:
		return Ref{Kind: KindTop}
	case MapName:
		return Ref{Kind: KindMapName}
	case TurnTimer:
		return Ref{Kind: KindTurnIndicator}
	}

	if rest, ok := strings.CutPrefix(id, bansPrefix); ok {
		parts := strings.Split(rest, ".")
		team, ok := draft.ParseColor(parts[0])
		if !ok {
			return Ref{Kind: KindOther}
		}
		switch len(parts) {
		case 1:
			return Ref{Kind: KindBans, Team: team}
		case 2:
			if n, err := strconv.Atoi(parts[1]); err == nil && n >= 0 && n < draft.BanSlots {
				return Ref{Kind: KindBanSlot, Team: team, Index: n}
			}
		}
		return Ref{Kind: KindOther}
	}

	if rest, ok := strings.CutPrefix(id, picksRoot); ok {
		parts := strings.SplitN(rest, ".", 4)
		team, ok := draft.ParseColor(parts[0])
		if !ok {
			return Ref{Kind: KindOther}
		}
		if len(parts) == 1 {
			return Ref{Kind: KindPicks, Team: team}
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 0 || n >= draft.PlayerSlots || len(parts) < 3 {
			return Ref{Kind: KindOther}
		}
		ref := Ref{Team: team, Index: n}
		switch parts[2] {
		case "heroName":
			ref.Kind = KindHeroName
		case "playerName":
			ref.Kind = KindPlayerName
		default:
			return Ref{Kind: KindOther}
		}
		if len(parts) == 4 {
			ref.Variant = Variant(parts[3])
		}
		return ref
	}

	return Ref{Kind: KindOther}
}

// Sample is one sampled region: its crop and, when the region is read by OCR,
// the recognised text.
type Sample struct {
	ID       string
	Ref      Ref
	Image    image.Image
	Text     string
	swatches map[string][]color.Color
}

func NewSample(id string, img image.Image, text string, swatches map[string][]color.Color) Sample {
	return Sample{ID: id, Ref: Parse(id), Image: img, Text: text, swatches: swatches}
}

// Colors returns the reference colours of a named swatch.
func (s Sample) Colors(swatch string) []color.Color {
	return s.swatches[swatch]
}

// Sampler is the screen/layout collaborator.
type Sampler interface {
	// Capture grabs the active window and samples the region id and its
	// non-lazy descendants.
	Capture(ctx context.Context, id string) ([]Sample, error)
	// Apply samples region id out of src, the image of its parent region.
	Apply(ctx context.Context, id string, src image.Image) ([]Sample, error)
}

// Inspector holds the colour predicates used on sampled crops.
type Inspector interface {
	ContainsColor(img image.Image, colors []color.Color) bool
	// BorderMatch reports how much of the border strip matches colors,
	// scaled to 0..255.
	BorderMatch(img image.Image, colors []color.Color, width, height int) uint8
}
