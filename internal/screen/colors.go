package screen

import (
	"image"
	"image/color"
)

const DefaultTolerance = 12

// Inspector matches pixels against reference colours with a per-channel
// tolerance.
type Inspector struct {
	Tolerance uint8
}

func (in Inspector) ContainsColor(img image.Image, colors []color.Color) bool {
	if img == nil || len(colors) == 0 {
		return false
	}
	refs := toRGBA(colors)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if in.matches(img.At(x, y), refs) {
				return true
			}
		}
	}
	return false
}

// BorderMatch scores the share of border pixels matching colors as 0..255.
// The border is width pixels deep on the left and right and height pixels
// deep on the top and bottom.
func (in Inspector) BorderMatch(img image.Image, colors []color.Color, width, height int) uint8 {
	if img == nil || len(colors) == 0 {
		return 0
	}
	refs := toRGBA(colors)
	b := img.Bounds()
	total, hits := 0, 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if x >= b.Min.X+width && x < b.Max.X-width && y >= b.Min.Y+height && y < b.Max.Y-height {
				continue
			}
			total++
			if in.matches(img.At(x, y), refs) {
				hits++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return uint8(hits * 255 / total)
}

func (in Inspector) matches(c color.Color, refs []color.RGBA) bool {
	px := color.RGBAModel.Convert(c).(color.RGBA)
	for _, ref := range refs {
		if near(px.R, ref.R, in.Tolerance) && near(px.G, ref.G, in.Tolerance) && near(px.B, ref.B, in.Tolerance) {
			return true
		}
	}
	return false
}

func near(a, b, tolerance uint8) bool {
	if a > b {
		return a-b <= tolerance
	}
	return b-a <= tolerance
}

func toRGBA(colors []color.Color) []color.RGBA {
	out := make([]color.RGBA, len(colors))
	for i, c := range colors {
		out[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return out
}
