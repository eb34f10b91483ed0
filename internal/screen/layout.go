// Package screen samples layout regions from screenshots: it crops the
// regions described by a layout file, reads text regions with OCR and
// provides the colour predicates the detector applies to the crops.
package screen

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const boundsEpsilon = 1e-9

// Region bounds are fractions of the parent region.
type Region struct {
	ID       string              `yaml:"id"`
	X        float64             `yaml:"x"`
	Y        float64             `yaml:"y"`
	W        float64             `yaml:"w"`
	H        float64             `yaml:"h"`
	OCR      bool                `yaml:"ocr"`
	Lazy     bool                `yaml:"lazy"`
	Colors   map[string][]string `yaml:"colors"`
	Children []*Region           `yaml:"children"`

	parent   *Region
	swatches map[string][]color.Color
}

type Layout struct {
	Regions []*Region `yaml:"regions"`

	byID map[string]*Region
}

func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(data)
}

func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	l.byID = make(map[string]*Region)
	for _, r := range l.Regions {
		if err := l.index(r, nil); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

func (l *Layout) index(r *Region, parent *Region) error {
	if r.ID == "" {
		return fmt.Errorf("layout region without id under %q", parentID(parent))
	}
	if _, dup := l.byID[r.ID]; dup {
		return fmt.Errorf("duplicate layout region %q", r.ID)
	}
	if r.W <= 0 || r.H <= 0 || r.X < 0 || r.Y < 0 || r.X+r.W > 1+boundsEpsilon || r.Y+r.H > 1+boundsEpsilon {
		return fmt.Errorf("layout region %q: bounds outside parent", r.ID)
	}
	r.parent = parent
	r.swatches = make(map[string][]color.Color)
	if parent != nil {
		for name, colors := range parent.swatches {
			r.swatches[name] = colors
		}
	}
	for name, hexes := range r.Colors {
		colors := make([]color.Color, 0, len(hexes))
		for _, h := range hexes {
			c, err := parseHex(h)
			if err != nil {
				return fmt.Errorf("layout region %q swatch %q: %w", r.ID, name, err)
			}
			colors = append(colors, c)
		}
		r.swatches[name] = colors
	}
	l.byID[r.ID] = r
	for _, child := range r.Children {
		if err := l.index(child, r); err != nil {
			return err
		}
	}
	return nil
}

func parentID(r *Region) string {
	if r == nil {
		return "<root>"
	}
	return r.ID
}

func (l *Layout) Region(id string) (*Region, bool) {
	r, ok := l.byID[id]
	return r, ok
}

// Rect places the region inside the parent rectangle.
func (r *Region) Rect(parent image.Rectangle) image.Rectangle {
	w, h := float64(parent.Dx()), float64(parent.Dy())
	rect := image.Rect(
		parent.Min.X+int(r.X*w),
		parent.Min.Y+int(r.Y*h),
		parent.Min.X+int((r.X+r.W)*w),
		parent.Min.Y+int((r.Y+r.H)*h),
	)
	return rect.Intersect(parent)
}

// ScreenRect places the region on a full screen by walking up its ancestors.
func (r *Region) ScreenRect(screen image.Rectangle) image.Rectangle {
	if r.parent == nil {
		return r.Rect(screen)
	}
	return r.Rect(r.parent.ScreenRect(screen))
}

func parseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
