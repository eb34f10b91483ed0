package screen

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	"go.uber.org/zap"

	"github.com/DoyleJ11/hots-draft-tracker/internal/region"
)

// Sampler implements region.Sampler on top of a layout, a screen source and
// an OCR reader.
type Sampler struct {
	layout  *Layout
	capture Capturer
	ocr     TextReader
	log     *zap.Logger
}

func NewSampler(layout *Layout, capture Capturer, ocr TextReader, log *zap.Logger) *Sampler {
	return &Sampler{layout: layout, capture: capture, ocr: ocr, log: log.Named("screen")}
}

func (s *Sampler) Capture(ctx context.Context, id string) ([]region.Sample, error) {
	r, ok := s.layout.Region(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", region.ErrUnknownRegion, id)
	}
	shot, err := s.capture.Capture(ctx)
	if err != nil {
		return nil, err
	}
	return s.walk(ctx, r, crop(shot, r.ScreenRect(shot.Bounds())), nil)
}

func (s *Sampler) Apply(ctx context.Context, id string, src image.Image) ([]region.Sample, error) {
	r, ok := s.layout.Region(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", region.ErrUnknownRegion, id)
	}
	if src == nil {
		return nil, fmt.Errorf("apply %s: no source image", id)
	}
	return s.walk(ctx, r, crop(src, r.Rect(src.Bounds())), nil)
}

// walk samples r and its non-lazy descendants depth first.
func (s *Sampler) walk(ctx context.Context, r *Region, img image.Image, out []region.Sample) ([]region.Sample, error) {
	var text string
	if r.OCR {
		t, err := s.ocr.Read(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", r.ID, err)
		}
		text = t
		s.log.Debug("ocr", zap.String("region", r.ID), zap.String("text", text))
	}
	out = append(out, region.NewSample(r.ID, img, text, r.swatches))
	for _, child := range r.Children {
		if child.Lazy {
			continue
		}
		var err error
		out, err = s.walk(ctx, child, crop(img, child.Rect(img.Bounds())), out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func crop(img image.Image, rect image.Rectangle) image.Image {
	if si, ok := img.(subImager); ok {
		return si.SubImage(rect)
	}
	dst := image.NewRGBA(rect)
	draw.Draw(dst, rect, img, rect.Min, draw.Src)
	return dst
}
