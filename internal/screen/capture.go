package screen

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

type Capturer interface {
	Capture(ctx context.Context) (image.Image, error)
}

// Display captures a whole monitor. The game runs fullscreen, so the monitor
// is the active window.
type Display struct {
	Index int
}

func (d Display) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n := screenshot.NumActiveDisplays(); d.Index >= n {
		return nil, fmt.Errorf("display %d not active (%d displays)", d.Index, n)
	}
	img, err := screenshot.CaptureRect(screenshot.GetDisplayBounds(d.Index))
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", d.Index, err)
	}
	return img, nil
}
