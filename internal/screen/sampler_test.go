package screen

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/hots-draft-tracker/internal/region"
)

type fakeScreen struct {
	img image.Image
	err error
}

func (f fakeScreen) Capture(context.Context) (image.Image, error) { return f.img, f.err }

// boundsReader "reads" the crop rectangle so tests can check where OCR ran.
type boundsReader struct{ calls int }

func (b *boundsReader) Read(_ context.Context, img image.Image) (string, error) {
	b.calls++
	return fmt.Sprint(img.Bounds()), nil
}

func solid(rect image.Rectangle, c color.Color) *image.RGBA {
	img := image.NewRGBA(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func newTestSampler(t *testing.T, screen Capturer, ocr TextReader) *Sampler {
	t.Helper()
	l, err := ParseLayout([]byte(testLayout))
	require.NoError(t, err)
	return NewSampler(l, screen, ocr, zap.NewNop())
}

func TestSampler_CaptureSkipsLazyRegions(t *testing.T) {
	ocr := &boundsReader{}
	s := newTestSampler(t, fakeScreen{img: solid(image.Rect(0, 0, 200, 100), color.Black)}, ocr)

	samples, err := s.Capture(context.Background(), "root")
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, "root", samples[0].ID)
	assert.Equal(t, image.Rect(100, 0, 200, 50), samples[0].Image.Bounds())
	assert.Equal(t, "", samples[0].Text)

	assert.Equal(t, "root.text", samples[1].ID)
	assert.Equal(t, "(100,0)-(150,50)", samples[1].Text)
	assert.Equal(t, []color.Color{color.RGBA{R: 255, A: 255}}, samples[1].Colors("accent"))
	assert.Equal(t, 1, ocr.calls)
}

func TestSampler_ApplyLazyRegionFromParentImage(t *testing.T) {
	s := newTestSampler(t, fakeScreen{}, &boundsReader{})
	parent := solid(image.Rect(100, 0, 200, 50), color.White)

	samples, err := s.Apply(context.Background(), "root.hidden", parent)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, image.Rect(150, 25, 200, 50), samples[0].Image.Bounds())
}

func TestSampler_Errors(t *testing.T) {
	boom := errors.New("no window")
	s := newTestSampler(t, fakeScreen{err: boom}, &boundsReader{})

	_, err := s.Capture(context.Background(), "root")
	assert.ErrorIs(t, err, boom)

	_, err = s.Capture(context.Background(), "draft.nowhere")
	assert.ErrorIs(t, err, region.ErrUnknownRegion)

	_, err = s.Apply(context.Background(), "root.text", nil)
	assert.Error(t, err)
}
