package screen

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/nfnt/resize"
	"github.com/otiai10/gosseract/v2"
)

type TextReader interface {
	Read(ctx context.Context, img image.Image) (string, error)
}

// Tesseract reads single text lines. The underlying client is not safe for
// concurrent use, reads are serialised.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
	scale  uint
}

func NewTesseract(lang string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("ocr language %q: %w", lang, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		client.Close()
		return nil, fmt.Errorf("ocr page mode: %w", err)
	}
	return &Tesseract{client: client, scale: 3}, nil
}

func (t *Tesseract) Read(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b := img.Bounds()
	if b.Empty() {
		return "", nil
	}
	// small glyphs read much better upscaled
	scaled := resize.Resize(uint(b.Dx())*t.scale, uint(b.Dy())*t.scale, img, resize.Bicubic)
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("encode ocr input: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("ocr input: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}
