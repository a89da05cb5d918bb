package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var ErrTemplateMissing = errors.New("template image not configured")

// TemplateImage is the background the layout table was authored against,
// normalised to PNG so the PDF writer can embed it regardless of the source
// encoding.
type TemplateImage struct {
	PNG    []byte
	Width  int
	Height int
}

// TemplateSource yields the background image for a composition.
type TemplateSource interface {
	Load(ctx context.Context) (TemplateImage, error)
}

// FileTemplate reads the template from disk once and serves the decoded copy
// afterwards. A failed read is retried on the next Load.
type FileTemplate struct {
	path string

	mu     sync.Mutex
	cached *TemplateImage
}

func NewFileTemplate(path string) *FileTemplate {
	return &FileTemplate{path: path}
}

func (f *FileTemplate) Path() string {
	return f.path
}

func (f *FileTemplate) Load(ctx context.Context) (TemplateImage, error) {
	if err := ctx.Err(); err != nil {
		return TemplateImage{}, err
	}
	if f.path == "" {
		return TemplateImage{}, ErrTemplateMissing
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached != nil {
		return *f.cached, nil
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return TemplateImage{}, fmt.Errorf("failed to read template image %s: %w", f.path, err)
	}

	img, err := Normalize(raw)
	if err != nil {
		return TemplateImage{}, fmt.Errorf("failed to decode template image %s: %w", f.path, err)
	}

	f.cached = &img
	return img, nil
}

// Normalize decodes PNG, JPEG or WebP bytes and re-encodes them as PNG.
func Normalize(raw []byte) (TemplateImage, error) {
	if len(raw) == 0 {
		return TemplateImage{}, errors.New("template image is empty")
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		webpDecoded, webpErr := webp.Decode(bytes.NewReader(raw))
		if webpErr != nil {
			return TemplateImage{}, err
		}
		decoded = webpDecoded
	}

	bounds := decoded.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return TemplateImage{}, errors.New("template image has no pixels")
	}

	// 8-bit NRGBA keeps the PNG within what PDF writers can embed.
	canvas := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(canvas, canvas.Bounds(), decoded, bounds.Min, xdraw.Src)

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return TemplateImage{}, fmt.Errorf("failed to encode template image: %w", err)
	}

	return TemplateImage{
		PNG:    out.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
