package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalize(t *testing.T) {
	var jpegBuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpegBuf, sampleImage(30, 40), nil))

	tests := []struct {
		name       string
		raw        []byte
		wantWidth  int
		wantHeight int
		expectErr  bool
	}{
		{name: "png", raw: encodePNG(t, sampleImage(21, 29)), wantWidth: 21, wantHeight: 29},
		{name: "jpeg", raw: jpegBuf.Bytes(), wantWidth: 30, wantHeight: 40},
		{name: "empty", raw: nil, expectErr: true},
		{name: "not an image", raw: []byte("definitely not pixels"), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Normalize(tt.raw)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, img.Width)
			assert.Equal(t, tt.wantHeight, img.Height)

			_, format, err := image.DecodeConfig(bytes.NewReader(img.PNG))
			require.NoError(t, err)
			assert.Equal(t, "png", format)
		})
	}
}

func TestFileTemplate_LoadCaches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, sampleImage(10, 14)), 0o600))

	source := NewFileTemplate(path)
	first, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, first.Width)

	require.NoError(t, os.Remove(path))

	second, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.PNG, second.PNG)
}

func TestFileTemplate_LoadErrors(t *testing.T) {
	_, err := NewFileTemplate("").Load(context.Background())
	assert.ErrorIs(t, err, ErrTemplateMissing)

	_, err = NewFileTemplate(filepath.Join(t.TempDir(), "missing.png")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileTemplate("whatever.png").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
