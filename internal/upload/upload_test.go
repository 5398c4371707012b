package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/trendscope/internal/common"
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "chart.png")
	data := pngBytes(t, 40, 20)
	require.NoError(t, os.WriteFile(pngPath, data, 0o600))

	txtPath := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(txtPath, []byte("just some text, not an image"), 0o600))

	t.Run("png file", func(t *testing.T) {
		img, err := Inspect(pngPath)
		require.NoError(t, err)

		assert.Equal(t, "chart.png", img.Name)
		assert.Equal(t, pngPath, img.Path)
		assert.Equal(t, model.ContentTypePNG, img.ContentType)
		assert.Equal(t, int64(len(data)), img.Size)
		assert.Nil(t, img.Data)
	})

	t.Run("misnamed text file is sniffed as text", func(t *testing.T) {
		img, err := Inspect(txtPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(img.ContentType, "text/plain"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Inspect(filepath.Join(dir, "missing.png"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Inspect(dir)
		require.Error(t, err)
	})
}

func TestRules_Validate(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		wantErr     error
		name        string
		contentType string
		wantMsg     string
		size        int64
	}{
		{name: "png", contentType: "image/png", size: 1024},
		{name: "jpeg", contentType: "image/jpeg", size: 2 * 1024 * 1024},
		{name: "jpg alias", contentType: "image/jpg", size: 1024},
		{name: "exactly the limit", contentType: "image/png", size: model.MaxImageBytes},
		{
			name:        "gif",
			contentType: "image/gif",
			size:        1024,
			wantErr:     common.ErrUnsupportedImage,
			wantMsg:     "Please select a valid image file (PNG or JPG)",
		},
		{
			name:        "text with charset",
			contentType: "text/plain; charset=utf-8",
			size:        10,
			wantErr:     common.ErrUnsupportedImage,
			wantMsg:     "Please select a valid image file (PNG or JPG)",
		},
		{
			name:        "one byte over the limit",
			contentType: "image/jpeg",
			size:        model.MaxImageBytes + 1,
			wantErr:     common.ErrImageTooLarge,
			wantMsg:     "File size must be less than 10 MiB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.Validate(model.SelectedImage{Name: "x", ContentType: tt.contentType, Size: tt.size})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var validationErr *common.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantMsg, validationErr.Message)
		})
	}
}

func TestDecoder_Decode(t *testing.T) {
	data := pngBytes(t, 64, 32)
	img := FromBytes("chart.png", data)
	require.Equal(t, model.ContentTypePNG, img.ContentType)

	preview, err := NewDecoder().Decode(context.Background(), img)
	require.NoError(t, err)

	assert.Equal(t, "png", preview.Format)
	assert.Equal(t, 64, preview.Width)
	assert.Equal(t, 32, preview.Height)
	assert.True(t, strings.HasPrefix(preview.DataURL, "data:image/png;base64,"))
}

func TestDecoder_DecodeCorrupt(t *testing.T) {
	img := model.SelectedImage{Name: "broken.png", ContentType: model.ContentTypePNG, Data: []byte("\x89PNG\r\n\x1a\nnope")}

	_, err := NewDecoder().Decode(context.Background(), img)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode broken.png")
}

func TestDecoder_DecodeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDecoder().Decode(ctx, FromBytes("chart.png", pngBytes(t, 4, 4)))
	assert.ErrorIs(t, err, context.Canceled)
}
