package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	// Registered for image.DecodeConfig.
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/Veraticus/trendscope/internal/model"
)

// Decoder reads a selected image and produces its preview.
type Decoder struct{}

// NewDecoder creates a preview decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads img fully and returns a data URL preview with its dimensions.
func (d *Decoder) Decode(ctx context.Context, img model.SelectedImage) (model.Preview, error) {
	if err := ctx.Err(); err != nil {
		return model.Preview{}, err
	}

	rc, err := img.Open()
	if err != nil {
		return model.Preview{}, fmt.Errorf("failed to open %s: %w", img.Name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return model.Preview{}, fmt.Errorf("failed to read %s: %w", img.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return model.Preview{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.Preview{}, fmt.Errorf("failed to decode %s: %w", img.Name, err)
	}

	return model.Preview{
		DataURL: "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Format:  format,
		Width:   cfg.Width,
		Height:  cfg.Height,
	}, nil
}
