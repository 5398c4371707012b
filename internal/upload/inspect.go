package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/trendscope/internal/config"
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/gabriel-vasile/mimetype"
)

// Inspect describes the file at path without loading its contents.
// The declared content type comes from sniffing the file header.
func Inspect(path string) (model.SelectedImage, error) {
	path = config.ExpandPath(path)

	info, err := os.Stat(path)
	if err != nil {
		return model.SelectedImage{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return model.SelectedImage{}, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return model.SelectedImage{}, fmt.Errorf("failed to detect type of %s: %w", path, err)
	}

	return model.SelectedImage{
		Name:        filepath.Base(path),
		Path:        path,
		ContentType: mtype.String(),
		Size:        info.Size(),
	}, nil
}

// FromBytes describes an in-memory image, sniffing its declared type.
func FromBytes(name string, data []byte) model.SelectedImage {
	return model.SelectedImage{
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
		Size:        int64(len(data)),
		Data:        data,
	}
}
