package upload

import (
	"fmt"
	"mime"
	"slices"
	"strings"

	"github.com/Veraticus/trendscope/internal/common"
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/dustin/go-humanize"
)

// Rules are the limits a selected file must satisfy.
type Rules struct {
	AllowedTypes []string
	MaxBytes     int64
}

// DefaultRules accepts PNG and JPEG images up to 10 MiB.
func DefaultRules() Rules {
	return Rules{
		AllowedTypes: []string{model.ContentTypePNG, model.ContentTypeJPEG, model.ContentTypeJPG},
		MaxBytes:     model.MaxImageBytes,
	}
}

// Validate checks the declared type and size of img. The returned error is a
// *common.ValidationError carrying the message to show the user.
func (r Rules) Validate(img model.SelectedImage) error {
	if !r.allows(img.ContentType) {
		return common.NewValidationError("file", "Please select a valid image file (PNG or JPG)",
			fmt.Errorf("%w: %q", common.ErrUnsupportedImage, img.ContentType))
	}

	if img.Size > r.MaxBytes {
		return common.NewValidationError("file",
			fmt.Sprintf("File size must be less than %s", humanize.IBytes(uint64(r.MaxBytes))),
			fmt.Errorf("%w: %s", common.ErrImageTooLarge, humanize.IBytes(uint64(img.Size))))
	}

	return nil
}

func (r Rules) allows(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(contentType)
	}
	return slices.Contains(r.AllowedTypes, strings.ToLower(mediaType))
}
