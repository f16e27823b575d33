package gateway

import (
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	DefaultMaxUploadBytes    int64 = 10 << 20
	DefaultAllowedMimePrefix       = "image/"
)

// Upload is a user-selected file.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u Upload) Size() int64 { return int64(len(u.Data)) }

// Constraints are checked before any network I/O.
type Constraints struct {
	MaxSizeBytes      int64
	AllowedMimePrefix string
}

func DefaultConstraints() Constraints {
	return Constraints{MaxSizeBytes: DefaultMaxUploadBytes, AllowedMimePrefix: DefaultAllowedMimePrefix}
}

func (c Constraints) withDefaults() Constraints {
	if c.MaxSizeBytes <= 0 {
		c.MaxSizeBytes = DefaultMaxUploadBytes
	}
	if strings.TrimSpace(c.AllowedMimePrefix) == "" {
		c.AllowedMimePrefix = DefaultAllowedMimePrefix
	}
	return c
}

// MediaType returns the declared content type without parameters, or the
// sniffed one when nothing usable was declared.
func (u Upload) MediaType() string {
	if declared := strings.TrimSpace(u.ContentType); declared != "" && declared != "application/octet-stream" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			return strings.ToLower(mt)
		}
	}
	if len(u.Data) == 0 {
		return ""
	}
	mt, _, _ := mime.ParseMediaType(mimetype.Detect(u.Data).String())
	return strings.ToLower(mt)
}

// Check validates u and returns its media type.
func (c Constraints) Check(u Upload) (string, error) {
	c = c.withDefaults()
	if len(u.Data) == 0 {
		return "", &InvalidInputError{Field: "image", Reason: "Please select an image file"}
	}
	mt := u.MediaType()
	if !strings.HasPrefix(mt, strings.ToLower(c.AllowedMimePrefix)) {
		return "", &InvalidInputError{Field: "image", Reason: "Please select an image file"}
	}
	if u.Size() > c.MaxSizeBytes {
		return "", c.TooLarge()
	}
	return mt, nil
}

// TooLarge is the error for an upload over the size cap.
func (c Constraints) TooLarge() *InvalidInputError {
	c = c.withDefaults()
	return &InvalidInputError{
		Field:  "image",
		Reason: fmt.Sprintf("Image size should be less than %s", humanSize(c.MaxSizeBytes)),
	}
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
