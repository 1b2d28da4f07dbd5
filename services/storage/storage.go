package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ImageArchive keeps a copy of reference images sent with booking requests.
type ImageArchive interface {
	// Archive uploads content and returns a URL the studio can open.
	Archive(ctx context.Context, filename string, content []byte) (string, error)
}

// CloudinaryArchive implements ImageArchive on Cloudinary.
type CloudinaryArchive struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryArchive creates a new CloudinaryArchive instance.
func NewCloudinaryArchive(cld *cloudinary.Cloudinary, folder string) *CloudinaryArchive {
	return &CloudinaryArchive{cld: cld, folder: folder}
}

// Archive uploads content into the configured folder under a unique public ID.
func (s *CloudinaryArchive) Archive(ctx context.Context, filename string, content []byte) (string, error) {
	uploadParams := uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID(filename),
	}
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(content), uploadParams)
	if err != nil {
		return "", fmt.Errorf("CloudinaryArchive: failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryArchive: no URL returned for %s", filename)
	}
	return result.SecureURL, nil
}

// publicID derives a collision-free Cloudinary public ID from the original filename.
func publicID(filename string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	if base == "" || base == "." || base == "-" {
		base = "reference"
	}
	return base + "-" + uuid.NewString()[:8]
}
