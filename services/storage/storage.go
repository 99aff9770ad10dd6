package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type cloudinaryStorage struct {
	client *cloudinary.Cloudinary
}

// NewStorageService returns a Cloudinary-backed StorageService.
func NewStorageService(client *cloudinary.Cloudinary) StorageService {
	return &cloudinaryStorage{client: client}
}

// UploadPropertyPhoto stores one photo under the property's folder and
// returns its public URL.
func (s *cloudinaryStorage) UploadPropertyPhoto(ctx context.Context, propertyID string, file multipart.File, filename string) (string, error) {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	publicID := fmt.Sprintf("properties/%s/%s", propertyID, uuid.New().String())

	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Format:   ext,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
