package storage

import (
	"context"
	"mime/multipart"
)

// StorageService uploads property media to the CDN and returns public URLs.
type StorageService interface {
	// UploadPropertyPhoto stores one photo under the property's folder and
	// returns its public URL.
	UploadPropertyPhoto(ctx context.Context, propertyID string, file multipart.File, filename string) (string, error)
}
