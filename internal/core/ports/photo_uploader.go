package ports

import "context"

// PhotoUploader stores proof-of-delivery images.
type PhotoUploader interface {
	// Upload stores the image for parcelID and returns its public URL.
	Upload(ctx context.Context, parcelID, contentType string, data []byte) (string, error)
}
