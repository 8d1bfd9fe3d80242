// Package photostorage uploads proof-of-delivery images to an S3-style object
// store over plain HTTP PUT.
package photostorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/httpclient"

	"github.com/google/uuid"
)

// MaxPhotoSize is the largest accepted image, in bytes.
const MaxPhotoSize = 10 << 20

var _ ports.PhotoUploader = (*Client)(nil)

// Config locates the bucket.
type Config struct {
	// Endpoint is the object store base URL, e.g. https://storage.example.com.
	Endpoint string
	Bucket   string
	Token    string

	// PublicBaseURL prefixes returned URLs; defaults to Endpoint.
	PublicBaseURL string

	Timeout time.Duration
}

// Client implements ports.PhotoUploader.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates an uploader. A nil httpClient selects a logging client
// with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = cfg.Endpoint
	}
	if httpClient == nil {
		httpClient = httpclient.NewClient(cfg.Timeout, nil)
	}
	return &Client{cfg: cfg, http: httpClient}
}

// Upload stores data as deliveries/<parcelID>/<uuid>.<ext> and returns the
// public URL of the object.
func (c *Client) Upload(ctx context.Context, parcelID, contentType string, data []byte) (string, error) {
	if strings.TrimSpace(parcelID) == "" {
		return "", errs.NewValueIsRequiredError("parcelId")
	}
	if len(data) == 0 {
		return "", errs.NewValueIsRequiredError("photo")
	}
	if len(data) > MaxPhotoSize {
		return "", errs.NewValueIsInvalidErrorWithCause("photo", fmt.Errorf("%d bytes exceeds limit of %d", len(data), MaxPhotoSize))
	}

	ext, err := extension(contentType)
	if err != nil {
		return "", err
	}

	object := fmt.Sprintf("deliveries/%s/%s%s", parcelID, uuid.NewString(), ext)
	target := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Bucket, object)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.NewStoreUnavailableError("upload photo", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errs.NewStoreUnavailableError("upload photo",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.cfg.PublicBaseURL, "/"), c.cfg.Bucket, object), nil
}

func extension(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("contentType", err)
	}

	switch mediaType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	case "image/heic":
		return ".heic", nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("contentType", fmt.Errorf("unsupported image type %q", mediaType))
	}
}
