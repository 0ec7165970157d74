// Package upload wraps the file upload endpoints.
package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hoyapp/hoygo/internal/api"
	"github.com/hoyapp/hoygo/internal/models"
)

// MaxImageBytes caps a single image upload at 10 MiB, matching the
// backend's limit so oversized files fail before leaving the device.
const MaxImageBytes = 10 << 20

// ErrTooLarge is returned when an upload exceeds MaxImageBytes.
var ErrTooLarge = fmt.Errorf("file exceeds %d bytes", MaxImageBytes)

// Service uploads images to the Hoy media endpoint.
type Service struct {
	client *api.Client
}

// New creates the upload service.
func New(client *api.Client) *Service {
	return &Service{client: client}
}

func readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	return data, nil
}

// Image uploads a single image and returns its hosted location.
// The content type is sniffed from the data.
func (s *Service) Image(ctx context.Context, fileName string, r io.Reader) (*models.UploadResult, error) {
	data, err := readCapped(r)
	if err != nil {
		return nil, err
	}

	var out models.UploadResult
	contentType := http.DetectContentType(data)
	if err := s.client.Upload(ctx, "/upload/image", "file", fileName, contentType, data, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// File is one named image for a batch upload.
type File struct {
	Name string
	Data io.Reader
}

// PropertyPhotos uploads several images to a listing, in order, and
// returns one result per file. The first failure aborts the batch;
// results for the files already uploaded are returned alongside the
// error so callers can avoid re-sending them.
func (s *Service) PropertyPhotos(ctx context.Context, propertyID string, files []File) ([]models.UploadResult, error) {
	results := make([]models.UploadResult, 0, len(files))
	for _, f := range files {
		res, err := s.PropertyPhoto(ctx, propertyID, f.Name, f.Data)
		if err != nil {
			return results, fmt.Errorf("uploading %s: %w", f.Name, err)
		}
		results = append(results, *res)
	}

	return results, nil
}

// PropertyPhoto uploads an image and attaches it to a listing.
func (s *Service) PropertyPhoto(ctx context.Context, propertyID, fileName string, r io.Reader) (*models.UploadResult, error) {
	data, err := readCapped(r)
	if err != nil {
		return nil, err
	}

	var out models.UploadResult
	contentType := http.DetectContentType(data)
	path := fmt.Sprintf("/upload/property/%s", propertyID)
	if err := s.client.Upload(ctx, path, "file", fileName, contentType, data, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
