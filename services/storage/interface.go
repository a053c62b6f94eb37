// Package storage keeps user-uploaded media (profile photos) in Cloudinary or
// Google Cloud Storage.
package storage

import (
	"context"
	"io"
)

// Object describes a stored file.
type Object struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// StorageService uploads and removes public media.
type StorageService interface {
	Upload(ctx context.Context, folder, name, contentType string, r io.Reader) (*Object, error)
	Delete(ctx context.Context, publicID string) error
}
