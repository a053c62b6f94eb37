package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	"lexaid/utils"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStorage stores publicly readable objects in a Google Cloud Storage bucket.
type GCSStorage struct {
	client *gcs.Client
	bucket string
}

func NewGCSStorage(ctx context.Context, credentialsFile, bucket string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket: %w", utils.ErrServiceUnavailable)
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

// PublicURL is the download URL of a public object.
func PublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, (&url.URL{Path: object}).EscapedPath())
}

func (s *GCSStorage) Upload(ctx context.Context, folder, name, contentType string, r io.Reader) (*Object, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("gcs: %w", utils.ErrServiceUnavailable)
	}
	objectPath := path.Join(folder, name)
	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ACL = []gcs.ACLRule{{Entity: gcs.AllUsers, Role: gcs.RoleReader}}
	w.ContentType = contentType
	w.CacheControl = "public, max-age=300"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return nil, &utils.RemoteError{Service: "gcs", Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &utils.RemoteError{Service: "gcs", Err: err}
	}
	return &Object{PublicID: objectPath, URL: PublicURL(s.bucket, objectPath)}, nil
}

func (s *GCSStorage) Delete(ctx context.Context, publicID string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("gcs: %w", utils.ErrServiceUnavailable)
	}
	err := s.client.Bucket(s.bucket).Object(publicID).Delete(ctx)
	if err != nil && err != gcs.ErrObjectNotExist {
		return &utils.RemoteError{Service: "gcs", Err: err}
	}
	return nil
}

func (s *GCSStorage) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
