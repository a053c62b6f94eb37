package storage

import (
	"context"
	"fmt"
	"io"

	"lexaid/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryStorage stores images in a Cloudinary account.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld}
}

// Upload stores r under folder/name, replacing any earlier upload with the
// same name.
func (s *CloudinaryStorage) Upload(ctx context.Context, folder, name, _ string, r io.Reader) (*Object, error) {
	if s == nil || s.cld == nil {
		return nil, fmt.Errorf("cloudinary: %w", utils.ErrServiceUnavailable)
	}
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     name,
		Overwrite:    api.Bool(true),
		ResourceType: "image",
	})
	if err != nil {
		return nil, &utils.RemoteError{Service: "cloudinary", Err: err}
	}
	if result.Error.Message != "" {
		return nil, &utils.RemoteError{Service: "cloudinary", Err: fmt.Errorf("%s", result.Error.Message)}
	}
	if result.PublicID == "" {
		return nil, &utils.RemoteError{Service: "cloudinary", Err: fmt.Errorf("no public ID returned")}
	}
	utils.GetLogger().Debug("Uploaded image", zap.String("publicID", result.PublicID))
	return &Object{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary: %w", utils.ErrServiceUnavailable)
	}
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return &utils.RemoteError{Service: "cloudinary", Err: err}
	}
	return nil
}
