package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"lexaid/models"
	"lexaid/services/user"
	"lexaid/utils"

	"go.uber.org/zap"
)

const photoFolder = "lexaid/profile-photos"

var photoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// SniffPhoto checks that r starts with a supported image and returns its
// content type along with a reader that still yields the whole file.
func SniffPhoto(r io.Reader) (string, io.Reader, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", nil, err
	}
	if len(head) == 0 {
		return "", nil, utils.NewValidationError("photo", "file is empty")
	}
	contentType := http.DetectContentType(head)
	if !photoTypes[contentType] {
		return "", nil, utils.NewValidationError("photo", fmt.Sprintf("unsupported image type %s", contentType))
	}
	return contentType, br, nil
}

// PhotoService replaces a user's profile photo.
type PhotoService struct {
	Storage  StorageService
	Profiles user.ProfileService
}

// SetProfilePhoto uploads the image and points the profile at it. size is the
// declared upload size and is checked before anything is read.
func (s *PhotoService) SetProfilePhoto(ctx context.Context, uid string, size int64, r io.Reader) (*models.UserProfile, error) {
	if size > utils.MaxPhotoUploadBytes {
		return nil, utils.NewValidationError("photo", "image must be 5MB or smaller")
	}
	contentType, body, err := SniffPhoto(io.LimitReader(r, utils.MaxPhotoUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if s.Storage == nil || s.Profiles == nil {
		return nil, fmt.Errorf("photo storage: %w", utils.ErrServiceUnavailable)
	}

	obj, err := s.Storage.Upload(ctx, photoFolder, uid, contentType, body)
	if err != nil {
		utils.GetLogger().Warn("Profile photo upload failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	return s.Profiles.UpdateProfile(ctx, uid, models.ProfileSettings{PhotoURL: &obj.URL})
}
