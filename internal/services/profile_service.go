package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"jamride/internal/models"
	"jamride/pkg/logger"
	"jamride/pkg/storage"
)

// ProfileUpdater pushes profile changes back to the identity provider so the
// next token issued carries the new avatar.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, uid, displayName, photoURL string) error
}

type ProfileService interface {
	// UpdateAvatar stores a new profile picture under a fresh
	// timestamped key and records its URL with the identity provider.
	UpdateAvatar(ctx context.Context, user models.Identity, filename, contentType string, size int64, reader io.Reader) (string, error)
}

type profileService struct {
	storage  storage.Provider
	identity ProfileUpdater
	logger   *logger.Logger
}

func NewProfileService(storageProvider storage.Provider, identityUpdater ProfileUpdater, log *logger.Logger) ProfileService {
	return &profileService{
		storage:  storageProvider,
		identity: identityUpdater,
		logger:   log,
	}
}

func (s *profileService) UpdateAvatar(ctx context.Context, user models.Identity, filename, contentType string, size int64, reader io.Reader) (string, error) {
	key := fmt.Sprintf("avatars/%s/%d%s", user.ID, time.Now().UnixNano(), path.Ext(filename))

	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      reader,
		ContentType: contentType,
		Size:        size,
		Metadata:    map[string]string{"user_id": user.ID},
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Error("Avatar upload failed")
		return "", err
	}

	if s.identity != nil {
		if err := s.identity.UpdateProfile(ctx, user.ID, user.Name, uploaded.URL); err != nil {
			// The stored object is still usable; the provider profile just
			// lags until the next successful update.
			s.logger.WithError(err).WithUserID(user.ID).Warn("Identity profile update failed")
		}
	}

	s.logger.WithUserID(user.ID).WithField("key", uploaded.Key).Info("Avatar updated")
	return uploaded.URL, nil
}
