package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"clientbook/backend/internal/models"
	"clientbook/backend/internal/storage"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

var avatarContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// AvatarService stores profile images in the object store and records
// the public URL on the account. The object key is derived from the
// email so a re-upload overwrites the previous avatar.
type AvatarService struct {
	users UserStore
	store *storage.ObjectStore
	log   zerolog.Logger
}

func NewAvatarService(users UserStore, store *storage.ObjectStore, log zerolog.Logger) *AvatarService {
	return &AvatarService{
		users: users,
		store: store,
		log:   log,
	}
}

func (s *AvatarService) Upload(ctx context.Context, user models.User, file multipart.File, header *multipart.FileHeader) (models.User, error) {
	if file == nil || header == nil {
		return models.User{}, errors.New("invalid file payload")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := avatarContentTypes[ext]
	if !ok {
		return models.User{}, ErrUnsupportedImage
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return models.User{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return models.User{}, errors.New("empty file")
	}

	key := avatarKey(user.Email) + ext
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return models.User{}, err
	}

	url := s.store.PublicURL(key)
	if err := s.users.UpdateAvatar(ctx, user.Email, url); err != nil {
		return models.User{}, err
	}

	updated, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return models.User{}, err
	}
	return updated, nil
}

func avatarKey(email string) string {
	sum := sha256.Sum256([]byte(email))
	return "avatars/" + hex.EncodeToString(sum[:])[:10]
}
