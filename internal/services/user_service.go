package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gocarpool/internal/models"
	"gocarpool/internal/repositories/interfaces"
	"gocarpool/internal/utils"
	"gocarpool/pkg/logger"
	"gocarpool/pkg/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *UpdateProfileRequest) (*models.User, error)
	UploadProfilePicture(ctx context.Context, userID primitive.ObjectID, upload *ProfilePictureUpload) (*models.User, error)
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

type ProfilePictureUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

var allowedPictureExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type userService struct {
	users   interfaces.UserRepository
	storage storage.StorageProvider
	logger  *logger.Logger
}

func NewUserService(users interfaces.UserRepository, provider storage.StorageProvider, log *logger.Logger) UserService {
	return &userService{
		users:   users,
		storage: provider,
		logger:  log,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *UpdateProfileRequest) (*models.User, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = utils.SanitizeString(*req.Name)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}

	if len(updates) > 0 {
		if err := s.users.Update(ctx, userID, updates); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *userService) UploadProfilePicture(ctx context.Context, userID primitive.ObjectID, upload *ProfilePictureUpload) (*models.User, error) {
	if upload.Size > utils.MaxProfilePictureSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedPictureExtensions[ext] {
		return nil, ErrUnsupportedFile
	}

	key := fmt.Sprintf("profiles/%s/%s%s", userID.Hex(), uuid.NewString(), ext)

	resp, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      upload.Reader,
		ContentType: upload.ContentType,
		Size:        upload.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("upload profile picture: %w", err)
	}

	if err := s.users.Update(ctx, userID, map[string]interface{}{
		"profile_picture": resp.URL,
	}); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.logger.LogUserAction(userID, "profile_picture_uploaded", map[string]interface{}{
		"key":  resp.Key,
		"size": resp.Size,
	})

	return s.GetProfile(ctx, userID)
}
