package handlers

import (
	"errors"

	"gocarpool/internal/services"
	"gocarpool/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetMe returns the caller's own profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}

// UpdateMe updates the caller's editable profile fields.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request services.UpdateProfileRequest
	if !bindAndValidate(c, &request) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &request)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Profile updated", user)
}

// UploadProfilePicture accepts a multipart "picture" field and stores it.
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		utils.BadRequestResponse(c, "Missing picture file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read picture file")
		return
	}
	defer file.Close()

	user, err := h.userService.UploadProfilePicture(c.Request.Context(), userID, &services.ProfilePictureUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge), errors.Is(err, services.ErrUnsupportedFile):
			utils.BadRequestResponse(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFoundResponse(c, "User")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Profile picture updated", user)
}
