package handlers

import (
	"errors"

	"gocarpool/internal/middleware"
	"gocarpool/internal/models"
	"gocarpool/internal/services"
	"gocarpool/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUser returns the live user resolved by the auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		utils.UnauthorizedResponse(c)
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok {
		utils.UnauthorizedResponse(c)
		return nil, false
	}

	return user, true
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	id, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	return id, true
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}

	return id, true
}

// bindAndValidate decodes the JSON body and runs struct validation, writing
// the error response itself on failure.
func bindAndValidate(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return false
	}

	if err := utils.ValidateStruct(dest); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return false
	}

	return true
}

// respondRideError maps service errors to HTTP responses.
func respondRideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRideNotFound):
		utils.NotFoundResponse(c, "Ride")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "User")
	case errors.Is(err, services.ErrOwnRide),
		errors.Is(err, services.ErrRideNotActive),
		errors.Is(err, services.ErrRideFull),
		errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, services.ErrSeatConflict),
		errors.Is(err, services.ErrGenderMismatch),
		errors.Is(err, services.ErrSeatsBelowLoad),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPreference),
		errors.Is(err, services.ErrInvalidMessage):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrNotDriver),
		errors.Is(err, services.ErrNotParticipant):
		utils.ForbiddenResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}
