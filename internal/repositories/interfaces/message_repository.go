package interfaces

import (
	"context"

	"gocarpool/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByRide(ctx context.Context, rideID primitive.ObjectID) ([]*models.Message, error)

	// DeleteByRide removes a ride's chat history when the ride is deleted.
	DeleteByRide(ctx context.Context, rideID primitive.ObjectID) error
}
