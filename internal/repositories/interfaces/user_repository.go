package interfaces

import (
	"context"

	"gocarpool/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Denormalized ride lists on the user record.
	AddCreatedRide(ctx context.Context, userID, rideID primitive.ObjectID) error
	AddJoinedRide(ctx context.Context, userID, rideID primitive.ObjectID) error
	RemoveJoinedRide(ctx context.Context, userID, rideID primitive.ObjectID) error
	RemoveRideReferences(ctx context.Context, rideID primitive.ObjectID) error

	// GetSummaries resolves public projections for response expansion.
	GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserSummary, error)
}
