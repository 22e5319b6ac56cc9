package interfaces

import (
	"context"

	"gocarpool/internal/models"
	"gocarpool/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideRepository interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, filter *models.RideFilter, pagination *utils.PaginationParams) ([]*models.Ride, int64, error)
	ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Ride, error)
	ListByPassenger(ctx context.Context, userID primitive.ObjectID) ([]*models.Ride, error)

	// AddPassenger performs the seat claim as one conditional update: the ride
	// must be active with a free seat, and the user must be neither the driver
	// nor already aboard. Returns ErrNoSeat when the condition fails.
	AddPassenger(ctx context.Context, rideID, userID primitive.ObjectID) (*models.Ride, error)

	// RemovePassenger is idempotent; removing an absent passenger returns the
	// ride unchanged.
	RemovePassenger(ctx context.Context, rideID, userID primitive.ObjectID) (*models.Ride, error)
}
