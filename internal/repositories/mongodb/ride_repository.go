package mongodb

import (
	"context"
	"fmt"
	"time"

	"gocarpool/internal/models"
	"gocarpool/internal/repositories/interfaces"
	"gocarpool/internal/services"
	"gocarpool/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type rideRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewRideRepository(db *mongo.Database, cache services.CacheService) interfaces.RideRepository {
	return &rideRepository{
		collection: db.Collection("rides"),
		cache:      cache,
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	now := time.Now()
	ride.CreatedAt = now
	ride.UpdatedAt = now

	if ride.Passengers == nil {
		ride.Passengers = []models.Passenger{}
	}
	ride.RecomputeSeats()

	_, err := r.collection.InsertOne(ctx, ride)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	if ride.Status == models.RideStatusActive {
		r.cacheRide(ctx, ride)
	}

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	if ride := r.getRideFromCache(ctx, id.Hex()); ride != nil {
		return ride, nil
	}

	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	if ride.Status == models.RideStatusActive {
		r.cacheRide(ctx, &ride)
	}

	return &ride, nil
}

func (r *rideRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update ride: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateRideCache(ctx, id.Hex())

	return nil
}

func (r *rideRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete ride: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateRideCache(ctx, id.Hex())

	return nil
}

func (r *rideRepository) List(ctx context.Context, filter *models.RideFilter, pagination *utils.PaginationParams) ([]*models.Ride, int64, error) {
	query := buildListFilter(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rides: %w", err)
	}

	opts := pagination.GetFindOptions(bson.D{
		{Key: "date", Value: 1},
		{Key: "time", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rides: %w", err)
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	if err := cursor.All(ctx, &rides); err != nil {
		return nil, 0, fmt.Errorf("failed to decode rides: %w", err)
	}

	return rides, total, nil
}

// buildListFilter translates the public listing filter into a Mongo query.
// Only active rides are listed; gender preference matches rides open to
// anyone or to the requested gender specifically.
func buildListFilter(filter *models.RideFilter) bson.M {
	query := bson.M{"status": models.RideStatusActive}
	if filter == nil {
		return query
	}

	if filter.Destination != "" {
		query["destination"] = bson.M{"$regex": filter.Destination, "$options": "i"}
	}

	if filter.Date != nil {
		day := filter.Date.Truncate(24 * time.Hour)
		query["date"] = bson.M{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		}
	}

	if filter.GenderPreference != "" && filter.GenderPreference != models.GenderPreferenceAny {
		query["$or"] = []bson.M{
			{"gender_preference": models.GenderPreferenceAny},
			{"gender_preference": filter.GenderPreference},
		}
	}

	if filter.MaxCost != nil {
		query["cost_per_person"] = bson.M{"$lte": *filter.MaxCost}
	}

	return query
}

func (r *rideRepository) ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Ride, error) {
	return r.findRides(ctx, bson.M{"driver_id": driverID})
}

func (r *rideRepository) ListByPassenger(ctx context.Context, userID primitive.ObjectID) ([]*models.Ride, error) {
	return r.findRides(ctx, bson.M{"passengers.user_id": userID})
}

func (r *rideRepository) findRides(ctx context.Context, query bson.M) ([]*models.Ride, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rides: %w", err)
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	if err := cursor.All(ctx, &rides); err != nil {
		return nil, fmt.Errorf("failed to decode rides: %w", err)
	}

	return rides, nil
}

// AddPassenger claims a seat in one conditional update so that two concurrent
// joins on the last seat cannot both succeed.
func (r *rideRepository) AddPassenger(ctx context.Context, rideID, userID primitive.ObjectID) (*models.Ride, error) {
	now := time.Now()

	filter := bson.M{
		"_id":                rideID,
		"status":             models.RideStatusActive,
		"available_seats":    bson.M{"$gt": 0},
		"driver_id":          bson.M{"$ne": userID},
		"passengers.user_id": bson.M{"$ne": userID},
	}

	update := bson.M{
		"$push": bson.M{"passengers": models.Passenger{UserID: userID, JoinedAt: now}},
		"$inc":  bson.M{"available_seats": -1},
		"$set":  bson.M{"updated_at": now},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ride models.Ride
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNoSeat
		}
		return nil, fmt.Errorf("failed to add passenger: %w", err)
	}

	r.invalidateRideCache(ctx, rideID.Hex())

	return &ride, nil
}

func (r *rideRepository) RemovePassenger(ctx context.Context, rideID, userID primitive.ObjectID) (*models.Ride, error) {
	now := time.Now()

	// Only increment the seat count if the pull actually removed someone,
	// otherwise leaving twice would inflate availability.
	filter := bson.M{
		"_id":                rideID,
		"passengers.user_id": userID,
	}

	update := bson.M{
		"$pull": bson.M{"passengers": bson.M{"user_id": userID}},
		"$inc":  bson.M{"available_seats": 1},
		"$set":  bson.M{"updated_at": now},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ride models.Ride
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Not a passenger; return the ride unchanged.
			return r.GetByID(ctx, rideID)
		}
		return nil, fmt.Errorf("failed to remove passenger: %w", err)
	}

	r.invalidateRideCache(ctx, rideID.Hex())

	return &ride, nil
}

// Cache helpers. Failures here are deliberately swallowed; the database is
// always the source of truth.

func (r *rideRepository) cacheRide(ctx context.Context, ride *models.Ride) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Set(ctx, rideCacheKey(ride.ID.Hex()), ride, utils.RideCacheTTL)
}

func (r *rideRepository) getRideFromCache(ctx context.Context, id string) *models.Ride {
	if r.cache == nil {
		return nil
	}

	var ride models.Ride
	if err := r.cache.Get(ctx, rideCacheKey(id), &ride); err != nil {
		return nil
	}

	return &ride
}

func (r *rideRepository) invalidateRideCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, rideCacheKey(id))
}

func rideCacheKey(id string) string {
	return "ride:" + id
}
