package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"gocarpool/internal/models"
	"gocarpool/internal/repositories/interfaces"
	"gocarpool/internal/utils"
	"gocarpool/pkg/logger"
	"gocarpool/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "json"})
	log.SetOutput(io.Discard)
	return log
}

// fakeUserRepo is an in-memory stand-in for the mongo user repository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return interfaces.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["name"].(string); ok {
		user.Name = v
	}
	if v, ok := updates["phone"].(string); ok {
		user.Phone = v
	}
	if v, ok := updates["profile_picture"].(string); ok {
		user.ProfilePicture = v
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) AddCreatedRide(_ context.Context, userID, rideID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.CreatedRides = append(user.CreatedRides, rideID)
	user.TotalRides++
	return nil
}

func (r *fakeUserRepo) AddJoinedRide(_ context.Context, userID, rideID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return interfaces.ErrNotFound
	}
	for _, id := range user.JoinedRides {
		if id == rideID {
			return nil
		}
	}
	user.JoinedRides = append(user.JoinedRides, rideID)
	return nil
}

func (r *fakeUserRepo) RemoveJoinedRide(_ context.Context, userID, rideID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.JoinedRides = removeID(user.JoinedRides, rideID)
	return nil
}

func (r *fakeUserRepo) RemoveRideReferences(_ context.Context, rideID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		user.CreatedRides = removeID(user.CreatedRides, rideID)
		user.JoinedRides = removeID(user.JoinedRides, rideID)
	}
	return nil
}

func (r *fakeUserRepo) GetSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[primitive.ObjectID]*models.UserSummary)
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out[id] = user.Summary()
		}
	}
	return out, nil
}

func removeID(ids []primitive.ObjectID, target primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// fakeRideRepo mirrors the conditional seat-claim semantics of the mongo
// implementation.
type fakeRideRepo struct {
	mu    sync.Mutex
	rides map[primitive.ObjectID]*models.Ride
}

func newFakeRideRepo() *fakeRideRepo {
	return &fakeRideRepo{rides: make(map[primitive.ObjectID]*models.Ride)}
}

func (r *fakeRideRepo) Create(_ context.Context, ride *models.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ride.ID.IsZero() {
		ride.ID = primitive.NewObjectID()
	}
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = ride.CreatedAt
	ride.RecomputeSeats()
	r.rides[ride.ID] = ride
	return nil
}

func (r *fakeRideRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride, ok := r.rides[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *ride
	copied.Passengers = append([]models.Passenger(nil), ride.Passengers...)
	return &copied, nil
}

func (r *fakeRideRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride, ok := r.rides[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if v, ok := updates["destination"].(string); ok {
		ride.Destination = v
	}
	if v, ok := updates["start_location"].(string); ok {
		ride.StartLocation = v
	}
	if v, ok := updates["date"].(time.Time); ok {
		ride.Date = v
	}
	if v, ok := updates["time"].(string); ok {
		ride.Time = v
	}
	if v, ok := updates["total_seats"].(int); ok {
		ride.TotalSeats = v
	}
	if v, ok := updates["available_seats"].(int); ok {
		ride.AvailableSeats = v
	}
	if v, ok := updates["cost_per_person"].(float64); ok {
		ride.CostPerPerson = v
	}
	if v, ok := updates["gender_preference"].(models.GenderPreference); ok {
		ride.GenderPreference = v
	}
	if v, ok := updates["status"].(models.RideStatus); ok {
		ride.Status = v
	}
	if v, ok := updates["description"].(string); ok {
		ride.Description = v
	}
	if v, ok := updates["vehicle_info"].(*models.VehicleInfo); ok {
		ride.VehicleInfo = v
	}
	ride.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRideRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rides[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.rides, id)
	return nil
}

func (r *fakeRideRepo) List(_ context.Context, filter *models.RideFilter, pagination *utils.PaginationParams) ([]*models.Ride, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Ride
	for _, ride := range r.rides {
		if ride.Status != models.RideStatusActive {
			continue
		}
		copied := *ride
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, int64(len(out)), nil
}

func (r *fakeRideRepo) ListByDriver(_ context.Context, driverID primitive.ObjectID) ([]*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Ride
	for _, ride := range r.rides {
		if ride.DriverID == driverID {
			copied := *ride
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRideRepo) ListByPassenger(_ context.Context, userID primitive.ObjectID) ([]*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Ride
	for _, ride := range r.rides {
		if ride.HasPassenger(userID) {
			copied := *ride
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRideRepo) AddPassenger(_ context.Context, rideID, userID primitive.ObjectID) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride, ok := r.rides[rideID]
	if !ok {
		return nil, interfaces.ErrNoSeat
	}
	if ride.Status != models.RideStatusActive || ride.AvailableSeats <= 0 ||
		ride.DriverID == userID || ride.HasPassenger(userID) {
		return nil, interfaces.ErrNoSeat
	}
	ride.Passengers = append(ride.Passengers, models.Passenger{UserID: userID, JoinedAt: time.Now()})
	ride.AvailableSeats--
	ride.UpdatedAt = time.Now()
	copied := *ride
	return &copied, nil
}

func (r *fakeRideRepo) RemovePassenger(_ context.Context, rideID, userID primitive.ObjectID) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride, ok := r.rides[rideID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if ride.HasPassenger(userID) {
		kept := ride.Passengers[:0]
		for _, p := range ride.Passengers {
			if p.UserID != userID {
				kept = append(kept, p)
			}
		}
		ride.Passengers = kept
		ride.AvailableSeats++
		ride.UpdatedAt = time.Now()
	}
	copied := *ride
	return &copied, nil
}

// fakeMessageRepo stores messages in insertion order.
type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}
	message.CreatedAt = time.Now()
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) ListByRide(_ context.Context, rideID primitive.ObjectID) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Message
	for _, msg := range r.messages {
		if msg.RideID == rideID {
			copied := *msg
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) DeleteByRide(_ context.Context, rideID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, msg := range r.messages {
		if msg.RideID != rideID {
			kept = append(kept, msg)
		}
	}
	r.messages = kept
	return nil
}

// fakeStorage records uploads without touching disk.
type fakeStorage struct {
	mu      sync.Mutex
	uploads map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(_ context.Context, req *storage.UploadRequest) (*storage.UploadResponse, error) {
	data, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[req.Key] = data
	return &storage.UploadResponse{
		Key:  req.Key,
		URL:  "https://cdn.example.com/" + req.Key,
		Size: int64(len(data)),
	}, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, key)
	return nil
}

func (s *fakeStorage) GetURL(key string) string {
	return "https://cdn.example.com/" + key
}
