package services

import (
	"context"
	"errors"
	"time"

	"gocarpool/internal/models"
	"gocarpool/internal/repositories/interfaces"
	"gocarpool/internal/utils"
	"gocarpool/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideService interface {
	Create(ctx context.Context, driverID primitive.ObjectID, req *CreateRideRequest) (*models.RideDetail, error)
	Get(ctx context.Context, rideID primitive.ObjectID) (*models.RideDetail, error)
	List(ctx context.Context, filter *models.RideFilter, pagination *utils.PaginationParams) ([]*models.RideDetail, int64, error)
	Join(ctx context.Context, rideID primitive.ObjectID, caller *models.User) (*models.RideDetail, error)
	Leave(ctx context.Context, rideID, userID primitive.ObjectID) (*models.RideDetail, error)
	Update(ctx context.Context, rideID, callerID primitive.ObjectID, req *UpdateRideRequest) (*models.RideDetail, error)
	Delete(ctx context.Context, rideID, callerID primitive.ObjectID) error
	ListCreated(ctx context.Context, driverID primitive.ObjectID) ([]*models.RideDetail, error)
	ListJoined(ctx context.Context, userID primitive.ObjectID) ([]*models.RideDetail, error)
}

type CreateRideRequest struct {
	Destination      string                  `json:"destination" validate:"required,min=1,max=200"`
	StartLocation    string                  `json:"start_location" validate:"required,min=1,max=200"`
	Date             string                  `json:"date" validate:"required"`
	Time             string                  `json:"time" validate:"required,time_of_day"`
	TotalSeats       int                     `json:"total_seats" validate:"required,min=1,max=8"`
	CostPerPerson    float64                 `json:"cost_per_person" validate:"min=0"`
	GenderPreference models.GenderPreference `json:"gender_preference" validate:"gender_preference"`
	Description      string                  `json:"description" validate:"max=1000"`
	VehicleInfo      *models.VehicleInfo     `json:"vehicle_info"`
}

// UpdateRideRequest carries the driver-editable fields. Driver, passengers,
// and seat accounting are deliberately not representable here, so an update
// payload cannot hijack ownership or the passenger list.
type UpdateRideRequest struct {
	Destination      *string                  `json:"destination" validate:"omitempty,min=1,max=200"`
	StartLocation    *string                  `json:"start_location" validate:"omitempty,min=1,max=200"`
	Date             *string                  `json:"date"`
	Time             *string                  `json:"time" validate:"omitempty,time_of_day"`
	TotalSeats       *int                     `json:"total_seats" validate:"omitempty,min=1,max=8"`
	CostPerPerson    *float64                 `json:"cost_per_person" validate:"omitempty,min=0"`
	GenderPreference *models.GenderPreference `json:"gender_preference" validate:"omitempty,gender_preference"`
	Status           *models.RideStatus       `json:"status"`
	Description      *string                  `json:"description" validate:"omitempty,max=1000"`
	VehicleInfo      *models.VehicleInfo      `json:"vehicle_info"`
}

type rideService struct {
	rides    interfaces.RideRepository
	users    interfaces.UserRepository
	messages interfaces.MessageRepository
	logger   *logger.Logger
}

func NewRideService(rides interfaces.RideRepository, users interfaces.UserRepository, messages interfaces.MessageRepository, log *logger.Logger) RideService {
	return &rideService{
		rides:    rides,
		users:    users,
		messages: messages,
		logger:   log,
	}
}

func (s *rideService) Create(ctx context.Context, driverID primitive.ObjectID, req *CreateRideRequest) (*models.RideDetail, error) {
	date, err := ParseRideDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	pref := req.GenderPreference
	if pref == "" {
		pref = models.GenderPreferenceAny
	}

	ride := &models.Ride{
		DriverID:         driverID,
		Destination:      utils.SanitizeString(req.Destination),
		StartLocation:    utils.SanitizeString(req.StartLocation),
		Date:             date,
		Time:             req.Time,
		TotalSeats:       req.TotalSeats,
		AvailableSeats:   req.TotalSeats,
		CostPerPerson:    req.CostPerPerson,
		GenderPreference: pref,
		Status:           models.RideStatusActive,
		Description:      utils.SanitizeString(req.Description),
		VehicleInfo:      req.VehicleInfo,
	}

	if err := s.rides.Create(ctx, ride); err != nil {
		return nil, err
	}

	if err := s.users.AddCreatedRide(ctx, driverID, ride.ID); err != nil {
		// The ride exists; the denormalized list is best-effort.
		s.logger.WithError(err).WithRideID(ride.ID).Warn("Failed to record created ride on user")
	}

	s.logger.LogRideEvent(ride.ID, "created", map[string]interface{}{
		"driver_id":   driverID.Hex(),
		"total_seats": ride.TotalSeats,
	})

	return s.expandOne(ctx, ride)
}

func (s *rideService) Get(ctx context.Context, rideID primitive.ObjectID) (*models.RideDetail, error) {
	ride, err := s.getRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	return s.expandOne(ctx, ride)
}

func (s *rideService) List(ctx context.Context, filter *models.RideFilter, pagination *utils.PaginationParams) ([]*models.RideDetail, int64, error) {
	rides, total, err := s.rides.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, err
	}

	details, err := s.expand(ctx, rides)
	if err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

func (s *rideService) Join(ctx context.Context, rideID primitive.ObjectID, caller *models.User) (*models.RideDetail, error) {
	ride, err := s.getRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	// Precise rejections first; the conditional update below is the authority
	// under concurrency.
	switch {
	case ride.IsDriver(caller.ID):
		return nil, ErrOwnRide
	case ride.Status != models.RideStatusActive:
		return nil, ErrRideNotActive
	case ride.HasPassenger(caller.ID):
		return nil, ErrAlreadyJoined
	case ride.AvailableSeats <= 0:
		return nil, ErrRideFull
	case !ride.AcceptsGender(caller.Gender):
		return nil, ErrGenderMismatch
	}

	updated, err := s.rides.AddPassenger(ctx, rideID, caller.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoSeat) {
			// Lost the race for the last seat, or state changed underneath us.
			return nil, ErrSeatConflict
		}
		return nil, err
	}

	if err := s.users.AddJoinedRide(ctx, caller.ID, rideID); err != nil {
		s.logger.WithError(err).WithRideID(rideID).Warn("Failed to record joined ride on user")
	}

	s.logger.LogRideEvent(rideID, "passenger_joined", map[string]interface{}{
		"user_id":         caller.ID.Hex(),
		"available_seats": updated.AvailableSeats,
	})

	return s.expandOne(ctx, updated)
}

func (s *rideService) Leave(ctx context.Context, rideID, userID primitive.ObjectID) (*models.RideDetail, error) {
	// Idempotent: leaving a ride the caller never joined returns the ride
	// unchanged.
	ride, err := s.rides.RemovePassenger(ctx, rideID, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}

	if err := s.users.RemoveJoinedRide(ctx, userID, rideID); err != nil {
		s.logger.WithError(err).WithRideID(rideID).Warn("Failed to remove joined ride from user")
	}

	s.logger.LogRideEvent(rideID, "passenger_left", map[string]interface{}{
		"user_id": userID.Hex(),
	})

	return s.expandOne(ctx, ride)
}

func (s *rideService) Update(ctx context.Context, rideID, callerID primitive.ObjectID, req *UpdateRideRequest) (*models.RideDetail, error) {
	ride, err := s.getRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if !ride.IsDriver(callerID) {
		return nil, ErrNotDriver
	}

	updates := make(map[string]interface{})

	if req.Destination != nil {
		updates["destination"] = utils.SanitizeString(*req.Destination)
	}
	if req.StartLocation != nil {
		updates["start_location"] = utils.SanitizeString(*req.StartLocation)
	}
	if req.Date != nil {
		date, err := ParseRideDate(*req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		updates["date"] = date
	}
	if req.Time != nil {
		updates["time"] = *req.Time
	}
	if req.TotalSeats != nil {
		if *req.TotalSeats < len(ride.Passengers) {
			return nil, ErrSeatsBelowLoad
		}
		updates["total_seats"] = *req.TotalSeats
		updates["available_seats"] = *req.TotalSeats - len(ride.Passengers)
	}
	if req.CostPerPerson != nil {
		updates["cost_per_person"] = *req.CostPerPerson
	}
	if req.GenderPreference != nil {
		if !models.IsValidGenderPreference(*req.GenderPreference) {
			return nil, ErrInvalidPreference
		}
		updates["gender_preference"] = *req.GenderPreference
	}
	if req.Status != nil {
		switch *req.Status {
		case models.RideStatusActive, models.RideStatusCompleted, models.RideStatusCancelled:
			updates["status"] = *req.Status
		default:
			return nil, ErrInvalidStatus
		}
	}
	if req.Description != nil {
		updates["description"] = utils.SanitizeString(*req.Description)
	}
	if req.VehicleInfo != nil {
		updates["vehicle_info"] = req.VehicleInfo
	}

	if len(updates) > 0 {
		if err := s.rides.Update(ctx, rideID, updates); err != nil {
			return nil, err
		}
	}

	updated, err := s.getRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	s.logger.LogRideEvent(rideID, "updated", nil)

	return s.expandOne(ctx, updated)
}

func (s *rideService) Delete(ctx context.Context, rideID, callerID primitive.ObjectID) error {
	ride, err := s.getRide(ctx, rideID)
	if err != nil {
		return err
	}

	if !ride.IsDriver(callerID) {
		return ErrNotDriver
	}

	// Cascade: chat history and denormalized user references go with the ride.
	if err := s.messages.DeleteByRide(ctx, rideID); err != nil {
		return err
	}
	if err := s.users.RemoveRideReferences(ctx, rideID); err != nil {
		return err
	}
	if err := s.rides.Delete(ctx, rideID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrRideNotFound
		}
		return err
	}

	s.logger.LogRideEvent(rideID, "deleted", map[string]interface{}{
		"driver_id": callerID.Hex(),
	})

	return nil
}

func (s *rideService) ListCreated(ctx context.Context, driverID primitive.ObjectID) ([]*models.RideDetail, error) {
	rides, err := s.rides.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	return s.expand(ctx, rides)
}

func (s *rideService) ListJoined(ctx context.Context, userID primitive.ObjectID) ([]*models.RideDetail, error) {
	// Membership truth lives on the ride documents, not the user's
	// denormalized list.
	rides, err := s.rides.ListByPassenger(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.expand(ctx, rides)
}

func (s *rideService) getRide(ctx context.Context, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}

	return ride, nil
}

func (s *rideService) expandOne(ctx context.Context, ride *models.Ride) (*models.RideDetail, error) {
	details, err := s.expand(ctx, []*models.Ride{ride})
	if err != nil {
		return nil, err
	}

	return details[0], nil
}

// expand resolves driver and passenger summaries for a batch of rides with a
// single user lookup.
func (s *rideService) expand(ctx context.Context, rides []*models.Ride) ([]*models.RideDetail, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, ride := range rides {
		idSet[ride.DriverID] = struct{}{}
		for _, p := range ride.Passengers {
			idSet[p.UserID] = struct{}{}
		}
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	summaries, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*models.RideDetail, 0, len(rides))
	for _, ride := range rides {
		detail := &models.RideDetail{
			Ride:             *ride,
			Driver:           summaries[ride.DriverID],
			PassengerDetails: make([]models.PassengerDetail, 0, len(ride.Passengers)),
			JoinedMembers:    len(ride.Passengers),
		}

		for _, p := range ride.Passengers {
			detail.PassengerDetails = append(detail.PassengerDetails, models.PassengerDetail{
				User:     summaries[p.UserID],
				JoinedAt: p.JoinedAt,
			})
		}

		details = append(details, detail)
	}

	return details, nil
}

// ParseRideDate accepts the wire formats clients send for ride dates: a bare
// calendar day or a full RFC 3339 timestamp.
func ParseRideDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, value)
}
