package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideStatus string
type GenderPreference string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"

	GenderPreferenceAny    GenderPreference = "any"
	GenderPreferenceMale   GenderPreference = "male"
	GenderPreferenceFemale GenderPreference = "female"

	MinSeats = 1
	MaxSeats = 8
)

type Ride struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID         primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	Destination      string             `json:"destination" bson:"destination" validate:"required"`
	StartLocation    string             `json:"start_location" bson:"start_location" validate:"required"`
	Date             time.Time          `json:"date" bson:"date" validate:"required"`
	Time             string             `json:"time" bson:"time" validate:"required"`
	TotalSeats       int                `json:"total_seats" bson:"total_seats" validate:"required,min=1,max=8"`
	AvailableSeats   int                `json:"available_seats" bson:"available_seats"`
	CostPerPerson    float64            `json:"cost_per_person" bson:"cost_per_person" validate:"min=0"`
	GenderPreference GenderPreference   `json:"gender_preference" bson:"gender_preference" default:"any"`
	Passengers       []Passenger        `json:"passengers" bson:"passengers"`
	Status           RideStatus         `json:"status" bson:"status" default:"active"`
	Description      string             `json:"description" bson:"description"`
	VehicleInfo      *VehicleInfo       `json:"vehicle_info,omitempty" bson:"vehicle_info,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

type Passenger struct {
	UserID   primitive.ObjectID `json:"user_id" bson:"user_id"`
	JoinedAt time.Time          `json:"joined_at" bson:"joined_at"`
}

type VehicleInfo struct {
	Make         string `json:"make,omitempty" bson:"make,omitempty"`
	Model        string `json:"model,omitempty" bson:"model,omitempty"`
	Color        string `json:"color,omitempty" bson:"color,omitempty"`
	LicensePlate string `json:"license_plate,omitempty" bson:"license_plate,omitempty"`
}

// RideFilter narrows the public ride listing. Zero values mean "no filter".
type RideFilter struct {
	Destination      string
	Date             *time.Time
	GenderPreference GenderPreference
	MaxCost          *float64
}

// PassengerDetail is a passenger entry with the user record expanded.
type PassengerDetail struct {
	User     *UserSummary `json:"user"`
	JoinedAt time.Time    `json:"joined_at"`
}

// RideDetail is a ride with driver and passengers expanded for responses.
type RideDetail struct {
	Ride
	Driver           *UserSummary      `json:"driver"`
	PassengerDetails []PassengerDetail `json:"passenger_details"`
	JoinedMembers    int               `json:"joined_members"`
}

// HasPassenger reports whether the user currently occupies a seat.
func (r *Ride) HasPassenger(userID primitive.ObjectID) bool {
	for _, p := range r.Passengers {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func (r *Ride) IsDriver(userID primitive.ObjectID) bool {
	return r.DriverID == userID
}

// RecomputeSeats restores the seat invariant: available = total - passengers.
func (r *Ride) RecomputeSeats() {
	r.AvailableSeats = r.TotalSeats - len(r.Passengers)
	if r.AvailableSeats < 0 {
		r.AvailableSeats = 0
	}
}

// AcceptsGender reports whether the ride's preference admits the given gender.
func (r *Ride) AcceptsGender(g Gender) bool {
	return r.GenderPreference == GenderPreferenceAny || string(r.GenderPreference) == string(g)
}

func IsValidGenderPreference(p GenderPreference) bool {
	switch p {
	case GenderPreferenceAny, GenderPreferenceMale, GenderPreferenceFemale:
		return true
	}
	return false
}
