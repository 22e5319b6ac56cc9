package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecomputeSeats(t *testing.T) {
	ride := &Ride{TotalSeats: 3}
	ride.RecomputeSeats()
	assert.Equal(t, 3, ride.AvailableSeats)

	ride.Passengers = append(ride.Passengers,
		Passenger{UserID: primitive.NewObjectID(), JoinedAt: time.Now()},
		Passenger{UserID: primitive.NewObjectID(), JoinedAt: time.Now()},
	)
	ride.RecomputeSeats()
	assert.Equal(t, 1, ride.AvailableSeats)

	// Overfilled rides clamp at zero instead of going negative.
	ride.Passengers = append(ride.Passengers,
		Passenger{UserID: primitive.NewObjectID()},
		Passenger{UserID: primitive.NewObjectID()},
	)
	ride.RecomputeSeats()
	assert.Equal(t, 0, ride.AvailableSeats)
}

func TestHasPassenger(t *testing.T) {
	rider := primitive.NewObjectID()
	ride := &Ride{Passengers: []Passenger{{UserID: rider}}}

	assert.True(t, ride.HasPassenger(rider))
	assert.False(t, ride.HasPassenger(primitive.NewObjectID()))
}

func TestAcceptsGender(t *testing.T) {
	anyRide := &Ride{GenderPreference: GenderPreferenceAny}
	assert.True(t, anyRide.AcceptsGender(GenderMale))
	assert.True(t, anyRide.AcceptsGender(GenderFemale))
	assert.True(t, anyRide.AcceptsGender(GenderOther))

	femaleOnly := &Ride{GenderPreference: GenderPreferenceFemale}
	assert.True(t, femaleOnly.AcceptsGender(GenderFemale))
	assert.False(t, femaleOnly.AcceptsGender(GenderMale))
	assert.False(t, femaleOnly.AcceptsGender(GenderOther))
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, IsValidGender(GenderOther))
	assert.False(t, IsValidGender(Gender("unknown")))

	assert.True(t, IsValidGenderPreference(GenderPreferenceAny))
	assert.False(t, IsValidGenderPreference(GenderPreference("other")))
}
