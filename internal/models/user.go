package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type User struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name" validate:"required,min=2,max=50"`
	Email          string               `json:"email" bson:"email" validate:"required,email"`
	Password       string               `json:"-" bson:"password"`
	Gender         Gender               `json:"gender" bson:"gender" validate:"required,gender"`
	Phone          string               `json:"phone" bson:"phone" validate:"required"`
	ProfilePicture string               `json:"profile_picture" bson:"profile_picture"`
	Rating         float64              `json:"rating" bson:"rating" default:"5.0"`
	TotalRides     int                  `json:"total_rides" bson:"total_rides"`
	CreatedRides   []primitive.ObjectID `json:"created_rides" bson:"created_rides"`
	JoinedRides    []primitive.ObjectID `json:"joined_rides" bson:"joined_rides"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

// UserSummary is the public projection embedded in expanded ride and message
// responses. Mirrors what other participants are allowed to see.
type UserSummary struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Phone          string             `json:"phone" bson:"phone"`
	Rating         float64            `json:"rating" bson:"rating"`
	ProfilePicture string             `json:"profile_picture" bson:"profile_picture"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Rating:         u.Rating,
		ProfilePicture: u.ProfilePicture,
	}
}

func IsValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
