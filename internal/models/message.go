package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a ride-scoped chat message. Immutable once created.
type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RideID    primitive.ObjectID `json:"ride_id" bson:"ride_id" validate:"required"`
	SenderID  primitive.ObjectID `json:"sender_id" bson:"sender_id" validate:"required"`
	Content   string             `json:"content" bson:"content" validate:"required,min=1,max=500"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// MessageDetail is a message with the sender expanded for responses.
type MessageDetail struct {
	Message
	Sender *UserSummary `json:"sender"`
}
