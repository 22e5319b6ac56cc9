package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gocarpool/internal/models"
	"gocarpool/internal/repositories/interfaces"
	"gocarpool/internal/utils"
	"gocarpool/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatService interface {
	ListMessages(ctx context.Context, rideID, callerID primitive.ObjectID) ([]*models.MessageDetail, error)
	PostMessage(ctx context.Context, rideID, senderID primitive.ObjectID, content string) (*models.MessageDetail, error)
}

type chatService struct {
	messages interfaces.MessageRepository
	rides    interfaces.RideRepository
	users    interfaces.UserRepository
	logger   *logger.Logger
}

func NewChatService(messages interfaces.MessageRepository, rides interfaces.RideRepository, users interfaces.UserRepository, log *logger.Logger) ChatService {
	return &chatService{
		messages: messages,
		rides:    rides,
		users:    users,
		logger:   log,
	}
}

func (s *chatService) ListMessages(ctx context.Context, rideID, callerID primitive.ObjectID) ([]*models.MessageDetail, error) {
	if err := s.requireParticipant(ctx, rideID, callerID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	return s.expand(ctx, messages)
}

func (s *chatService) PostMessage(ctx context.Context, rideID, senderID primitive.ObjectID, content string) (*models.MessageDetail, error) {
	content = strings.TrimSpace(content)
	if length := utf8.RuneCountInString(content); length < utils.MinMessageLength || length > utils.MaxMessageLength {
		return nil, ErrInvalidMessage
	}

	if err := s.requireParticipant(ctx, rideID, senderID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		RideID:   rideID,
		SenderID: senderID,
		Content:  content,
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.WithRideID(rideID).WithUserID(senderID).Debug("Message posted")

	details, err := s.expand(ctx, []*models.Message{msg})
	if err != nil {
		return nil, err
	}

	return details[0], nil
}

// requireParticipant gates chat access to the driver and current passengers.
func (s *chatService) requireParticipant(ctx context.Context, rideID, userID primitive.ObjectID) error {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrRideNotFound
		}
		return err
	}

	if !ride.IsDriver(userID) && !ride.HasPassenger(userID) {
		return ErrNotParticipant
	}

	return nil
}

func (s *chatService) expand(ctx context.Context, messages []*models.Message) ([]*models.MessageDetail, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, msg := range messages {
		idSet[msg.SenderID] = struct{}{}
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	summaries, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*models.MessageDetail, 0, len(messages))
	for _, msg := range messages {
		details = append(details, &models.MessageDetail{
			Message: *msg,
			Sender:  summaries[msg.SenderID],
		})
	}

	return details, nil
}
