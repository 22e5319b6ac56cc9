package handlers

import (
	"context"
	"net/http"
	"testing"

	"gocarpool/internal/middleware"
	"gocarpool/internal/models"
	"gocarpool/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubChatService struct {
	detail *models.MessageDetail
	err    error
}

func (s *stubChatService) ListMessages(context.Context, primitive.ObjectID, primitive.ObjectID) ([]*models.MessageDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*models.MessageDetail{s.detail}, nil
}

func (s *stubChatService) PostMessage(context.Context, primitive.ObjectID, primitive.ObjectID, string) (*models.MessageDetail, error) {
	return s.detail, s.err
}

func newChatRouter(svc services.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	userID := primitive.NewObjectID()

	handler := NewChatHandler(svc, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
	})
	r.GET("/chat/:rideId", handler.ListMessages)
	r.POST("/chat/:rideId", handler.PostMessage)
	return r
}

func TestPostMessageCreated(t *testing.T) {
	detail := &models.MessageDetail{
		Message: models.Message{
			ID:      primitive.NewObjectID(),
			RideID:  primitive.NewObjectID(),
			Content: "see you at 8",
		},
	}
	r := newChatRouter(&stubChatService{detail: detail})

	w := perform(r, http.MethodPost, "/chat/"+detail.RideID.Hex(), `{"content":"see you at 8"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "see you at 8")
}

func TestChatHandlerStatusMapping(t *testing.T) {
	rideID := primitive.NewObjectID().Hex()

	cases := []struct {
		name   string
		err    error
		method string
		want   int
	}{
		{"non-member read", services.ErrNotParticipant, http.MethodGet, http.StatusForbidden},
		{"non-member post", services.ErrNotParticipant, http.MethodPost, http.StatusForbidden},
		{"missing ride", services.ErrRideNotFound, http.MethodGet, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newChatRouter(&stubChatService{err: tc.err})
			w := perform(r, tc.method, "/chat/"+rideID, `{"content":"hello"}`)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
