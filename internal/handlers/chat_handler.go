package handlers

import (
	"gocarpool/internal/services"
	"gocarpool/internal/utils"
	"gocarpool/pkg/websocket"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService services.ChatService
	ws          *websocket.Handler
}

func NewChatHandler(chatService services.ChatService, ws *websocket.Handler) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		ws:          ws,
	}
}

// ListMessages returns a ride's chat history, oldest first. Only the driver
// and current passengers may read it.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rideID, ok := objectIDParam(c, "rideId")
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(c.Request.Context(), rideID, userID)
	if err != nil {
		respondRideError(c, err)
		return
	}

	utils.SuccessResponse(c, "Messages retrieved", messages)
}

type postMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// PostMessage appends a message to the ride's chat and relays it to connected
// room members.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rideID, ok := objectIDParam(c, "rideId")
	if !ok {
		return
	}

	var request postMessageRequest
	if !bindAndValidate(c, &request) {
		return
	}

	message, err := h.chatService.PostMessage(c.Request.Context(), rideID, userID, request.Content)
	if err != nil {
		respondRideError(c, err)
		return
	}

	if h.ws != nil {
		h.ws.NotifyRide(rideID, "receive_message", map[string]interface{}{
			"message": message,
		})
	}

	utils.CreatedResponse(c, "Message sent", message)
}
