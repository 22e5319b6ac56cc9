package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestClient(hub *Hub, id string) *Client {
	return NewClient(hub, nil, id, primitive.NewObjectID())
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestHubBroadcastExcludesSender(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sender := newTestClient(hub, "c1")
	member := newTestClient(hub, "c2")
	outsider := newTestClient(hub, "c3")

	hub.register <- sender
	hub.register <- member
	hub.register <- outsider

	// Drain welcome messages.
	receive(t, sender)
	receive(t, member)
	receive(t, outsider)

	rideID := primitive.NewObjectID().Hex()
	hub.JoinRide(sender, rideID)
	hub.JoinRide(member, rideID)

	hub.BroadcastToRide(rideID, Message{
		Type:   "receive_message",
		RideID: rideID,
		UserID: sender.UserID,
		Data:   map[string]interface{}{"message": "hello"},
	}, sender)

	msg := receive(t, member)
	assert.Equal(t, "receive_message", msg.Type)
	assert.Equal(t, rideID, msg.RideID)
	assert.Equal(t, "hello", msg.Data["message"])

	// Sender and non-members get nothing.
	select {
	case data := <-sender.send:
		t.Fatalf("sender received its own message: %s", data)
	case data := <-outsider.send:
		t.Fatalf("outsider received room message: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubLeaveRideStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(hub, "a")
	b := newTestClient(hub, "b")
	hub.register <- a
	hub.register <- b
	receive(t, a)
	receive(t, b)

	rideID := primitive.NewObjectID().Hex()
	hub.JoinRide(a, rideID)
	hub.JoinRide(b, rideID)
	assert.Equal(t, 2, hub.RoomSize(rideID))

	hub.LeaveRide(b, rideID)
	assert.Equal(t, 1, hub.RoomSize(rideID))

	hub.BroadcastToRide(rideID, Message{Type: "ride_updated", RideID: rideID}, nil)

	msg := receive(t, a)
	assert.Equal(t, "ride_updated", msg.Type)

	select {
	case data := <-b.send:
		t.Fatalf("departed client received message: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubEvictsSlowClientUnderConcurrentReads(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	healthy := newTestClient(hub, "healthy")
	slow := newTestClient(hub, "slow")
	hub.register <- healthy
	hub.register <- slow
	receive(t, healthy)
	receive(t, slow)

	rideID := primitive.NewObjectID().Hex()
	hub.JoinRide(healthy, rideID)
	hub.JoinRide(slow, rideID)

	// Fill the slow client's buffer so the next delivery evicts it.
	for i := 0; i < cap(slow.send); i++ {
		slow.send <- []byte("backlog")
	}

	// Readers running alongside the eviction must never observe the room
	// maps mid-mutation.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.RoomSize(rideID)
		}
	}()

	hub.BroadcastToRide(rideID, Message{Type: "ride_updated", RideID: rideID}, nil)

	msg := receive(t, healthy)
	assert.Equal(t, "ride_updated", msg.Type)
	<-done

	assert.Eventually(t, func() bool {
		return hub.RoomSize(rideID) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestHubRoomTornDownWhenEmpty(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := newTestClient(hub, "c")
	hub.register <- c
	receive(t, c)

	rideID := primitive.NewObjectID().Hex()
	hub.JoinRide(c, rideID)
	assert.Equal(t, 1, hub.RoomSize(rideID))

	hub.unregister <- c

	assert.Eventually(t, func() bool {
		return hub.RoomSize(rideID) == 0
	}, time.Second, 10*time.Millisecond)
}
