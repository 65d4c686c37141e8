package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomID_Symmetric(t *testing.T) {
	assert.Equal(t, RoomID("alice", "bob"), RoomID("bob", "alice"))
	assert.Equal(t, "alice-bob", RoomID("bob", "alice"))
}

func TestRoomID_UUIDPairs(t *testing.T) {
	a := "1f0e5f9c-8a34-4a21-9a5d-111111111111"
	b := "0a1b2c3d-4e5f-4a6b-8c9d-222222222222"

	assert.Equal(t, RoomID(a, b), RoomID(b, a))
	assert.Equal(t, b+"-"+a, RoomID(a, b))
}

func TestRoomID_SameUserTwice(t *testing.T) {
	assert.Equal(t, "u1-u1", RoomID("u1", "u1"))
}
