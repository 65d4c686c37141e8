package websocket

// RoomID derives the chat room name for an unordered pair of user IDs.
// The IDs are sorted before joining, so both participants compute the
// same name regardless of who initiates: RoomID(a, b) == RoomID(b, a).
func RoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "-" + b
}
