package models

// MessageRequest injects one inbound message through the HTTP surface.
type MessageRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

type MessageResponse struct {
	Replies []string `json:"replies"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
