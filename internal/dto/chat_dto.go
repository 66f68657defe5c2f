package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	Role      string    `json:"role"` // defaults to "user"
}

// ChatResponse is the reply envelope: role/content of the assistant
// message, or the sentinel failure content when inference is unavailable.
type ChatResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type StatusResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Device      string `json:"device"` // empty until the runtime is up
}
