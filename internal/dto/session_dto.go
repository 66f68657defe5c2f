package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title   string     `json:"title"`
	GroupId *uuid.UUID `json:"group_id"`
}

type UpdateSessionRequest struct {
	Id    uuid.UUID `json:"-"`
	Title string    `json:"title" validate:"required"`
}

// MoveSessionRequest overwrites group_id and order unconditionally; the
// caller owns rank consistency across siblings.
type MoveSessionRequest struct {
	Id      uuid.UUID  `json:"-"`
	GroupId *uuid.UUID `json:"group_id"`
	Order   int        `json:"order"`
}

type SessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	GroupId   *uuid.UUID `json:"group_id"`
	Order     int        `json:"order"`
}
