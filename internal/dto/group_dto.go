package dto

import (
	"github.com/google/uuid"
)

type CreateGroupRequest struct {
	Name string `json:"name"`
}

// UpdateGroupRequest is a partial update: nil fields are left untouched.
type UpdateGroupRequest struct {
	Id    uuid.UUID `json:"-"`
	Name  *string   `json:"name"`
	Order *int      `json:"order"`
}

type GroupResponse struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Order int       `json:"order"`
}
