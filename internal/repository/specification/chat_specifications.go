package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// InGroup filters sessions by group membership; a nil GroupID selects the
// uncategorized bucket.
type InGroup struct {
	GroupID *uuid.UUID
}

func (s InGroup) Apply(db *gorm.DB) *gorm.DB {
	if s.GroupID == nil {
		return db.Where("group_id IS NULL")
	}
	return db.Where("group_id = ?", *s.GroupID)
}
