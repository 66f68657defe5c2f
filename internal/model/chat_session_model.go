package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title     string     `gorm:"type:text;not null;default:'New Chat'"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	GroupId   *uuid.UUID `gorm:"type:uuid;index"` // NULL means uncategorized
	Order     int        `gorm:"column:order;not null;default:0"`
	Group     *Group     `gorm:"foreignKey:GroupId"`
}

func (ChatSession) TableName() string {
	return "sessions"
}
