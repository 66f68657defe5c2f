package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID   `gorm:"type:uuid;not null;index"`
	Role      string      `gorm:"type:varchar(50);not null"`
	Content   string      `gorm:"type:text;not null"`
	Timestamp time.Time   `gorm:"autoCreateTime;index"`
	Session   ChatSession `gorm:"foreignKey:SessionId"`
}

func (ChatMessage) TableName() string {
	return "messages"
}
