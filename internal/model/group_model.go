package model

import (
	"github.com/google/uuid"
)

type Group struct {
	Id    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:text;not null;default:'uncategorized'"`
	Order int       `gorm:"column:order;not null;default:0"`
}

func (Group) TableName() string {
	return "groups"
}
