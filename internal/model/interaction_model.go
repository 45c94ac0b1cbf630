package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Interaction struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   string         `gorm:"type:varchar(64);not null;index"`
	PatientName string         `gorm:"type:varchar(255)"`
	Agent       string         `gorm:"type:varchar(32);not null"`
	MessageType string         `gorm:"type:varchar(32);not null;index"`
	Message     string         `gorm:"type:text"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	Timestamp   time.Time      `gorm:"default:now();not null;index"`
}

func (Interaction) TableName() string {
	return "interactions"
}
