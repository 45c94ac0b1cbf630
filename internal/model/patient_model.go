package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Patient struct {
	Id                    uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientName           string         `gorm:"type:varchar(255);not null;index"`
	DischargeDate         string         `gorm:"type:varchar(32)"`
	PrimaryDiagnosis      string         `gorm:"type:text"`
	Medications           datatypes.JSON `gorm:"type:jsonb"`
	DietaryRestrictions   string         `gorm:"type:text"`
	FollowUp              string         `gorm:"type:text"`
	WarningSigns          string         `gorm:"type:text"`
	DischargeInstructions string         `gorm:"type:text"`
	CreatedAt             time.Time      `gorm:"autoCreateTime"`
}

func (Patient) TableName() string {
	return "patients"
}
